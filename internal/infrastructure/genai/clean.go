package genai

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```(?:json)?\n?")

// CleanJSON strips triple-backtick code fences (with or without a json
// language tag) that models often wrap around JSON output, leaving text
// ready for unmarshalling.
func CleanJSON(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}
