package quiz

import (
	"fmt"
	"strings"

	"career-coach/internal/domain/assessment"
)

func quizPrompt(industry string, skills []string, category, difficulty string, timestamp int64, seed string) string {
	skillsClause := ""
	if len(skills) > 0 {
		skillsClause = fmt.Sprintf(" with expertise in %s", strings.Join(skills, ", "))
	}

	return fmt.Sprintf(`Generate %d %s technical interview questions for a %s professional%s.

Focus specifically on %s in the %s field.
Each question should be multiple choice with %d options.

IMPORTANT: Make these questions unique and different from common interview questions.
Include questions about recent developments, specific tools, and practical scenarios.

Return the response in this JSON format only, no additional text:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}

Generation timestamp: %d
Random seed: %s`,
		quizSize, difficulty, industry, skillsClause,
		category, industry, optionCount,
		timestamp, seed,
	)
}

func improvementPrompt(industry string, wrong []assessment.QuestionResult) string {
	var b strings.Builder
	for i, q := range wrong {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Question: %q\nCorrect Answer: %q\nUser Answer: %q", q.Question, q.CorrectAnswer, q.UserAnswer)
	}

	return fmt.Sprintf(`The user got the following %s technical interview questions wrong:

%s

Based on these mistakes, provide a concise, specific improvement tip.
Focus on the knowledge gaps revealed by these wrong answers.
Keep the response under 2 sentences and make it encouraging.
Don't explicitly mention the mistakes, instead focus on what to learn/practice.`,
		industry, b.String())
}
