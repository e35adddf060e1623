package assessment

import (
	"time"

	"github.com/google/uuid"
)

// QuestionResult is one graded question inside an assessment. IsCorrect holds
// iff UserAnswer equals CorrectAnswer by exact string match.
type QuestionResult struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"answer"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

// Assessment is one completed quiz attempt. Append-only: created once,
// never mutated or deleted.
type Assessment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	QuizScore      float64
	Questions      []QuestionResult
	Category       string
	ImprovementTip *string
	CreatedAt      time.Time
}
