package dto

import (
	"time"

	"career-coach/internal/domain/assessment"

	"github.com/google/uuid"
)

type AssessmentResponse struct {
	ID             uuid.UUID                   `json:"id"`
	QuizScore      float64                     `json:"quizScore"`
	Questions      []assessment.QuestionResult `json:"questions"`
	Category       string                      `json:"category"`
	ImprovementTip *string                     `json:"improvementTip"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

func NewAssessmentResponse(a assessment.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:             a.ID,
		QuizScore:      a.QuizScore,
		Questions:      a.Questions,
		Category:       a.Category,
		ImprovementTip: a.ImprovementTip,
		CreatedAt:      a.CreatedAt,
	}
}

func NewAssessmentListResponse(list []assessment.Assessment) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAssessmentResponse(a))
	}
	return out
}
