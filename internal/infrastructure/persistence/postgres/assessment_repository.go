package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"career-coach/internal/database"
	"career-coach/internal/domain/assessment"
)

type AssessmentRepository struct {
	db database.DB
}

func NewAssessmentRepository(db database.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a assessment.Assessment) error {
	questionsJS, err := json.Marshal(a.Questions)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.QuizScore, questionsJS, a.Category, a.ImprovementTip, a.CreatedAt,
	)
	return err
}

func (r *AssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]assessment.Assessment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
		 FROM assessments WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.Assessment
	for rows.Next() {
		var (
			a           assessment.Assessment
			questionsJS []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questionsJS, &a.Category, &a.ImprovementTip, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(questionsJS) > 0 {
			if err := json.Unmarshal(questionsJS, &a.Questions); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
