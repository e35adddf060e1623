package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a Assessment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Assessment, error)
}
