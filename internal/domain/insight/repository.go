package insight

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("insight not found")

type Repository interface {
	GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error)
	Create(ctx context.Context, i IndustryInsight) error
	Update(ctx context.Context, i IndustryInsight) error
}
