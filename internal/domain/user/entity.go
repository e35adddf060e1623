package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string

	// Industry is nil until the user completes onboarding. It keys the
	// shared industry_insights record.
	Industry *string
	Skills   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) HasIndustry() bool {
	return u.Industry != nil && *u.Industry != ""
}
