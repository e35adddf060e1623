package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Industry  *string   `json:"industry"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}
