package user

import (
	"context"
	"errors"
	"strings"

	"career-coach/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrIndustryLocked = errors.New("industry already set")
	ErrInternal       = errors.New("internal error")
)

// UpdateProfileInput carries onboarding data. Industry may be set exactly
// once; skills can be replaced at any time.
type UpdateProfileInput struct {
	Industry *string
	Skills   []string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	if in.Industry == nil && in.Skills == nil {
		return user.User{}, ErrInvalidInput
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.Industry != nil {
		industry := strings.TrimSpace(*in.Industry)
		if industry == "" {
			return user.User{}, ErrInvalidInput
		}
		if usr.HasIndustry() {
			return user.User{}, ErrIndustryLocked
		}
		usr.Industry = &industry
	}

	if in.Skills != nil {
		skills := make([]string, 0, len(in.Skills))
		for _, sk := range in.Skills {
			sk = strings.TrimSpace(sk)
			if sk == "" {
				continue
			}
			skills = append(skills, sk)
		}
		usr.Skills = skills
	}

	if err := s.users.Update(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
