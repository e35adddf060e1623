package handler

import (
	"errors"

	"career-coach/internal/delivery/http/dto"
	"career-coach/internal/delivery/http/middleware"
	"career-coach/internal/domain/user"
	"career-coach/internal/pkg/response"
	useruc "career-coach/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc *useruc.Service
}

type updateProfileRequest struct {
	Industry *string  `json:"industry"`
	Skills   []string `json:"skills"`
}

func NewUserHandler(uc *useruc.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, userProfileResponse(prof))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	prof, err := h.uc.UpdateProfile(c.Context(), userID, useruc.UpdateProfileInput{
		Industry: req.Industry,
		Skills:   req.Skills,
	})
	if err != nil {
		return mapUserError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, userProfileResponse(prof))
}

func userProfileResponse(u user.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Industry:  u.Industry,
		Skills:    u.Skills,
		CreatedAt: u.CreatedAt,
	}
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrIndustryLocked):
		return middleware.NewAppError(fiber.StatusConflict, "Industry already set", nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
