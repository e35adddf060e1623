package handler

import (
	"errors"

	"career-coach/internal/delivery/http/dto"
	"career-coach/internal/delivery/http/middleware"
	"career-coach/internal/pkg/response"
	insightuc "career-coach/internal/usecase/insight"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InsightHandler struct {
	uc *insightuc.Service
}

func NewInsightHandler(uc *insightuc.Service) *InsightHandler {
	return &InsightHandler{uc: uc}
}

func (h *InsightHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/insights", h.GetInsights)
}

func (h *InsightHandler) GetInsights(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	rec, err := h.uc.GetInsights(c.Context(), userID)
	if err != nil {
		if errors.Is(err, insightuc.ErrUserNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInsightResponse(rec))
}
