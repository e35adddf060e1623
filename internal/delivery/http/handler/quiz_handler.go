package handler

import (
	"errors"

	"career-coach/internal/delivery/http/dto"
	"career-coach/internal/delivery/http/middleware"
	"career-coach/internal/pkg/response"
	quizuc "career-coach/internal/usecase/quiz"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuizHandler struct {
	uc *quizuc.Service
}

type saveResultRequest struct {
	Questions []quizuc.Question `json:"questions"`
	Answers   []string          `json:"answers"`
}

func NewQuizHandler(uc *quizuc.Service) *QuizHandler {
	return &QuizHandler{uc: uc}
}

func (h *QuizHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/interview/quiz", h.GenerateQuiz)
	r.Post("/interview/results", h.SaveResult)
	r.Get("/interview/results", h.ListResults)
}

func (h *QuizHandler) GenerateQuiz(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	questions, err := h.uc.GenerateQuiz(c.Context(), userID)
	if err != nil {
		return mapQuizError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, questions)
}

func (h *QuizHandler) SaveResult(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req saveResultRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.SaveQuizResult(c.Context(), userID, req.Questions, req.Answers)
	if err != nil {
		return mapQuizError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentResponse(a))
}

func (h *QuizHandler) ListResults(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	list, err := h.uc.GetAssessments(c.Context(), userID)
	if err != nil {
		return mapQuizError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssessmentListResponse(list))
}

func mapQuizError(err error) error {
	switch {
	case errors.Is(err, quizuc.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, quizuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, quizuc.ErrGenerationFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Failed to generate quiz questions", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
