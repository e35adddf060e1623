package v1

import (
	"career-coach/internal/delivery/http/handler"
	"career-coach/internal/delivery/http/middleware"
	"career-coach/internal/pkg/jwt"
	"career-coach/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps bundles everything the route tree needs. Built once in the app
// container; handlers stay constructor-injected.
type Deps struct {
	JWT jwt.Service

	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Insight *handler.InsightHandler
	Quiz    *handler.QuizHandler

	WSHandler *ws.Handler
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(r.Group("/auth"))
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT)
	protected := r.Group("", authMw.Middleware())

	if deps.User != nil {
		deps.User.RegisterRoutes(protected.Group("/users"))
	}
	if deps.Insight != nil {
		deps.Insight.RegisterRoutes(protected)
	}
	if deps.Quiz != nil {
		deps.Quiz.RegisterRoutes(protected)
	}
}
