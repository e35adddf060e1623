package routes

import (
	"career-coach/internal/delivery/http/handler"
	v1 "career-coach/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, deps v1.Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler().RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), deps)

	if deps.WSHandler != nil {
		app.Get("/ws/insights", deps.WSHandler.HandleInsightsWS)
	}
}
