package routes

import (
	"github.com/gofiber/fiber/v3"

	"pathmatch/internal/delivery/http/handler"
	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/ws"
)

type Registry struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Personas *handler.PersonaHandler
	Jobs     *handler.JobsHandler
	Scores   *handler.ScoreHandler
	WS       *ws.Handler
	AuthMw   *middleware.AuthMiddleware
}

// Register mounts everything. Auth and health are public; the rest of
// the v1 surface requires a valid access token.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/scores", r.WS.HandleScoresWS)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}

	protected := v1.Group("")
	if r.AuthMw != nil {
		protected = v1.Group("", r.AuthMw.Middleware())
	}

	if r.Personas != nil {
		r.Personas.RegisterRoutes(protected.Group("/personas"))
	}
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(protected.Group("/jobs"))
	}
	if r.Scores != nil {
		r.Scores.RegisterRoutes(protected.Group("/scores"))
		protected.Get("/jobs/:id/ghost", r.Scores.Ghost)
	}
}
