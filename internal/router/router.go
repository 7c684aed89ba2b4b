package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/volition-os/volition-api/internal/auth"
	"github.com/volition-os/volition-api/internal/blueprint"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/job"
	"github.com/volition-os/volition-api/internal/middlewares"
	"github.com/volition-os/volition-api/internal/stresstest"
	"github.com/volition-os/volition-api/internal/trial"
	"github.com/volition-os/volition-api/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	GoalHandler       *goal.Handler
	StressTestHandler *stresstest.Handler
	TrialHandler      *trial.Handler
	BlueprintHandler  *blueprint.Handler
	JobHandler        *job.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/stress-test", stresstest.Routes(cfg.StressTestHandler))
		r.Mount("/trials", trial.Routes(cfg.TrialHandler))
		r.Mount("/blueprints", blueprint.Routes(cfg.BlueprintHandler))
		r.Mount("/jobs", job.Routes(cfg.JobHandler))
	})
	return r
}
