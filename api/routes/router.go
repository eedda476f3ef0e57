package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benkovy/fyp-api/api/controllers"
	"github.com/benkovy/fyp-api/api/middleware"
	authsvc "github.com/benkovy/fyp-api/internal/auth"
	"github.com/benkovy/fyp-api/internal/movements"
	"github.com/benkovy/fyp-api/internal/routines"
	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/internal/workouts"
	"github.com/benkovy/fyp-api/pkg/auth/session"
	"github.com/benkovy/fyp-api/pkg/config"
	"github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/logger"
	"github.com/benkovy/fyp-api/pkg/metrics"
	"github.com/benkovy/fyp-api/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService     authsvc.Service
	UserService     users.Service
	MovementService movements.Service
	WorkoutService  workouts.Service
	RoutineService  routines.Service
}

// NewRouter builds the chi router with the full middleware stack and every
// public and authenticated route.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(middleware.Metrics(p.HTTPMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/email-check", controllers.AuthEmailCheck(p.UserService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.UserMe(p.UserService, logg))
			r.Patch("/me", controllers.UserUpdateMe(p.UserService, logg))
			r.Get("/{userId}", controllers.UserByID(p.UserService, logg))
			r.Get("/{userId}/workouts", controllers.UserWorkouts(p.WorkoutService, logg))
		})

		r.Route("/movements", func(r chi.Router) {
			r.Get("/", controllers.MovementList(p.MovementService, logg))
			r.Post("/", controllers.MovementCreate(p.MovementService, logg))
			r.Get("/{movementId}", controllers.MovementGet(p.MovementService, logg))
			r.Patch("/{movementId}", controllers.MovementUpdate(p.MovementService, logg))
			r.Delete("/{movementId}", controllers.MovementDelete(p.MovementService, logg))
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", controllers.WorkoutList(p.WorkoutService, logg))
			r.Post("/", controllers.WorkoutCreate(p.WorkoutService, logg))
			r.Get("/search", controllers.WorkoutSearch(p.WorkoutService, logg))
			r.Get("/{workoutId}", controllers.WorkoutGet(p.WorkoutService, logg))
			r.Patch("/{workoutId}", controllers.WorkoutUpdate(p.WorkoutService, logg))
			r.Put("/{workoutId}", controllers.WorkoutUpdate(p.WorkoutService, logg))
			r.Delete("/{workoutId}", controllers.WorkoutDelete(p.WorkoutService, logg))
			r.Get("/{workoutId}/movements", controllers.WorkoutMovements(p.WorkoutService, logg))
		})

		r.Route("/routines", func(r chi.Router) {
			r.Get("/me", controllers.RoutineMe(p.RoutineService, logg))
			r.Put("/me", controllers.RoutineSubmit(p.RoutineService, logg))
			r.Delete("/me", controllers.RoutineDelete(p.RoutineService, logg))
			r.Get("/{routineId}/days", controllers.RoutineDays(p.RoutineService, logg))
		})
	})

	return r
}
