package main

import (
	"context"
	"net/http"
	"os"

	"github.com/benkovy/fyp-api/api/routes"
	"github.com/benkovy/fyp-api/internal/auth"
	"github.com/benkovy/fyp-api/internal/movements"
	"github.com/benkovy/fyp-api/internal/routines"
	"github.com/benkovy/fyp-api/internal/tags"
	"github.com/benkovy/fyp-api/internal/users"
	"github.com/benkovy/fyp-api/internal/workouts"
	"github.com/benkovy/fyp-api/pkg/auth/session"
	"github.com/benkovy/fyp-api/pkg/config"
	"github.com/benkovy/fyp-api/pkg/db"
	"github.com/benkovy/fyp-api/pkg/logger"
	"github.com/benkovy/fyp-api/pkg/metrics"
	"github.com/benkovy/fyp-api/pkg/migrate"
	"github.com/benkovy/fyp-api/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	tagRepo := tags.NewRepository(conn)
	movementRepo := movements.NewRepository(conn)
	userRepo := users.NewRepository(conn)
	workoutRepo := workouts.NewRepository(conn)
	routineRepo := routines.NewRepository(conn)

	tagService, err := tags.NewService(tags.ServiceParams{TagRepo: tagRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create tag service", err)
		os.Exit(1)
	}

	movementService, err := movements.NewService(movements.ServiceParams{
		MovementRepo: movementRepo,
		TagRepo:      tagRepo,
		TagResolver:  tagService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create movement service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{UserRepo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	workoutService, err := workouts.NewService(workouts.ServiceParams{
		WorkoutRepo:  workoutRepo,
		MovementRepo: movementRepo,
		MovementSvc:  movementService,
		UserRepo:     userRepo,
		TagRepo:      tagRepo,
		TagResolver:  tagService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create workout service", err)
		os.Exit(1)
	}

	routineService, err := routines.NewService(routines.ServiceParams{
		RoutineRepo:   routineRepo,
		UserRepo:      userRepo,
		WorkoutSvc:    workoutService,
		TagResolver:   tagService,
		Tx:            dbClient,
		TagMatchLimit: cfg.Routine.TagMatchLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create routine service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			Registry:        registry,
			HTTPMetrics:     httpMetrics,
			AuthService:     authService,
			UserService:     userService,
			MovementService: movementService,
			WorkoutService:  workoutService,
			RoutineService:  routineService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
