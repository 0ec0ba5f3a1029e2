package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/matwana/logistics/internal/config"
	"github.com/matwana/logistics/internal/database"
	"github.com/matwana/logistics/internal/handler"
	"github.com/matwana/logistics/internal/logger"
	"github.com/matwana/logistics/internal/metrics"
	"github.com/matwana/logistics/internal/middleware"
	"github.com/matwana/logistics/internal/queue"
	"github.com/matwana/logistics/internal/repository"
	"github.com/matwana/logistics/internal/router"
	"github.com/matwana/logistics/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Init(cfg.Env, envOr("LOG_LEVEL", "info")); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when unreachable; logged inside

	users := repository.NewUserRepo(db)
	parcels := repository.NewParcelRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	locations := repository.NewLocationRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Cache entries only need to outlive the longest-lived token that could
	// carry a revoked jti, which is the refresh TTL.
	blocklist := service.NewBlocklist(tokens, rdb,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour)

	authH := handler.NewAuthHandler(cfg, users, blocklist)
	userH := handler.NewUserHandler(cfg, users)
	parcelH := handler.NewParcelHandler(parcels, users, locations, vehicles)
	vehicleH := handler.NewVehicleHandler(vehicles, locations)
	locationH := handler.NewLocationHandler(locations)
	assignH := handler.NewAssignmentHandler(assignments, users)

	metrics.Register()

	e := echo.New()
	e.HideBanner = true
	e.Use(logger.RequestLogger())
	e.Use(metrics.Middleware())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, vehicleH, locationH)
	router.RegisterAuth(e, authH, cfg.JWTSecret, blocklist)
	router.RegisterResources(e, cfg.JWTSecret, blocklist,
		userH, parcelH, vehicleH, locationH, assignH)

	go queue.StartParcelConsumer()

	addr := ":" + cfg.Port
	logger.L().Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
