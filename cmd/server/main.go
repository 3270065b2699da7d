package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/database"
	"github.com/faizanhere221/infoish-marketplace/internal/handler"
	"github.com/faizanhere221/infoish-marketplace/internal/middleware"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
	"github.com/faizanhere221/infoish-marketplace/internal/router"
)

func main() {
	_ = godotenv.Load() // load .env when present; real env wins

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter only; a nil client disables it.
	rdb := config.NewRedisClient()
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	creators := repository.NewCreatorRepo(db)
	brands := repository.NewBrandRepo(db)
	conversations := repository.NewConversationRepo(db)
	deals := repository.NewDealRepo(db)
	submissions := repository.NewSubmissionRepo(db)

	auth := handler.NewAuthHandler(cfg, users, creators, brands)
	creatorH := handler.NewCreatorHandler(cfg, creators)
	brandH := handler.NewBrandHandler(cfg, brands)
	convH := handler.NewConversationHandler(cfg, conversations)
	dealH := handler.NewDealHandler(cfg, deals, conversations)
	intakeH := handler.NewIntakeHandler(cfg, submissions)
	adminH := handler.NewAdminHandler(cfg, users, submissions)
	proxyH := handler.NewProxyHandler(cfg)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret, rl)
	router.RegisterAPI(e, cfg.JWTSecret, creatorH, brandH, convH, dealH)
	router.RegisterIntake(e, intakeH, rl)
	router.RegisterAdmin(e, adminH, cfg.AdminToken)
	router.RegisterProxy(e, proxyH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
