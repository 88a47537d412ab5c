package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/config"
	"github.com/mentorhub/backend/internal/database"
	"github.com/mentorhub/backend/internal/handler"
	"github.com/mentorhub/backend/internal/middleware"
	"github.com/mentorhub/backend/internal/queue"
	"github.com/mentorhub/backend/internal/repository"
	"github.com/mentorhub/backend/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	categories := repository.NewCategoryRepo(db)
	events := repository.NewEventRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	userH := handler.NewUserHandler(cfg, users)
	profileH := handler.NewProfileHandler(profiles)
	categoryH := handler.NewCategoryHandler(categories)
	eventH := handler.NewEventHandler(users, events, registrations)
	registrationH := handler.NewRegistrationHandler(users, events, registrations)
	attendanceH := handler.NewAttendanceHandler(users, events, registrations)
	queryH := handler.NewQueryHandler(users, events, profiles)

	e := echo.New()
	e.HideBanner = true

	// Redis backs the rate limiter and the browse-route response cache.
	// Both degrade to pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled && rdb != nil {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	var browseMW []echo.MiddlewareFunc
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled && rdb != nil {
		browseMW = append(browseMW, middleware.NewRedisCache(cacheCfg, rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, router.PublicHandlers{
		Events:        eventH,
		Registrations: registrationH,
		Categories:    categoryH,
		Queries:       queryH,
		Users:         userH,
		Profiles:      profileH,
	}, browseMW...)
	router.RegisterEvents(e, eventH, registrationH, attendanceH, queryH, categoryH, cfg.JWTSecret)
	router.RegisterUsers(e, userH, profileH, cfg.JWTSecret)

	// Activity log consumer; it reconnects on broker failure and never takes
	// the API down with it.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
