package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/config"
	"github.com/iliyamo/train-station-booking/internal/database"
	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
	"github.com/iliyamo/train-station-booking/internal/queue"
	"github.com/iliyamo/train-station-booking/internal/repository"
	"github.com/iliyamo/train-station-booking/internal/router"
)

func main() {
	// .env is optional; in containers the variables arrive from the
	// environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedTrainTypes(ctx, db); err != nil {
		cancel()
		log.Fatalf("seed train types: %v", err)
	}
	cancel()

	// Redis is optional: without it the service runs with caching and
	// rate limiting disabled.
	rdb := config.NewRedisClient()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	stations := repository.NewStationRepo(db)
	trains := repository.NewTrainRepo(db)
	routes := repository.NewRouteRepo(db)
	journeys := repository.NewJourneyRepo(db)
	orders := repository.NewOrderRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(stations, trains, routes)
	journeyH := handler.NewJourneyHandler(journeys, trains, routes)
	orderH := handler.NewOrderHandler(orders, journeys)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, cfg.JWTSecret, cacheMW)
	router.RegisterJourneys(e, journeyH, cfg.JWTSecret, cacheMW)
	router.RegisterOrders(e, orderH, cfg.JWTSecret)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
