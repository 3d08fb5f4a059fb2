package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rahulkg/reading-room-manager/internal/config"
	"github.com/rahulkg/reading-room-manager/internal/database"
	"github.com/rahulkg/reading-room-manager/internal/handler"
	"github.com/rahulkg/reading-room-manager/internal/middleware"
	"github.com/rahulkg/reading-room-manager/internal/queue"
	"github.com/rahulkg/reading-room-manager/internal/repository"
	"github.com/rahulkg/reading-room-manager/internal/router"
	"github.com/rahulkg/reading-room-manager/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the response cache. A nil client
	// disables both, the server still runs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: cache and rate limiting disabled")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	members := repository.NewMemberRepo(db)
	locations := repository.NewLocationRepo(db)
	seats := repository.NewSeatRepo(db)
	subscriptions := repository.NewSubscriptionRepo(db)
	payments := repository.NewPaymentRepo(db)
	waiting := repository.NewWaitingListRepo(db)
	inventory := repository.NewInventoryRepo(db)
	expenses := repository.NewExpenseRepo(db)
	grievances := repository.NewGrievanceRepo(db)

	// Seat allocation workflow and its audit trail
	events := service.NewAMQPPublisher(cfg.AMQPURL)
	lifecycle := service.NewLifecycle(seats, subscriptions, waiting, members, events)
	go func() {
		if err := queue.StartExpiryConsumer(cfg.AMQPURL); err != nil {
			log.Printf("expiry consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	seatH := handler.NewSeatHandler(seats, locations)
	locationH := handler.NewLocationHandler(locations)
	grievanceH := handler.NewGrievanceHandler(grievances, members)
	waitingH := handler.NewWaitingHandler(lifecycle, locations)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBrowse(e, seatH, locationH, grievanceH, waitingH, cfg.JWTSecret, cache)
	router.RegisterStaff(e, router.StaffHandlers{
		Members:       handler.NewMemberHandler(members, subscriptions),
		Seats:         seatH,
		Subscriptions: handler.NewSubscriptionHandler(subscriptions, seats, members, payments, lifecycle),
		Payments:      handler.NewPaymentHandler(payments, subscriptions),
		Waiting:       waitingH,
		Locations:     locationH,
		Inventory:     handler.NewInventoryHandler(inventory, locations),
		Expenses:      handler.NewExpenseHandler(expenses, locations),
		Grievances:    grievanceH,
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
