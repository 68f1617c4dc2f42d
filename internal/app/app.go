package app

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nicklvs1307/gestao-sub001/internal/config"
	"github.com/nicklvs1307/gestao-sub001/internal/db"
	httpdelivery "github.com/nicklvs1307/gestao-sub001/internal/delivery/http"
	"github.com/nicklvs1307/gestao-sub001/internal/redisdb"
)

type App struct {
	f    *fiber.App
	port string
}

func New() *App {
	cfg := config.Load()

	pool, err := db.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	rdb, err := redisdb.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}

	f := fiber.New(fiber.Config{
		AppName: "gestao-backend",
	})

	f.Use(recover.New())
	f.Use(logger.New())

	httpdelivery.RegisterRoutes(f, cfg, pool, rdb)

	return &App{f: f, port: cfg.Port}
}

func (a *App) Run() error {
	return a.f.Listen(":" + a.port)
}
