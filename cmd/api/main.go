package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"computer-store-ws/internal/config"
	"computer-store-ws/internal/handler"
	"computer-store-ws/internal/middleware"
	"computer-store-ws/internal/repository"
	"computer-store-ws/internal/repository/memory"
	"computer-store-ws/internal/seed"
	"computer-store-ws/internal/service"
	"computer-store-ws/internal/ws"
	"computer-store-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()
	calendar := service.NewCalendar(cfg.App.Location)

	// 2. Setup Store
	var store repository.Store
	switch cfg.App.StoreDriver {
	case config.DriverMemory:
		store = memory.New()
		if _, err := seed.Run(context.Background(), store, calendar); err != nil {
			log.Fatalf("Failed to seed memory store: %v", err)
		}
		log.Println("Using in-memory store with demo data")
	default:
		db := database.Connect(cfg.Database)
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		store = repository.NewStore(db)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection
	services := handler.NewServices(store, cfg.Pricing, calendar, wsHub)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	stopCleanup := make(chan struct{})
	if limiter := middleware.NewRateLimiter(cfg.RateLimit); limiter != nil {
		go limiter.RunCleanup(5*time.Minute, stopCleanup)
		app.Use("/api", limiter.Handler())
	}

	// 6. Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})
	handler.Register(app.Group("/api/v1"), services)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(stopCleanup)
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
