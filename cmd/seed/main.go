package main

import (
	"context"
	"log"
	_ "time/tzdata"

	"computer-store-ws/internal/config"
	"computer-store-ws/internal/repository"
	"computer-store-ws/internal/seed"
	"computer-store-ws/internal/service"
	"computer-store-ws/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	db := database.Connect(cfg.Database)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seeded, err := seed.Run(context.Background(), repository.NewStore(db), service.NewCalendar(cfg.App.Location))
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if seeded {
		log.Println("Demo data inserted")
	}
}
