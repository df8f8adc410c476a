package main

import (
	"fmt"
	"log"

	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/models"
	"github.com/HananAabout/PFEHotelGestion/routes"
	"github.com/HananAabout/PFEHotelGestion/utils"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	cfg := config.Load()
	config.ConnectDatabase(cfg)
	db := config.DB

	// migrate
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	utils.SeedDefaultData(db)

	r := routes.SetupRouter(db, cfg)
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("server running on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Room{},
		&models.Reservation{},
		&models.Payment{},
		&models.PasswordResetToken{},
	)
}
