package utils

import (
	"log"
	"os"

	"github.com/HananAabout/PFEHotelGestion/models"

	"gorm.io/gorm"
)

// SeedDefaultData creates the default admin account and a starter room
// inventory when the tables are empty.
func SeedDefaultData(db *gorm.DB) {
	seedAdmin(db)
	seedRooms(db)
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@hotel.local"
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := HashPassword(password)
	if err != nil {
		log.Printf("seed: hashing admin password failed: %v", err)
		return
	}

	admin := models.User{
		Nom:      "Admin",
		Prenom:   "Hotel",
		Email:    email,
		Role:     models.RoleAdministrateur,
		Password: hashed,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("seed: creating admin failed: %v", err)
		return
	}
	log.Printf("seed: created default admin %s", email)
}

func seedRooms(db *gorm.DB) {
	var count int64
	db.Model(&models.Room{}).Count(&count)
	if count > 0 {
		return
	}

	rooms := []models.Room{
		{Numero: "101", Categorie: models.CategorieSimple, Prix: 50},
		{Numero: "102", Categorie: models.CategorieSimple, Prix: 50},
		{Numero: "201", Categorie: models.CategorieDouble, Prix: 80},
		{Numero: "202", Categorie: models.CategorieDouble, Prix: 80},
		{Numero: "301", Categorie: models.CategorieSuite, Prix: 150},
		{Numero: "401", Categorie: models.CategorieLuxe, Prix: 250},
	}
	for _, r := range rooms {
		r.Statut = "disponible"
		if err := db.Create(&r).Error; err != nil {
			log.Printf("seed: creating room %s failed: %v", r.Numero, err)
		}
	}
}
