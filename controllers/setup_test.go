package controllers_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/models"
	"github.com/HananAabout/PFEHotelGestion/routes"
	"github.com/HananAabout/PFEHotelGestion/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Room{},
		&models.Reservation{},
		&models.Payment{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	return setupRouterWithConfig(t, db, &config.Config{StatusHorizonDays: 0})
}

func setupRouterWithConfig(t *testing.T, db *gorm.DB, cfg *config.Config) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	return routes.SetupRouter(db, cfg)
}

func createStaff(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	hashed, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Nom: "Test", Prenom: "Staff", Email: email, Role: role, Password: hashed}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return user, token
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createClientRecord(t *testing.T, db *gorm.DB, email string) models.Client {
	t.Helper()
	client := models.Client{Nom: "Martin", Prenom: "Sophie", Email: email, Telephone: "0600000000", CIN: "AB123"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func createRoomRecord(t *testing.T, db *gorm.DB, numero string) models.Room {
	t.Helper()
	room := models.Room{Numero: numero, Categorie: models.CategorieDouble, Prix: 80, Statut: "disponible"}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}
