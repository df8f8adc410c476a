package controllers

import (
	"net/http"
	"time"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type roomInput struct {
	Numero    string  `json:"numero" binding:"required"`
	Categorie string  `json:"categorie" binding:"required"`
	Prix      float64 `json:"prix"`
	Statut    string  `json:"statut"`
}

func (in *roomInput) validate() (string, string) {
	if !models.ValidCategorie(in.Categorie) {
		return "unknown room category", "categorie"
	}
	if in.Prix < 0 {
		return "price must not be negative", "prix"
	}
	if in.Statut != "" && !availability.ValidRoomStatus(in.Statut) {
		return "unknown room statut", "statut"
	}
	return "", ""
}

func ListRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []models.Room
		query := db.Order("numero")
		if statut := c.Query("statut"); statut != "" {
			query = query.Where("statut = ?", statut)
		}
		if err := query.Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

func GetRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := db.First(&room, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input roomInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if msg, field := input.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
			return
		}

		var existing models.Room
		if err := db.Where("numero = ?", input.Numero).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Room number already exists", "field": "numero"})
			return
		}

		room := models.Room{
			Numero:    input.Numero,
			Categorie: input.Categorie,
			Prix:      input.Prix,
			Statut:    input.Statut,
		}
		if room.Statut == "" {
			room.Statut = availability.StatusDisponible
		}
		if err := db.Create(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}
		c.JSON(http.StatusCreated, room)
	}
}

func UpdateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := db.First(&room, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		var input roomInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if msg, field := input.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
			return
		}

		if input.Numero != room.Numero {
			var other models.Room
			if err := db.Where("numero = ? AND id <> ?", input.Numero, room.ID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Room number already exists", "field": "numero"})
				return
			}
		}

		room.Numero = input.Numero
		room.Categorie = input.Categorie
		room.Prix = input.Prix
		if input.Statut != "" {
			room.Statut = input.Statut
		}
		if err := db.Save(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func DeleteRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := db.First(&room, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		var count int64
		db.Model(&models.Reservation{}).Where("chambre_id = ?", room.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Room is referenced by reservations and cannot be deleted"})
			return
		}

		if err := db.Delete(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
	}
}

// UpdateRoomStatus is the manual override path. Setting nettoyage sticks
// until staff sets something else.
func UpdateRoomStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Statut string `json:"statut"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Statut == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "statut is required", "field": "statut"})
			return
		}
		if !availability.ValidRoomStatus(body.Statut) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room statut", "field": "statut"})
			return
		}

		var room models.Room
		if err := db.First(&room, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		room.Statut = body.Statut
		if err := db.Save(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room status"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func RoomsByStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		statut := c.Param("statut")
		if !availability.ValidRoomStatus(statut) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room statut", "field": "statut"})
			return
		}
		var rooms []models.Room
		if err := db.Where("statut = ?", statut).Order("numero").Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// AvailableRooms lists rooms free over a date range, using the same
// half-open overlap rule as reservation acceptance. The current statut is
// ignored on purpose: a room in nettoyage today can still take a future stay.
func AvailableRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		arrivee, err := parseDate(c.Query("date_arrivee"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_arrivee", "field": "date_arrivee"})
			return
		}
		depart, err := parseDate(c.Query("date_depart"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_depart", "field": "date_depart"})
			return
		}
		if err := availability.ValidateRange(arrivee, depart); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "date_arrivee"})
			return
		}

		busy := db.Model(&models.Reservation{}).
			Select("chambre_id").
			Where("statut <> ?", availability.ReservationAnnulee).
			Where("date_arrivee < ? AND ? < date_depart", depart, arrivee)

		var rooms []models.Room
		if err := db.Where("id NOT IN (?)", busy).Order("numero").Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// DerivedRoomStatus exposes the status reconciliation rule as a read-only
// query: what the room statut should be today given its reservations. A
// persisted nettoyage override wins over the derivation.
func DerivedRoomStatus(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := db.First(&room, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		stays, err := roomIntervals(db, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}

		derived := availability.DeriveStatus(time.Now(), cfg.StatusHorizonDays, stays)
		effective := derived
		override := room.Statut == availability.StatusNettoyage
		if override {
			effective = availability.StatusNettoyage
		}

		c.JSON(http.StatusOK, gin.H{
			"chambre_id": room.ID,
			"statut":     room.Statut,
			"derived":    derived,
			"effective":  effective,
			"override":   override,
		})
	}
}
