package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return availability.DateOnly(t), nil
}

// roomIntervals loads the non-cancelled stays of a room as pure intervals
// for the availability rules.
func roomIntervals(db *gorm.DB, chambreID uint) ([]availability.Interval, error) {
	var reservations []models.Reservation
	err := db.Where("chambre_id = ? AND statut <> ?", chambreID, availability.ReservationAnnulee).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	stays := make([]availability.Interval, 0, len(reservations))
	for _, r := range reservations {
		stays = append(stays, availability.Interval{
			ReservationID: r.ID,
			Arrivee:       r.DateArrivee,
			Depart:        r.DateDepart,
		})
	}
	return stays, nil
}

// reconcileRoomStatus rewrites a room's statut from its reservations when
// auto-derivation is on. A manual nettoyage override is left alone.
func reconcileRoomStatus(db *gorm.DB, cfg *config.Config, chambreID uint) {
	if !cfg.StatusAutoDerive {
		return
	}
	var room models.Room
	if err := db.First(&room, chambreID).Error; err != nil {
		return
	}
	if room.Statut == availability.StatusNettoyage {
		return
	}
	stays, err := roomIntervals(db, chambreID)
	if err != nil {
		return
	}
	derived := availability.DeriveStatus(time.Now(), cfg.StatusHorizonDays, stays)
	if derived != room.Statut {
		db.Model(&room).Update("statut", derived)
	}
}

type reservationInput struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	ChambreID   uint   `json:"chambre_id" binding:"required"`
	DateArrivee string `json:"date_arrivee" binding:"required"`
	DateDepart  string `json:"date_depart" binding:"required"`
	Statut      string `json:"statut"`
}

func (in *reservationInput) dates() (arrivee, depart time.Time, field string, err error) {
	arrivee, err = parseDate(in.DateArrivee)
	if err != nil {
		return arrivee, depart, "date_arrivee", errors.New("invalid date_arrivee, expected YYYY-MM-DD")
	}
	depart, err = parseDate(in.DateDepart)
	if err != nil {
		return arrivee, depart, "date_depart", errors.New("invalid date_depart, expected YYYY-MM-DD")
	}
	if err = availability.ValidateRange(arrivee, depart); err != nil {
		return arrivee, depart, "date_arrivee", err
	}
	return arrivee, depart, "", nil
}

func ListReservations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reservations []models.Reservation
		query := db.Preload("Client").Preload("Chambre").Order("created_at desc")
		if statut := c.Query("statut"); statut != "" {
			query = query.Where("statut = ?", statut)
		}
		if err := query.Find(&reservations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}

func GetReservation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reservation models.Reservation
		err := db.Preload("Client").Preload("Chambre").Preload("Paiements").
			First(&reservation, c.Param("id")).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusOK, reservation)
	}
}

// CreateReservation validates the date range and the overlap rule before
// writing. The overlap rejection here is the consistency backstop between
// concurrent staff sessions.
func CreateReservation(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reservationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		arrivee, depart, field, err := input.dates()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": field})
			return
		}

		statut := input.Statut
		if statut == "" {
			statut = availability.ReservationEnAttente
		}
		if statut != availability.ReservationEnAttente && statut != availability.ReservationConfirmee {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a reservation starts as en_attente or confirmee", "field": "statut"})
			return
		}

		var client models.Client
		if err := db.First(&client, input.ClientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found", "field": "client_id"})
			return
		}

		// Conflict check and insert run in one transaction, locking the room
		// row so two concurrent bookings of the same room serialize.
		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, input.ChambreID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found", "field": "chambre_id"})
			return
		}

		stays, err := roomIntervals(tx, room.ID)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}
		candidate := availability.Interval{Arrivee: arrivee, Depart: depart}
		if availability.Conflicts(candidate, stays) {
			tx.Rollback()
			c.JSON(http.StatusConflict, gin.H{"error": "Room is already reserved over this period", "field": "date_arrivee"})
			return
		}

		reservation := models.Reservation{
			ClientID:    client.ID,
			ChambreID:   room.ID,
			DateArrivee: arrivee,
			DateDepart:  depart,
			Statut:      statut,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
			return
		}

		reconcileRoomStatus(db, cfg, room.ID)

		var full models.Reservation
		if err := db.Preload("Client").Preload("Chambre").First(&full, reservation.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservation"})
			return
		}
		c.JSON(http.StatusCreated, full)
	}
}

// UpdateReservation re-runs the same validation as create, excluding the
// reservation's own interval from the overlap check.
func UpdateReservation(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reservation models.Reservation
		if err := db.First(&reservation, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}

		var input reservationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		arrivee, depart, field, err := input.dates()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": field})
			return
		}

		if input.Statut != "" && input.Statut != reservation.Statut {
			if !availability.CanTransition(reservation.Statut, input.Statut) {
				c.JSON(http.StatusConflict, gin.H{"error": "Reservation statut cannot leave a terminal state", "field": "statut"})
				return
			}
		}

		var client models.Client
		if err := db.First(&client, input.ClientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found", "field": "client_id"})
			return
		}

		// Same transactional conflict-check-then-write as create, against
		// the reservation's target room.
		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, input.ChambreID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found", "field": "chambre_id"})
			return
		}

		stays, err := roomIntervals(tx, room.ID)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}
		candidate := availability.Interval{ReservationID: reservation.ID, Arrivee: arrivee, Depart: depart}
		if availability.Conflicts(candidate, stays) {
			tx.Rollback()
			c.JSON(http.StatusConflict, gin.H{"error": "Room is already reserved over this period", "field": "date_arrivee"})
			return
		}

		previousRoom := reservation.ChambreID
		reservation.ClientID = client.ID
		reservation.ChambreID = room.ID
		reservation.DateArrivee = arrivee
		reservation.DateDepart = depart
		if input.Statut != "" {
			reservation.Statut = input.Statut
		}
		if err := tx.Save(&reservation).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
			return
		}

		reconcileRoomStatus(db, cfg, room.ID)
		if previousRoom != room.ID {
			reconcileRoomStatus(db, cfg, previousRoom)
		}

		var full models.Reservation
		if err := db.Preload("Client").Preload("Chambre").First(&full, reservation.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservation"})
			return
		}
		c.JSON(http.StatusOK, full)
	}
}

func DeleteReservation(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reservation models.Reservation
		if err := db.First(&reservation, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}

		var count int64
		db.Model(&models.Payment{}).Where("reservation_id = ?", reservation.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation is referenced by payments and cannot be deleted"})
			return
		}

		if err := db.Delete(&reservation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
			return
		}

		reconcileRoomStatus(db, cfg, reservation.ChambreID)
		c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
	}
}

// UpdateReservationStatus is the dedicated partial-update path for statut.
// Transitions out of annulee or terminee are rejected here even though the
// store itself would accept them.
func UpdateReservationStatus(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Statut string `json:"statut"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Statut == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "statut is required", "field": "statut"})
			return
		}
		if !availability.ValidReservationStatus(body.Statut) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reservation statut", "field": "statut"})
			return
		}

		var reservation models.Reservation
		if err := db.First(&reservation, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}

		if !availability.CanTransition(reservation.Statut, body.Statut) {
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation statut cannot leave a terminal state", "field": "statut"})
			return
		}

		reservation.Statut = body.Statut
		if err := db.Save(&reservation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation statut"})
			return
		}

		reconcileRoomStatus(db, cfg, reservation.ChambreID)
		c.JSON(http.StatusOK, reservation)
	}
}
