package controllers

import (
	"net/http"
	"time"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardStats backs the counters shown on both dashboards.
func DashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var roomCount, clientCount, reservationCount, paymentCount int64
		db.Model(&models.Room{}).Count(&roomCount)
		db.Model(&models.Client{}).Count(&clientCount)
		db.Model(&models.Reservation{}).Count(&reservationCount)
		db.Model(&models.Payment{}).Count(&paymentCount)

		type statutCount struct {
			Statut string `json:"statut"`
			Count  int64  `json:"count"`
		}
		var byStatut []statutCount
		db.Model(&models.Room{}).
			Select("statut, COUNT(id) as count").
			Group("statut").
			Scan(&byStatut)

		c.JSON(http.StatusOK, gin.H{
			"total_chambres":      roomCount,
			"total_clients":       clientCount,
			"total_reservations":  reservationCount,
			"total_paiements":     paymentCount,
			"chambres_par_statut": byStatut,
		})
	}
}

// RevenueByDay sums payments per calendar day, most recent first.
// DATE() keeps the grouping portable between postgres and sqlite.
func RevenueByDay(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type revenueData struct {
			Date    string  `json:"date"`
			Revenue float64 `json:"revenue"`
		}
		var results []revenueData

		db.Model(&models.Payment{}).
			Select("DATE(created_at) as date, SUM(montant) as revenue").
			Group("DATE(created_at)").
			Order("DATE(created_at) DESC").
			Limit(7).
			Scan(&results)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
	}
}

// OccupancyStats reports the occupancy rate for today plus the reservation
// volume per room category.
func OccupancyStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		today := availability.DateOnly(time.Now())
		tomorrow := today.AddDate(0, 0, 1)

		var totalRooms int64
		db.Model(&models.Room{}).Count(&totalRooms)

		var occupied int64
		db.Model(&models.Reservation{}).
			Where("statut <> ?", availability.ReservationAnnulee).
			Where("date_arrivee < ? AND ? < date_depart", tomorrow, today).
			Distinct("chambre_id").
			Count(&occupied)

		rate := 0.0
		if totalRooms > 0 {
			rate = float64(occupied) / float64(totalRooms)
		}

		type categorieData struct {
			Categorie    string `json:"categorie"`
			Reservations int64  `json:"reservations"`
		}
		var byCategorie []categorieData
		db.Table("reservations").
			Select("rooms.categorie as categorie, COUNT(reservations.id) as reservations").
			Joins("JOIN rooms ON rooms.id = reservations.chambre_id").
			Where("reservations.statut <> ?", availability.ReservationAnnulee).
			Group("rooms.categorie").
			Order("reservations DESC").
			Scan(&byCategorie)

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"chambres_occupees": occupied,
			"total_chambres":    totalRooms,
			"taux_occupation":   rate,
			"par_categorie":     byCategorie,
		})
	}
}
