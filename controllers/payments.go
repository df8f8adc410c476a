package controllers

import (
	"fmt"
	"net/http"

	"github.com/HananAabout/PFEHotelGestion/models"
	"github.com/HananAabout/PFEHotelGestion/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type paymentInput struct {
	ReservationID uint    `json:"reservation_id" binding:"required"`
	Montant       float64 `json:"montant" binding:"required"`
	Methode       string  `json:"methode" binding:"required"`
	Type          string  `json:"type"`
}

func (in *paymentInput) validate() (methode string, msg, field string) {
	if in.Montant <= 0 {
		return "", "amount must be positive", "montant"
	}
	methode = models.NormalizeMethode(in.Methode)
	if methode == "" {
		return "", "unknown payment method", "methode"
	}
	if in.Type != "" && !models.ValidPaiementType(in.Type) {
		return "", "unknown payment type", "type"
	}
	return methode, "", ""
}

func ListPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payments []models.Payment
		err := db.Preload("Reservation").Preload("Reservation.Client").
			Order("created_at desc").Find(&payments).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func GetPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		err := db.Preload("Reservation").Preload("Reservation.Client").Preload("Reservation.Chambre").
			First(&payment, c.Param("id")).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		methode, msg, field := input.validate()
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
			return
		}

		var reservation models.Reservation
		if err := db.First(&reservation, input.ReservationID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found", "field": "reservation_id"})
			return
		}

		payment := models.Payment{
			ReservationID: reservation.ID,
			Montant:       input.Montant,
			Methode:       methode,
			Type:          input.Type,
		}
		if payment.Type == "" {
			payment.Type = models.PaiementTotal
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func UpdatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		if err := db.First(&payment, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}

		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		methode, msg, field := input.validate()
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
			return
		}

		if input.ReservationID != payment.ReservationID {
			var reservation models.Reservation
			if err := db.First(&reservation, input.ReservationID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found", "field": "reservation_id"})
				return
			}
			payment.ReservationID = reservation.ID
		}

		payment.Montant = input.Montant
		payment.Methode = methode
		if input.Type != "" {
			payment.Type = input.Type
		}
		if err := db.Save(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

func DeletePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		if err := db.First(&payment, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		if err := db.Delete(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
	}
}

// PaymentReceipt renders the PDF receipt of a payment.
func PaymentReceipt(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		err := db.Preload("Reservation").Preload("Reservation.Client").Preload("Reservation.Chambre").
			First(&payment, c.Param("id")).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}

		pdf, err := utils.ReceiptPDF(payment)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
			return
		}

		filename := fmt.Sprintf("recu-%d.pdf", payment.ID)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
