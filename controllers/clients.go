package controllers

import (
	"net/http"

	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientInput struct {
	Nom          string `json:"nom" binding:"required"`
	Prenom       string `json:"prenom" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Telephone    string `json:"telephone"`
	TypeDocument string `json:"type_document"`
	CIN          string `json:"cin"`
}

func ListClients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clients []models.Client
		query := db.Order("nom, prenom")
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("LOWER(nom) LIKE LOWER(?) OR LOWER(prenom) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
				like, like, like)
		}
		if err := query.Find(&clients).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
			return
		}
		c.JSON(http.StatusOK, clients)
	}
}

func GetClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

func CreateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input clientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.Client
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
			return
		}

		client := models.Client{
			Nom:          input.Nom,
			Prenom:       input.Prenom,
			Email:        input.Email,
			Telephone:    input.Telephone,
			TypeDocument: input.TypeDocument,
			CIN:          input.CIN,
		}
		if client.TypeDocument == "" {
			client.TypeDocument = "cin"
		}
		if err := db.Create(&client).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
			return
		}
		c.JSON(http.StatusCreated, client)
	}
}

func UpdateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}

		var input clientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Email != client.Email {
			var other models.Client
			if err := db.Where("email = ? AND id <> ?", input.Email, client.ID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
				return
			}
		}

		client.Nom = input.Nom
		client.Prenom = input.Prenom
		client.Email = input.Email
		client.Telephone = input.Telephone
		if input.TypeDocument != "" {
			client.TypeDocument = input.TypeDocument
		}
		client.CIN = input.CIN
		if err := db.Save(&client).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

// DeleteClient refuses to remove a client still referenced by reservations.
func DeleteClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}

		var count int64
		db.Model(&models.Reservation{}).Where("client_id = ?", client.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Client is referenced by reservations and cannot be deleted"})
			return
		}

		if err := db.Delete(&client).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
	}
}

func ClientReservations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}

		var reservations []models.Reservation
		err := db.Preload("Chambre").Where("client_id = ?", client.ID).
			Order("date_arrivee desc").Find(&reservations).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}
