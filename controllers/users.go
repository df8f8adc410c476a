package controllers

import (
	"net/http"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/models"
	"github.com/HananAabout/PFEHotelGestion/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func validStaffRole(role string) bool {
	return availability.RoleAllowed(role, models.RoleAdministrateur) ||
		availability.RoleAllowed(role, models.RoleReceptionniste)
}

// ListUsers - admin fetches all staff accounts. Passwords never serialize.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		query := db.Order("nom, prenom")
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("LOWER(nom) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
		}
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Nom      string `json:"nom" binding:"required"`
			Prenom   string `json:"prenom" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Role     string `json:"role" binding:"required"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !validStaffRole(input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role", "field": "role"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Nom:      input.Nom,
			Prenom:   input.Prenom,
			Email:    input.Email,
			Role:     input.Role,
			Password: hashed,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// UpdateUser edits a staff account. Password is only rewritten when a new
// one is supplied.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input struct {
			Nom      string `json:"nom" binding:"required"`
			Prenom   string `json:"prenom" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Role     string `json:"role" binding:"required"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !validStaffRole(input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role", "field": "role"})
			return
		}

		if input.Email != user.Email {
			var other models.User
			if err := db.Where("email = ? AND id <> ?", input.Email, user.ID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
				return
			}
		}

		user.Nom = input.Nom
		user.Prenom = input.Prenom
		user.Email = input.Email
		user.Role = input.Role
		if input.Password != "" {
			if len(input.Password) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "password too short", "field": "password"})
				return
			}
			hashed, err := utils.HashPassword(input.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.Password = hashed
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
