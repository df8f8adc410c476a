package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/HananAabout/PFEHotelGestion/models"

	"gorm.io/gorm"
)

// GenerateResetToken returns a random one-time token and its sha256 hash.
// The plain token goes to the user, the hash to the database.
func GenerateResetToken() (string, string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	token := hex.EncodeToString(b)
	hash := sha256.Sum256([]byte(token))
	return token, hex.EncodeToString(hash[:]), nil
}

// SaveResetToken stores the hashed token for a user, replacing any token
// previously issued to them.
func SaveResetToken(db *gorm.DB, userID uint, hashedToken string, expiresAt time.Time) error {
	var existing models.PasswordResetToken
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		existing.Token = hashedToken
		existing.ExpiresAt = expiresAt
		return db.Save(&existing).Error
	}

	rt := models.PasswordResetToken{
		UserID:    userID,
		Token:     hashedToken,
		ExpiresAt: expiresAt,
	}
	return db.Create(&rt).Error
}

// ConsumeResetToken validates a plain token and deletes it so it cannot be
// replayed. It returns the matching record on success.
func ConsumeResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	hash := sha256.Sum256([]byte(token))
	hashedToken := hex.EncodeToString(hash[:])

	var rt models.PasswordResetToken
	err := db.Where("token = ? AND expires_at > ?", hashedToken, time.Now()).First(&rt).Error
	if err != nil {
		return nil, errors.New("invalid or expired reset token")
	}

	if err := db.Delete(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}
