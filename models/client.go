package models

import "time"

type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nom          string    `gorm:"size:100;not null" json:"nom"`
	Prenom       string    `gorm:"size:100;not null" json:"prenom"`
	Email        string    `gorm:"size:200;uniqueIndex;not null" json:"email"`
	Telephone    string    `gorm:"size:30" json:"telephone"`
	TypeDocument string    `gorm:"size:30;default:'cin'" json:"type_document"`
	CIN          string    `gorm:"size:50" json:"cin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Reservations []Reservation `gorm:"foreignKey:ClientID" json:"reservations,omitempty"`
}
