package models

import "time"

// Staff roles. Stored data carries casing and accent variants of these, so
// comparisons go through availability.RoleAllowed, which folds both.
const (
	RoleAdministrateur = "administrateur"
	RoleReceptionniste = "receptionniste"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"size:100;not null" json:"nom"`
	Prenom    string    `gorm:"size:100;not null" json:"prenom"`
	Email     string    `gorm:"size:200;uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"size:50;default:'receptionniste';not null" json:"role"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never round-tripped
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
