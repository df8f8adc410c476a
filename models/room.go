package models

import "time"

// Room categories.
const (
	CategorieSimple = "simple"
	CategorieDouble = "double"
	CategorieSuite  = "suite"
	CategorieLuxe   = "luxe"
)

// ValidCategorie reports whether c is a known room category.
func ValidCategorie(c string) bool {
	switch c {
	case CategorieSimple, CategorieDouble, CategorieSuite, CategorieLuxe:
		return true
	}
	return false
}

type Room struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Numero    string  `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	Categorie string  `gorm:"size:20;not null" json:"categorie"`
	Prix      float64 `gorm:"type:decimal(10,2);not null" json:"prix"`
	// Statut is staff-edited; a persisted "nettoyage" acts as a manual
	// override of the derived statut until staff clears it.
	Statut    string    `gorm:"size:20;default:'disponible';index" json:"statut"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Reservations []Reservation `gorm:"foreignKey:ChambreID" json:"reservations,omitempty"`
}
