package models

import (
	"strings"
	"time"
)

// Payment methods, canonical French values. Some upstream screens send the
// English constants; NormalizeMethode maps them back.
const (
	MethodeEspeces  = "especes"
	MethodeCarte    = "carte"
	MethodeVirement = "virement"
)

// Payment types.
const (
	PaiementTotal   = "total"
	PaiementAcompte = "acompte"
	PaiementSolde   = "solde"
)

var methodeAliases = map[string]string{
	"especes":       MethodeEspeces,
	"carte":         MethodeCarte,
	"virement":      MethodeVirement,
	"cash":          MethodeEspeces,
	"credit_card":   MethodeCarte,
	"bank_transfer": MethodeVirement,
}

// NormalizeMethode maps a payment method to its canonical value. The empty
// string return means the method is unknown.
func NormalizeMethode(m string) string {
	return methodeAliases[strings.ToLower(strings.TrimSpace(m))]
}

// ValidPaiementType reports whether t is a known payment type.
func ValidPaiementType(t string) bool {
	switch t {
	case PaiementTotal, PaiementAcompte, PaiementSolde:
		return true
	}
	return false
}

type Payment struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ReservationID uint        `gorm:"index;not null" json:"reservation_id"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Montant       float64     `gorm:"type:decimal(10,2);not null" json:"montant"`
	Methode       string      `gorm:"size:20;not null" json:"methode"`
	Type          string      `gorm:"size:20;default:'total'" json:"type"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
