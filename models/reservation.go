package models

import "time"

type Reservation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ChambreID uint `gorm:"index;not null" json:"chambre_id"`
	Chambre   Room `gorm:"foreignKey:ChambreID" json:"chambre,omitempty"`

	// Calendar dates, half-open [DateArrivee, DateDepart).
	DateArrivee time.Time `gorm:"not null" json:"date_arrivee"`
	DateDepart  time.Time `gorm:"not null" json:"date_depart"`

	Statut    string    `gorm:"size:20;default:'en_attente';index" json:"statut"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Paiements []Payment `gorm:"foreignKey:ReservationID" json:"paiements,omitempty"`
}
