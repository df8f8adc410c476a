// Package availability holds the room/reservation domain rules: the half-open
// overlap check used to accept or reject a booking, the derivation of a room's
// display statut from its reservations, and the reservation statut transition
// guard. Everything here is pure so controllers can call it before touching
// the database.
package availability

import (
	"errors"
	"strings"
	"time"
)

// Room statuts.
const (
	StatusDisponible = "disponible"
	StatusReservee   = "reservee"
	StatusOccupee    = "occupee"
	StatusNettoyage  = "nettoyage"
)

// Reservation statuts.
const (
	ReservationEnAttente = "en_attente"
	ReservationConfirmee = "confirmee"
	ReservationAnnulee   = "annulee"
	ReservationTerminee  = "terminee"
)

var ErrDateOrder = errors.New("arrival date must be before departure date")

// Interval is a half-open [Arrivee, Depart) stay for one room. ReservationID
// is zero for a candidate that does not exist yet.
type Interval struct {
	ReservationID uint
	Arrivee       time.Time
	Depart        time.Time
}

// Overlaps reports whether two half-open date ranges share at least one day.
// A departure on day X and an arrival on day X do not conflict.
func Overlaps(a1, d1, a2, d2 time.Time) bool {
	return a1.Before(d2) && a2.Before(d1)
}

// ValidateRange checks the arrival < departure invariant.
func ValidateRange(arrivee, depart time.Time) error {
	if !arrivee.Before(depart) {
		return ErrDateOrder
	}
	return nil
}

// Conflicts reports whether the candidate stay overlaps any of the existing
// stays for the same room. An existing stay with the candidate's own
// reservation id is skipped, so updates do not conflict with themselves.
// Cancelled reservations must be filtered out by the caller.
func Conflicts(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if candidate.ReservationID != 0 && e.ReservationID == candidate.ReservationID {
			continue
		}
		if Overlaps(candidate.Arrivee, candidate.Depart, e.Arrivee, e.Depart) {
			return true
		}
	}
	return false
}

// DeriveStatus computes a room's display statut for the given instant from
// its non-cancelled stays: occupee when a stay contains today, reservee when
// a stay starts within horizonDays (0 = today only), disponible otherwise.
// A manual nettoyage override is applied by the caller, not here.
func DeriveStatus(now time.Time, horizonDays int, stays []Interval) string {
	today := DateOnly(now)
	for _, s := range stays {
		if !today.Before(s.Arrivee) && today.Before(s.Depart) {
			return StatusOccupee
		}
	}
	if horizonDays < 0 {
		horizonDays = 0
	}
	horizon := today.AddDate(0, 0, horizonDays)
	for _, s := range stays {
		if !s.Arrivee.Before(today) && !s.Arrivee.After(horizon) {
			return StatusReservee
		}
	}
	return StatusDisponible
}

// DateOnly truncates t to midnight UTC, the calendar-day granularity used
// for all stays.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidReservationStatus reports whether s is a known reservation statut.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationEnAttente, ReservationConfirmee, ReservationAnnulee, ReservationTerminee:
		return true
	}
	return false
}

// ValidRoomStatus reports whether s is a known room statut.
func ValidRoomStatus(s string) bool {
	switch s {
	case StatusDisponible, StatusReservee, StatusOccupee, StatusNettoyage:
		return true
	}
	return false
}

// CanTransition reports whether a reservation may move from one statut to
// another. annulee and terminee are terminal: nothing leaves them.
func CanTransition(from, to string) bool {
	if !ValidReservationStatus(to) {
		return false
	}
	if from == ReservationAnnulee || from == ReservationTerminee {
		return false
	}
	return true
}

var accentFolder = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "î", "i", "ï", "i",
	"ô", "o", "û", "u", "ù", "u", "ç", "c",
)

// RoleAllowed compares a user's role against the role a route requires.
// Upstream data stores roles with inconsistent casing and accents
// ("Administrateur" vs "administrateur", "Réceptionniste" vs
// "receptionniste"), so the comparison folds both before matching.
// An empty required role admits any authenticated user.
func RoleAllowed(userRole, requiredRole string) bool {
	if requiredRole == "" {
		return true
	}
	return foldRole(userRole) == foldRole(requiredRole)
}

func foldRole(r string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(r)))
}
