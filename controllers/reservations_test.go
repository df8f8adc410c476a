package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/models"
)

func reservationBody(clientID, chambreID uint, arrivee, depart, statut string) string {
	b := map[string]any{
		"client_id":    clientID,
		"chambre_id":   chambreID,
		"date_arrivee": arrivee,
		"date_depart":  depart,
	}
	if statut != "" {
		b["statut"] = statut
	}
	data, _ := json.Marshal(b)
	return string(data)
}

func TestReservationOverlapRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	w := doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-10", "2025-04-12", ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var first models.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode first booking: %v", err)
	}

	// overlapping stay on the same room
	w = doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-11", "2025-04-13", ""))
	if w.Code != http.StatusConflict {
		t.Fatalf("overlapping booking: expected 409 got %d (%s)", w.Code, w.Body.String())
	}

	// adjacent stay: departure day equals the new arrival day
	w = doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-12", "2025-04-14", ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("adjacent booking: expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	// a cancelled reservation does not block the room
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/reservations/%d/statut", first.ID), token,
		`{"statut":"annulee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-10", "2025-04-12", ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("rebooking over cancelled stay: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReservationInvalidRangeRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	for _, dates := range [][2]string{
		{"2025-04-12", "2025-04-12"},
		{"2025-04-13", "2025-04-12"},
	} {
		w := doJSON(r, http.MethodPost, "/api/reservations", token,
			reservationBody(client.ID, room.ID, dates[0], dates[1], ""))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("range %v: expected 400 got %d", dates, w.Code)
		}
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no reservation rows, got %d", count)
	}
}

func TestReservationCreateStatutRestricted(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	w := doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-05-01", "2025-05-03", "terminee"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("creating directly in terminee: expected 400 got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-05-01", "2025-05-03", "confirmee"))
	if w.Code != http.StatusCreated {
		t.Fatalf("creating in confirmee: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestReservationStatusTransitionGuard(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	reservation := models.Reservation{
		ClientID:    client.ID,
		ChambreID:   room.ID,
		DateArrivee: mustDate("2025-04-10"),
		DateDepart:  mustDate("2025-04-12"),
		Statut:      availability.ReservationEnAttente,
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	path := fmt.Sprintf("/api/reservations/%d/statut", reservation.ID)

	w := doJSON(r, http.MethodPatch, path, token, `{"statut":"confirmee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("en_attente -> confirmee: expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPatch, path, token, `{"statut":"terminee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("confirmee -> terminee: expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	// terminal states are sticky
	w = doJSON(r, http.MethodPatch, path, token, `{"statut":"confirmee"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("terminee -> confirmee: expected 409 got %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, path, token, `{"statut":"archivee"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown statut: expected 400 got %d", w.Code)
	}
}

func TestReservationUpdateExcludesOwnInterval(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	w := doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-10", "2025-04-12", ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d", w.Code)
	}
	var created models.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// extending the stay overlaps the previous interval of the same
	// reservation, which must not count as a conflict
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/reservations/%d", created.ID), token,
		reservationBody(client.ID, room.ID, "2025-04-10", "2025-04-15", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("self-overlapping update: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestReservationCreateIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	// two identical bookings: exactly one commits, the loser rolls back
	// without leaving a partial row or a held transaction
	body := reservationBody(client.ID, room.ID, "2025-04-10", "2025-04-12", "")
	first := doJSON(r, http.MethodPost, "/api/reservations", token, body)
	second := doJSON(r, http.MethodPost, "/api/reservations", token, body)
	if first.Code != http.StatusCreated || second.Code != http.StatusConflict {
		t.Fatalf("expected 201 then 409, got %d then %d", first.Code, second.Code)
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one reservation row, got %d", count)
	}

	// the room row is released after both requests
	w := doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, "2025-04-12", "2025-04-14", ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("follow-up booking after rollback: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAutoDeriveFollowsReservations(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterWithConfig(t, db, &config.Config{StatusAutoDerive: true, StatusHorizonDays: 0})
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	today := availability.DateOnly(time.Now())
	arrivee := today.Format("2006-01-02")
	depart := today.AddDate(0, 0, 2).Format("2006-01-02")

	w := doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, arrivee, depart, "confirmee"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var created models.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var got models.Room
	if err := db.First(&got, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if got.Statut != availability.StatusOccupee {
		t.Fatalf("after create: statut = %s, want %s", got.Statut, availability.StatusOccupee)
	}

	// cancelling the stay frees the room again
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/reservations/%d/statut", created.ID), token,
		`{"statut":"annulee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if err := db.First(&got, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if got.Statut != availability.StatusDisponible {
		t.Fatalf("after cancel: statut = %s, want %s", got.Statut, availability.StatusDisponible)
	}

	// a manual nettoyage override survives reservation mutations
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/rooms/%d/status", room.ID), token,
		`{"statut":"nettoyage"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set nettoyage: expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodPost, "/api/reservations", token,
		reservationBody(client.ID, room.ID, arrivee, depart, "confirmee"))
	if w.Code != http.StatusCreated {
		t.Fatalf("rebook: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	if err := db.First(&got, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if got.Statut != availability.StatusNettoyage {
		t.Fatalf("nettoyage override clobbered: statut = %s", got.Statut)
	}
}

func TestDeleteReservationReferencedByPayment(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	room := createRoomRecord(t, db, "101")

	reservation := models.Reservation{
		ClientID:    client.ID,
		ChambreID:   room.ID,
		DateArrivee: mustDate("2025-04-10"),
		DateDepart:  mustDate("2025-04-12"),
		Statut:      availability.ReservationConfirmee,
	}
	if err := db.Create(&reservation).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	payment := models.Payment{ReservationID: reservation.ID, Montant: 160, Methode: models.MethodeCarte, Type: models.PaiementTotal}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", reservation.ID), token, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 1 {
		t.Fatalf("reservation should remain, count = %d", count)
	}
}
