package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/HananAabout/PFEHotelGestion/availability"
	"github.com/HananAabout/PFEHotelGestion/models"
)

func TestClientDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)

	body := `{"nom":"Martin","prenom":"Sophie","email":"sophie@example.com","telephone":"0600000000","cin":"AB123"}`
	w := doJSON(r, http.MethodPost, "/api/clients", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/clients", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409 got %d", w.Code)
	}
	var resp struct {
		Field string `json:"field"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Field != "email" {
		t.Fatalf("conflict should point at the email field, got %q", resp.Field)
	}
}

func TestDeleteClientReferencedByReservation(t *testing.T) {
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

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/clients/%d", client.ID), token, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}

	// the client is still listed
	w = doJSON(r, http.MethodGet, "/api/clients", token, "")
	var clients []models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(clients) != 1 || clients[0].ID != client.ID {
		t.Fatalf("client should remain after failed delete, got %+v", clients)
	}
}

func TestClientReservationsSubResource(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, token := createStaff(t, db, "staff@hotel.local", models.RoleReceptionniste)
	client := createClientRecord(t, db, "sophie@example.com")
	other := createClientRecord(t, db, "paul@example.com")
	room := createRoomRecord(t, db, "101")

	for i, c := range []models.Client{client, other} {
		reservation := models.Reservation{
			ClientID:    c.ID,
			ChambreID:   room.ID,
			DateArrivee: mustDate("2025-04-10").AddDate(0, 0, i*5),
			DateDepart:  mustDate("2025-04-12").AddDate(0, 0, i*5),
			Statut:      availability.ReservationConfirmee,
		}
		if err := db.Create(&reservation).Error; err != nil {
			t.Fatalf("seed reservation: %v", err)
		}
	}

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/clients/%d/reservations", client.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var reservations []models.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &reservations); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reservations) != 1 || reservations[0].ClientID != client.ID {
		t.Fatalf("expected only the client's reservation, got %+v", reservations)
	}
}
