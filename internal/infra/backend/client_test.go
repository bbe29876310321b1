package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Spok95/metalstock/internal/domain/receiving"
)

func TestReceiveLot_PostsJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != lotsPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	qty := 12
	rec := receiving.LotRecord{
		DiameterMm:       10,
		Shape:            "round",
		Density:          7.93,
		LengthMm:         2500,
		LotNumber:        "L-77",
		ReceivedQuantity: &qty,
		PurchaseMonth:    "2510",
		ReceivedDate:     time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	c := NewClient(srv.URL+"/", time.Second)
	if err := c.ReceiveLot(context.Background(), rec); err != nil {
		t.Fatalf("ReceiveLot: %v", err)
	}

	if got["lot_number"] != "L-77" || got["shape"] != "round" || got["received_quantity"] != float64(12) {
		t.Fatalf("body = %v", got)
	}
	if _, ok := got["received_weight_kg"]; ok {
		t.Fatal("missing weight must be omitted")
	}
	if got["received_date"] != "2025-10-01T00:00:00Z" {
		t.Fatalf("received_date = %v", got["received_date"])
	}
}

func TestReceiveLot_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate lot", http.StatusConflict)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).ReceiveLot(context.Background(), receiving.LotRecord{LotNumber: "X"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if se.Code != http.StatusConflict || se.Body != "duplicate lot" {
		t.Fatalf("se = %+v", se)
	}
}
