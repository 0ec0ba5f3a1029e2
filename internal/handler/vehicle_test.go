package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/repository"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database integration test")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func listVehicles(t *testing.T, h *VehicleHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/vehicles", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	return rec
}

// Listing the fleet is a pure read: two consecutive calls return the same
// status and body, and neither changes any state.
func TestVehicleListIdempotent(t *testing.T) {
	db := testDB(t)
	locations := repository.NewLocationRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	h := NewVehicleHandler(vehicles, locations)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cleanupCtx := context.Background()

	loc := model.Location{Origin: "Nairobi", Destination: "Kisumu", CostPerKg: 4.0}
	if err := locations.Create(ctx, &loc); err != nil {
		t.Fatalf("create location: %v", err)
	}
	t.Cleanup(func() { _ = locations.Delete(cleanupCtx, loc.ID) })

	v := model.Vehicle{
		NumberPlate: fmt.Sprintf("IT-%d", time.Now().UnixNano()%1000000),
		Capacity:    1200,
		DriverName:  "it-driver",
		DriverPhone: "0712345678",
		Status:      "empty",
		LocationID:  loc.ID,
	}
	if err := vehicles.Create(ctx, &v); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	t.Cleanup(func() { _ = vehicles.Delete(cleanupCtx, v.ID) })

	first := listVehicles(t, h)
	second := listVehicles(t, h)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200 on both calls, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("repeated list must return the same body:\nfirst:  %s\nsecond: %s",
			first.Body.String(), second.Body.String())
	}
}
