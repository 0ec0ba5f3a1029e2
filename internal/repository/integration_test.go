package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/matwana/logistics/internal/model"
)

// Integration tests run against a real MySQL instance with the schema from
// migrations/schema.sql applied.  They are skipped unless TEST_DB_DSN is
// set, e.g.
//
//	TEST_DB_DSN="root@tcp(localhost:3306)/logistics_test?parseTime=true&loc=UTC"
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

func createTestUser(t *testing.T, ctx context.Context, users *UserRepo, role string, n int64) uint64 {
	t.Helper()
	id, err := users.Create(ctx, model.User{
		Name:         fmt.Sprintf("it-user-%d", n),
		PhoneNumber:  fmt.Sprintf("07%08d", n%100000000),
		Email:        fmt.Sprintf("it-user-%d@example.com", n),
		PasswordHash: "$2a$12$integrationtesthashvalue00000000000000000000000000000",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	return id
}

// Deleting a user must take their assignment rows with it (ON DELETE CASCADE
// on user_parcel_assignments.user_id), so a later workload query for that
// user comes back empty instead of surfacing orphaned rows.
func TestUserDeleteCascadesAssignments(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	locations := NewLocationRepo(db)
	parcels := NewParcelRepo(db)
	assignments := NewAssignmentRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Cleanup callbacks run after the deferred cancel, so they get their own
	// context.
	cleanupCtx := context.Background()

	base := time.Now().UnixNano()
	staffID := createTestUser(t, ctx, users, model.RoleCustomerService, base)
	senderID := createTestUser(t, ctx, users, model.RoleCustomer, base+1)
	recipientID := createTestUser(t, ctx, users, model.RoleCustomer, base+2)
	t.Cleanup(func() {
		_ = users.Delete(cleanupCtx, senderID)
		_ = users.Delete(cleanupCtx, recipientID)
	})

	loc := model.Location{Origin: "Nairobi", Destination: "Mombasa", CostPerKg: 5.0}
	if err := locations.Create(ctx, &loc); err != nil {
		t.Fatalf("create location: %v", err)
	}
	t.Cleanup(func() { _ = locations.Delete(cleanupCtx, loc.ID) })

	p := model.Parcel{
		Name:           "it-parcel",
		Description:    "integration test parcel",
		TrackingNumber: fmt.Sprintf("IT-%d", base),
		Weight:         2.0,
		Status:         model.StatusPending,
		ShippingCost:   model.ShippingCost(loc.CostPerKg, 2.0),
		SenderID:       senderID,
		RecipientID:    recipientID,
		LocationID:     loc.ID,
	}
	if err := parcels.Create(ctx, &p, staffID); err != nil {
		t.Fatalf("create parcel: %v", err)
	}
	t.Cleanup(func() { _ = parcels.Delete(cleanupCtx, p.ID) })

	rows, err := assignments.ListByUser(ctx, staffID)
	if err != nil {
		t.Fatalf("ListByUser before delete: %v", err)
	}
	if len(rows) != 1 || rows[0].ParcelID != p.ID {
		t.Fatalf("expected one assignment for parcel %d, got %v", p.ID, rows)
	}
	owned, err := assignments.ParcelsForUser(ctx, staffID)
	if err != nil {
		t.Fatalf("ParcelsForUser before delete: %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("expected one assigned parcel, got %d", len(owned))
	}

	if err := users.Delete(ctx, staffID); err != nil {
		t.Fatalf("delete staff user: %v", err)
	}

	rows, err = assignments.ListByUser(ctx, staffID)
	if err != nil {
		t.Fatalf("ListByUser after delete: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no assignments after user delete, got %v", rows)
	}
	owned, err = assignments.ParcelsForUser(ctx, staffID)
	if err != nil {
		t.Fatalf("ParcelsForUser after delete: %v", err)
	}
	if len(owned) != 0 {
		t.Fatalf("expected no assigned parcels after user delete, got %d", len(owned))
	}

	// The parcel itself survives; only the assignment rows are cascaded.
	if _, err := parcels.GetByID(ctx, p.ID); err != nil {
		t.Fatalf("parcel should survive staff deletion: %v", err)
	}
}
