package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedClient inserts a client with a unique name and phone number.
func SeedClient(t *testing.T, pool *pgxpool.Pool) domain.Client {
	t.Helper()

	suffix := uniqueSuffix()
	c := domain.Client{
		Name:    "Client " + suffix,
		Email:   "client-" + suffix + "@example.com",
		Phone:   "+1876555" + suffix[:4],
		Address: "1 Test Road, Kingston",
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO clients (name, email, phone, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedClient: %v", err)
	}

	return c
}

// SeedInvoice inserts a general invoice for the client with two line items.
func SeedInvoice(t *testing.T, pool *pgxpool.Pool, clientID int64) domain.Invoice {
	t.Helper()
	ctx := context.Background()

	inv := domain.Invoice{
		ClientID: clientID,
		Type:     domain.InvoiceTypeGeneral,
		Date:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Vehicle:  "Toyota Corolla",
		LicNo:    "PA 1234",
		Document: domain.NoDocument(),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO invoices (client_id, invoice_type, invoice_date, vehicle, lic_no)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		inv.ClientID, string(inv.Type), inv.Date, inv.Vehicle, inv.LicNo,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedInvoice insert invoice: %v", err)
	}

	items := []domain.LineItem{
		{Description: "Brake service", LabourCost: decimal.RequireFromString("3000.00"), PartsCost: decimal.RequireFromString("8500.00")},
		{Description: "Oil filter", LabourCost: decimal.Zero, PartsCost: decimal.RequireFromString("1200.50")},
	}
	for _, it := range items {
		it.InvoiceID = inv.ID
		err := pool.QueryRow(ctx,
			`INSERT INTO invoice_items (invoice_id, description, labour_cost, parts_cost)
			 VALUES ($1, $2, $3::numeric, $4::numeric)
			 RETURNING id`,
			inv.ID, it.Description, it.LabourCost.String(), it.PartsCost.String(),
		).Scan(&it.ID)
		if err != nil {
			t.Fatalf("testhelper: SeedInvoice insert item: %v", err)
		}
		inv.Items = append(inv.Items, it)
	}

	return inv
}

// SeedProfile inserts an active follow-up profile for the client.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, clientID int64, lastService, next *time.Time) domain.FollowUpProfile {
	t.Helper()

	p := domain.FollowUpProfile{
		ClientID:         clientID,
		IsActive:         true,
		LastServiceDate:  lastService,
		NextFollowUpDate: next,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO follow_up_profiles (client_id, is_active, last_service_date, next_follow_up_date)
		 VALUES ($1, TRUE, $2, $3)
		 RETURNING id, created_at, updated_at`,
		clientID, lastService, next,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// Date returns a pointer to midnight UTC of the given day.
func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
