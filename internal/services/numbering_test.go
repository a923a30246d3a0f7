package services

import (
	"context"
	"fmt"
	"time"

	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seovista/crm-backend/internal/models"
)

func TestGenerateInvoiceNumberSequence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNumberingService(db)
	ctx := context.Background()
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		got := svc.GenerateInvoiceNumber(ctx)
		want := fmt.Sprintf("%d-%04d", year, i)
		if got != want {
			t.Fatalf("number %d: got %s, want %s", i, got, want)
		}
	}
}

func TestGenerateInvoiceNumberSeedsFromExisting(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	year := time.Now().Year()

	// Pre-existing invoices (import scenario) without a counter row.
	for _, seq := range []int{1, 7, 3} {
		inv := models.Invoice{
			ID:            uuid.New(),
			InvoiceNumber: fmt.Sprintf("%d-%04d", year, seq),
			ClientID:      client.ID,
			BaseAmount:    decimal.NewFromInt(100),
			TaxRate:       decimal.NewFromInt(21),
			TaxAmount:     decimal.NewFromInt(21),
			TotalAmount:   decimal.NewFromInt(121),
			Status:        models.InvoiceStatusDraft,
			IssueDate:     time.Now(),
		}
		if err := db.Create(&inv).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}

	svc := NewNumberingService(db)
	got := svc.GenerateInvoiceNumber(context.Background())
	want := fmt.Sprintf("%d-0008", year)
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestYearBoundaryResetsSequence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNumberingService(db)
	ctx := context.Background()
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		if _, err := svc.nextSeq(ctx, year); err != nil {
			t.Fatalf("bump %d: %v", i, err)
		}
	}

	seq, err := svc.nextSeq(ctx, year+1)
	if err != nil {
		t.Fatalf("new year: %v", err)
	}
	if seq != 1 {
		t.Fatalf("first number of %d = %d, want 1", year+1, seq)
	}

	// the previous year's counter is untouched by the new one
	seq, err = svc.nextSeq(ctx, year)
	if err != nil {
		t.Fatalf("old year: %v", err)
	}
	if seq != 4 {
		t.Fatalf("old year continued at %d, want 4", seq)
	}
}

func TestGenerateInvoiceNumberNoDuplicatesAcrossCalls(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNumberingService(db)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		n := svc.GenerateInvoiceNumber(ctx)
		if seen[n] {
			t.Fatalf("duplicate invoice number %s", n)
		}
		seen[n] = true
	}
}
