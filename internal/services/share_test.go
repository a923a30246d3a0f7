package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/sharecache"
)

const testBaseURL = "https://crm.example.com"

func disabledCache(t *testing.T) *sharecache.Cache {
	t.Helper()
	c, err := sharecache.New("")
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	return c
}

func liveCache(t *testing.T) *sharecache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return sharecache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestInvoiceShareRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	invSvc := NewInvoiceService(db, NewNumberingService(db))
	svc := NewShareService(db, disabledCache(t), testBaseURL)
	ctx := context.Background()

	inv, err := invSvc.Create(ctx, InvoiceInput{ClientID: client.ID, BaseAmount: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	url, err := svc.CreateInvoiceShareLink(ctx, inv.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !strings.HasPrefix(url, testBaseURL+"/invoices/share/") {
		t.Fatalf("unexpected url %s", url)
	}
	token := strings.TrimPrefix(url, testBaseURL+"/invoices/share/")

	view, err := svc.ResolveInvoiceToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view == nil {
		t.Fatal("token did not resolve")
	}
	if view.Invoice.ID != inv.ID {
		t.Fatalf("resolved invoice %s, want %s", view.Invoice.ID, inv.ID)
	}
	if view.Client.ID != client.ID {
		t.Fatalf("resolved client %s, want %s", view.Client.ID, client.ID)
	}

	// audit row written
	var shares int64
	if err := db.Model(&models.InvoiceShare{}).Where("invoice_id = ?", inv.ID).Count(&shares).Error; err != nil {
		t.Fatalf("count shares: %v", err)
	}
	if shares != 1 {
		t.Fatalf("share rows = %d, want 1", shares)
	}
}

func TestResolveUnknownTokenIsNil(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShareService(db, disabledCache(t), testBaseURL)

	view, err := svc.ResolveInvoiceToken(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view != nil {
		t.Fatal("unknown token resolved")
	}
}

func TestShareLinkForMissingInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShareService(db, disabledCache(t), testBaseURL)

	url, err := svc.CreateInvoiceShareLink(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Fatalf("got url %q for missing invoice", url)
	}
}

func TestRemintRevokesPreviousCachedToken(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	invSvc := NewInvoiceService(db, NewNumberingService(db))
	svc := NewShareService(db, liveCache(t), testBaseURL)
	ctx := context.Background()

	inv, err := invSvc.Create(ctx, InvoiceInput{ClientID: client.ID, BaseAmount: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	first, err := svc.CreateInvoiceShareLink(ctx, inv.ID)
	if err != nil {
		t.Fatalf("first mint: %v", err)
	}
	oldToken := strings.TrimPrefix(first, testBaseURL+"/invoices/share/")

	second, err := svc.CreateInvoiceShareLink(ctx, inv.ID)
	if err != nil {
		t.Fatalf("second mint: %v", err)
	}
	newToken := strings.TrimPrefix(second, testBaseURL+"/invoices/share/")
	if newToken == oldToken {
		t.Fatal("re-mint returned the same token")
	}

	// the old token was warm in the cache from the first mint; it must not
	// keep resolving there after being overwritten
	view, err := svc.ResolveInvoiceToken(ctx, oldToken)
	if err != nil {
		t.Fatalf("resolve old: %v", err)
	}
	if view != nil {
		t.Fatal("revoked token still resolves")
	}

	view, err = svc.ResolveInvoiceToken(ctx, newToken)
	if err != nil {
		t.Fatalf("resolve new: %v", err)
	}
	if view == nil || view.Invoice.ID != inv.ID {
		t.Fatal("new token did not resolve")
	}
}

func TestCachedTokenForDeletedInvoiceIsNil(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	invSvc := NewInvoiceService(db, NewNumberingService(db))
	svc := NewShareService(db, liveCache(t), testBaseURL)
	ctx := context.Background()

	inv, err := invSvc.Create(ctx, InvoiceInput{ClientID: client.ID, BaseAmount: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	url, err := svc.CreateInvoiceShareLink(ctx, inv.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	token := strings.TrimPrefix(url, testBaseURL+"/invoices/share/")

	if err := db.Delete(&models.Invoice{}, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("delete invoice: %v", err)
	}

	view, err := svc.ResolveInvoiceToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view != nil {
		t.Fatal("cached token resolved a deleted invoice")
	}
}

func TestCachedTokenStoreFailureIsAnError(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	invSvc := NewInvoiceService(db, NewNumberingService(db))
	svc := NewShareService(db, liveCache(t), testBaseURL)
	ctx := context.Background()

	inv, err := invSvc.Create(ctx, InvoiceInput{ClientID: client.ID, BaseAmount: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	url, err := svc.CreateInvoiceShareLink(ctx, inv.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	token := strings.TrimPrefix(url, testBaseURL+"/invoices/share/")

	// a broken store behind a warm cache entry must surface, not read as 404
	if err := db.Migrator().DropTable(&models.Invoice{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	view, err := svc.ResolveInvoiceToken(ctx, token)
	if err == nil {
		t.Fatal("store failure was reported as an unknown token")
	}
	if view != nil {
		t.Fatal("got a view from a broken store")
	}
}

func TestProposalShareExpiry(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewShareService(db, disabledCache(t), testBaseURL)
	ctx := context.Background()

	expired := time.Now().Add(-time.Hour)
	prop := models.Proposal{ID: uuid.New(), ClientID: client.ID, Title: "Caducada", Status: models.ProposalStatusSent, ExpiresAt: &expired}
	if err := db.Create(&prop).Error; err != nil {
		t.Fatalf("create proposal: %v", err)
	}

	url, err := svc.CreateProposalShareLink(ctx, prop.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	token := strings.TrimPrefix(url, testBaseURL+"/proposals/share/")

	if _, err := svc.ResolveProposalToken(ctx, token); !errors.Is(err, ErrShareExpired) {
		t.Fatalf("expected ErrShareExpired, got %v", err)
	}

	// push the expiry into the future and the same token works again
	future := time.Now().Add(24 * time.Hour)
	if err := db.Model(&models.Proposal{}).Where("id = ?", prop.ID).Update("expires_at", &future).Error; err != nil {
		t.Fatalf("update expiry: %v", err)
	}
	view, err := svc.ResolveProposalToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view == nil || view.Proposal.ID != prop.ID {
		t.Fatal("token did not resolve after extending expiry")
	}
}

func TestContractShareIncludesOrderedSections(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	contractSvc := NewContractService(db)
	svc := NewShareService(db, disabledCache(t), testBaseURL)
	ctx := context.Background()

	c, err := contractSvc.Create(ctx, &models.Contract{
		ClientID:  client.ID,
		Title:     "Contrato SEO",
		StartDate: time.Now(),
		Sections: []models.ContractSection{
			{Title: "Objeto"},
			{Title: "Duración"},
			{Title: "Honorarios"},
		},
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}

	url, err := svc.CreateContractShareLink(ctx, c.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	token := strings.TrimPrefix(url, testBaseURL+"/contracts/share/")

	view, err := svc.ResolveContractToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view == nil {
		t.Fatal("token did not resolve")
	}
	if len(view.Contract.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(view.Contract.Sections))
	}
	for i, s := range view.Contract.Sections {
		if s.Position != i {
			t.Fatalf("section %d has position %d", i, s.Position)
		}
	}
}
