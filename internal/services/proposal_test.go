package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seovista/crm-backend/internal/models"
)

type fakeGenerator struct {
	content string
	err     error
}

func (f fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f.content, f.err
}

func TestProposalSendSetsExpiry(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewProposalService(db, fakeGenerator{})
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Proposal{ClientID: client.ID, Title: "Propuesta SEO"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sent, err := svc.Send(ctx, p.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent.Status != models.ProposalStatusSent {
		t.Fatalf("status = %s, want sent", sent.Status)
	}
	if sent.SentAt == nil {
		t.Fatal("sent_at not stamped")
	}
	if sent.ExpiresAt == nil {
		t.Fatal("default expiry not set")
	}
	days := time.Until(*sent.ExpiresAt).Hours() / 24
	if days < 29 || days > 31 {
		t.Fatalf("expiry %.1f days away, want ~30", days)
	}
}

func TestProposalSendKeepsExplicitExpiry(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewProposalService(db, fakeGenerator{})
	ctx := context.Background()

	exp := time.Now().AddDate(0, 0, 7)
	p, err := svc.Create(ctx, &models.Proposal{ClientID: client.ID, Title: "Corta", ExpiresAt: &exp})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sent, err := svc.Send(ctx, p.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !sent.ExpiresAt.Equal(exp) {
		t.Fatalf("expiry overwritten: %v", sent.ExpiresAt)
	}
}

func TestGenerateContentStoresNarrative(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewProposalService(db, fakeGenerator{content: "## Propuesta\nTexto generado."})
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Proposal{ClientID: client.ID, Title: "Con contenido"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GenerateContent(ctx, p.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.AIContent == "" {
		t.Fatal("content not stored")
	}
}

func TestGenerateContentDegradesOnAPIFailure(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewProposalService(db, fakeGenerator{err: errors.New("api down")})
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Proposal{ClientID: client.ID, Title: "Sin contenido"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GenerateContent(ctx, p.ID)
	if err != nil {
		t.Fatalf("expected graceful degradation, got %v", err)
	}
	if got.AIContent != "" {
		t.Fatalf("content should stay empty, got %q", got.AIContent)
	}
}
