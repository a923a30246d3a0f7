package services

import (
	"context"
	"testing"

	"github.com/seovista/crm-backend/internal/models"
)

func TestLocalSeoSaveUpsertsAndAppendsMetric(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewLocalSeoService(db)
	ctx := context.Background()

	view, err := svc.Save(ctx, client.ID,
		models.LocalSeoSettings{BusinessName: "Panadería Sol", Category: "Bakery", City: "Valencia"},
		&models.LocalSeoMetric{GoogleReviewsCount: 12, GoogleReviewsAverage: 4.5},
	)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if view.Settings == nil || view.Settings.BusinessName != "Panadería Sol" {
		t.Fatalf("settings not stored: %+v", view.Settings)
	}
	if len(view.Metrics) != 1 {
		t.Fatalf("metrics = %d, want 1", len(view.Metrics))
	}
	firstID := view.Settings.ID

	// second save updates in place and appends a new snapshot
	view, err = svc.Save(ctx, client.ID,
		models.LocalSeoSettings{BusinessName: "Panadería Sol SL", Category: "Bakery", City: "Valencia"},
		&models.LocalSeoMetric{GoogleReviewsCount: 15, GoogleReviewsAverage: 4.6},
	)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if view.Settings.ID != firstID {
		t.Fatal("settings row replaced instead of updated")
	}
	if view.Settings.BusinessName != "Panadería Sol SL" {
		t.Fatalf("settings not updated: %+v", view.Settings)
	}
	if len(view.Metrics) != 2 {
		t.Fatalf("metrics = %d, want 2", len(view.Metrics))
	}
}

func TestLocalSeoSaveWithoutMetric(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewLocalSeoService(db)

	view, err := svc.Save(context.Background(), client.ID,
		models.LocalSeoSettings{BusinessName: "Sin métricas"}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(view.Metrics) != 0 {
		t.Fatalf("metrics = %d, want 0", len(view.Metrics))
	}
}

func TestLocalSeoGetEmpty(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewLocalSeoService(db)

	view, err := svc.Get(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Settings != nil {
		t.Fatal("expected nil settings for fresh client")
	}
}
