package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seovista/crm-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.CompanySettings{}, &models.Client{},
		&models.SeoPack{}, &models.Proposal{}, &models.Contract{},
		&models.ContractSection{}, &models.Invoice{}, &models.InvoiceShare{},
		&models.InvoiceCounter{}, &models.ClientDocument{}, &models.Keyword{},
		&models.LocalSeoSettings{}, &models.LocalSeoMetric{},
		&models.SeoMetric{}, &models.TimelineEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestClient(t *testing.T, db *gorm.DB) models.Client {
	t.Helper()
	c := models.Client{ID: uuid.New(), Name: "Panadería Sol", Email: "sol@example.com", City: "Valencia", IsActive: true}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}
