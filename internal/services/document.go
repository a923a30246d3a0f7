package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/storage"
)

type DocumentService struct {
	db    *gorm.DB
	store storage.Uploader
	log   *logrus.Entry
}

func NewDocumentService(db *gorm.DB, store storage.Uploader) *DocumentService {
	return &DocumentService{db: db, store: store, log: logging.Service("documents")}
}

// docType infers the document type enum from the file name.
func docType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.DocumentTypePDF
	case ".doc", ".docx", ".odt":
		return models.DocumentTypeDoc
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return models.DocumentTypeImage
	default:
		return models.DocumentTypeText
	}
}

// Upload pushes the file to blob storage and records the document row with
// analysis pending.
func (s *DocumentService) Upload(ctx context.Context, clientID uuid.UUID, name, contentType string, data []byte) (*models.ClientDocument, error) {
	if clientID == uuid.Nil || name == "" {
		return nil, errors.New("client_id and name are required")
	}
	if s.store == nil {
		return nil, errors.New("blob storage not configured")
	}
	id := uuid.New()
	objectName := fmt.Sprintf("documents/%s/%s-%s", clientID, id, name)
	s.log.WithFields(logrus.Fields{"client": clientID, "name": name}).Info("uploading document")
	url, err := s.store.Upload(ctx, objectName, contentType, data)
	if err != nil {
		s.log.WithError(err).Error("document upload failed")
		return nil, fmt.Errorf("upload document: %w", err)
	}
	doc := models.ClientDocument{
		ID:             id,
		ClientID:       clientID,
		Name:           name,
		Type:           docType(name),
		URL:            url,
		UploadDate:     time.Now(),
		AnalysisStatus: models.AnalysisPending,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		s.log.WithError(err).Error("document create failed")
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*models.ClientDocument, error) {
	var d models.ClientDocument
	err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &d, nil
}

func (s *DocumentService) List(ctx context.Context, clientID *uuid.UUID) ([]models.ClientDocument, error) {
	q := s.db.WithContext(ctx).Order("upload_date desc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var out []models.ClientDocument
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

// SetAnalysis records the outcome of text extraction on the document.
func (s *DocumentService) SetAnalysis(ctx context.Context, id uuid.UUID, status, content string) (*models.ClientDocument, error) {
	d, err := s.Get(ctx, id)
	if err != nil || d == nil {
		return nil, err
	}
	switch status {
	case models.AnalysisAnalyzed, models.AnalysisProcessed, models.AnalysisError, models.AnalysisFailed:
	default:
		return nil, fmt.Errorf("unknown analysis status %q", status)
	}
	updates := map[string]any{"analysis_status": status, "content": content}
	if err := s.db.WithContext(ctx).Model(d).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update analysis: %w", err)
	}
	d.AnalysisStatus = status
	d.Content = content
	return d, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) bool {
	res := s.db.WithContext(ctx).Delete(&models.ClientDocument{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("document delete failed")
		return false
	}
	return res.RowsAffected > 0
}
