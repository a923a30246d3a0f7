package services

import (
	"context"
	"testing"

	"github.com/seovista/crm-backend/internal/models"
)

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[name] = data
	return "http://storage.local/crm-files/" + name, nil
}

func TestDocumentUpload(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	store := &memStore{}
	svc := NewDocumentService(db, store)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, client.ID, "auditoria.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Type != models.DocumentTypePDF {
		t.Fatalf("type = %s, want pdf", doc.Type)
	}
	if doc.AnalysisStatus != models.AnalysisPending {
		t.Fatalf("analysis = %s, want pending", doc.AnalysisStatus)
	}
	if doc.URL == "" {
		t.Fatal("url not recorded")
	}
	if len(store.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(store.objects))
	}
}

func TestDocTypeInference(t *testing.T) {
	cases := map[string]string{
		"a.pdf":  models.DocumentTypePDF,
		"b.DOCX": models.DocumentTypeDoc,
		"c.png":  models.DocumentTypeImage,
		"d.csv":  models.DocumentTypeText,
		"no-ext": models.DocumentTypeText,
		"e.webp": models.DocumentTypeImage,
	}
	for name, want := range cases {
		if got := docType(name); got != want {
			t.Fatalf("docType(%s) = %s, want %s", name, got, want)
		}
	}
}

func TestSetAnalysisRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db)
	svc := NewDocumentService(db, &memStore{})
	ctx := context.Background()

	doc, err := svc.Upload(ctx, client.ID, "notas.txt", "text/plain", []byte("hola"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.SetAnalysis(ctx, doc.ID, "done", ""); err == nil {
		t.Fatal("expected error for unknown status")
	}
	updated, err := svc.SetAnalysis(ctx, doc.ID, models.AnalysisAnalyzed, "texto extraído")
	if err != nil {
		t.Fatalf("set analysis: %v", err)
	}
	if updated.Content != "texto extraído" {
		t.Fatalf("content = %q", updated.Content)
	}
}
