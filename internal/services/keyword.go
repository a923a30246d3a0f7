package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	enc "github.com/seovista/crm-backend/internal/encoding"
	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

type KeywordService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewKeywordService(db *gorm.DB) *KeywordService {
	return &KeywordService{db: db, log: logging.Service("keywords")}
}

func (s *KeywordService) Create(ctx context.Context, k *models.Keyword) (*models.Keyword, error) {
	if k.ClientID == uuid.Nil || strings.TrimSpace(k.Keyword) == "" {
		return nil, errors.New("client_id and keyword are required")
	}
	k.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(k).Error; err != nil {
		s.log.WithError(err).Error("keyword create failed")
		return nil, fmt.Errorf("create keyword: %w", err)
	}
	return k, nil
}

func (s *KeywordService) Get(ctx context.Context, id uuid.UUID) (*models.Keyword, error) {
	var k models.Keyword
	err := s.db.WithContext(ctx).First(&k, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load keyword: %w", err)
	}
	return &k, nil
}

func (s *KeywordService) List(ctx context.Context, clientID *uuid.UUID) ([]models.Keyword, error) {
	q := s.db.WithContext(ctx).Order("keyword asc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var out []models.Keyword
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	return out, nil
}

func (s *KeywordService) Update(ctx context.Context, k *models.Keyword) (*models.Keyword, error) {
	existing, err := s.Get(ctx, k.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(k).Error; err != nil {
		return nil, fmt.Errorf("update keyword: %w", err)
	}
	return k, nil
}

func (s *KeywordService) Delete(ctx context.Context, id uuid.UUID) bool {
	res := s.db.WithContext(ctx).Delete(&models.Keyword{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("keyword delete failed")
		return false
	}
	return res.RowsAffected > 0
}

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCSV reads a keyword export (any common charset) and inserts one row
// per valid line. Expected header: keyword[,position][,search_volume]
// [,target_url]. Unknown columns are ignored; broken rows are skipped and
// reported, never fatal.
func (s *KeywordService) ImportCSV(ctx context.Context, clientID uuid.UUID, r io.Reader) (*ImportResult, error) {
	if clientID == uuid.Nil {
		return nil, errors.New("client_id is required")
	}
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}
	cr := csv.NewReader(utf8r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	kwIdx, ok := cols["keyword"]
	if !ok {
		return nil, errors.New("missing keyword column")
	}

	res := &ImportResult{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}
		if kwIdx >= len(record) || strings.TrimSpace(record[kwIdx]) == "" {
			res.Skipped++
			continue
		}
		k := models.Keyword{
			ID:       uuid.New(),
			ClientID: clientID,
			Keyword:  strings.TrimSpace(record[kwIdx]),
		}
		k.Position = intCol(record, cols, "position")
		k.SearchVolume = intCol(record, cols, "search_volume")
		if i, ok := cols["target_url"]; ok && i < len(record) {
			k.TargetURL = strings.TrimSpace(record[i])
		}
		if err := s.db.WithContext(ctx).Create(&k).Error; err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}
		res.Imported++
	}
	s.log.WithFields(logrus.Fields{"imported": res.Imported, "skipped": res.Skipped}).Info("keyword import finished")
	return res, nil
}

func intCol(record []string, cols map[string]int, name string) *int {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(record[i]))
	if err != nil {
		return nil
	}
	return &n
}

// Stats aggregates the numbers the dashboard shows for keywords.
type KeywordStats struct {
	Total    int `json:"total"`
	Top10    int `json:"top10"`
	Improved int `json:"improved"`
}

func (s *KeywordService) Stats(ctx context.Context, clientID uuid.UUID) (KeywordStats, error) {
	var kws []models.Keyword
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&kws).Error; err != nil {
		return KeywordStats{}, fmt.Errorf("keyword stats: %w", err)
	}
	st := KeywordStats{Total: len(kws)}
	for _, k := range kws {
		if k.Position != nil && *k.Position <= 10 && *k.Position > 0 {
			st.Top10++
		}
		if k.Position != nil && k.PreviousPosition != nil && *k.Position < *k.PreviousPosition {
			st.Improved++
		}
	}
	return st, nil
}
