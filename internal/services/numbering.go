package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

// NumberingService hands out year-scoped sequential invoice numbers in the
// form YYYY-NNNN. The sequence lives in the invoice_counters table and is
// bumped with a single UPDATE ... RETURNING, so concurrent callers can never
// observe the same number. The first use in a year seeds the counter from
// whatever numbers already exist (imports, restored backups).
type NumberingService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewNumberingService(db *gorm.DB) *NumberingService {
	return &NumberingService{db: db, log: logging.Service("numbering")}
}

// GenerateInvoiceNumber returns the next invoice number for the current
// calendar year. A counter failure is logged and masked: the caller gets the
// year's default first number instead of an error.
func (s *NumberingService) GenerateInvoiceNumber(ctx context.Context) string {
	year := time.Now().Year()
	seq, err := s.nextSeq(ctx, year)
	if err != nil {
		s.log.WithError(err).WithField("year", year).Warn("counter unavailable, falling back to first number")
		return fmt.Sprintf("%d-0001", year)
	}
	return fmt.Sprintf("%d-%04d", year, seq)
}

func (s *NumberingService) nextSeq(ctx context.Context, year int) (int, error) {
	var seq int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.InvoiceCounter{}).Where("year = ?", year).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			// ON CONFLICT DO NOTHING covers the race where two callers seed
			// the same year at once.
			start := s.highestStoredSeq(tx, year)
			if err := tx.Exec(
				"INSERT INTO invoice_counters (year, last_seq) VALUES (?, ?) ON CONFLICT (year) DO NOTHING",
				year, start,
			).Error; err != nil {
				return err
			}
		}
		return tx.Raw(
			"UPDATE invoice_counters SET last_seq = last_seq + 1 WHERE year = ? RETURNING last_seq",
			year,
		).Scan(&seq).Error
	})
	if err != nil {
		return 0, err
	}
	if seq <= 0 {
		return 0, fmt.Errorf("counter update returned no row for year %d", year)
	}
	return seq, nil
}

// highestStoredSeq parses the largest sequence already present among stored
// invoice numbers for the year. Zero when the year is untouched.
func (s *NumberingService) highestStoredSeq(tx *gorm.DB, year int) int {
	var last string
	err := tx.Model(&models.Invoice{}).
		Where("invoice_number LIKE ?", fmt.Sprintf("%d-%%", year)).
		Order("invoice_number desc").
		Limit(1).
		Pluck("invoice_number", &last).Error
	if err != nil || last == "" {
		return 0
	}
	parts := strings.SplitN(last, "-", 2)
	if len(parts) != 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
