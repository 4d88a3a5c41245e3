package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/objectstore"
	"github.com/dmitrijs2005/budgettracker/internal/timex"
	"github.com/google/uuid"
)

const csvContentType = "text/csv"

// ExportResult points at an uploaded CSV export.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Rows      int       `json:"rows"`
}

// ExportService writes a period's transactions as CSV to object storage and
// returns a presigned download link.
type ExportService struct {
	summary *SummaryService
	store   objectstore.Store
	urlTTL  time.Duration
	log     logging.Logger
	now     func() time.Time
}

func NewExportService(summary *SummaryService, store objectstore.Store, urlTTL time.Duration, log logging.Logger) *ExportService {
	return &ExportService{
		summary: summary,
		store:   store,
		urlTTL:  urlTTL,
		log:     log.With("service", "export"),
		now:     time.Now,
	}
}

// GetRandomExportKey returns exports/<userID>/<yyyy>/<uuid>.csv.
func GetRandomExportKey(userID string, year int) string {
	return fmt.Sprintf("exports/%s/%04d/%s.csv", userID, year, uuid.New())
}

// Export uploads the transactions of the period selected by q.
func (s *ExportService) Export(ctx context.Context, p models.Principal, q PeriodQuery) (*ExportResult, error) {
	detailed, err := s.summary.Detailed(ctx, p, q)
	if err != nil {
		return nil, err
	}

	body, err := encodeCSV(detailed.Transactions)
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	start, _ := timex.ParseDate(detailed.Period.Start)
	key := GetRandomExportKey(p.ID, start.Year())

	if err := s.store.Put(ctx, key, body, csvContentType); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.log.Info(ctx, "export uploaded", "user_id", p.ID, "key", key, "rows", len(detailed.Transactions))
	return &ExportResult{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(s.urlTTL),
		Rows:      len(detailed.Transactions),
	}, nil
}

func encodeCSV(txs []*models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "item_name", "category", "amount"}); err != nil {
		return nil, err
	}
	for _, t := range txs {
		if err := w.Write([]string{t.Date, t.ItemName, t.Category, t.Amount.String()}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
