package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
)

// PeriodQuery selects a year, or a month of it. Zero Year means the current
// year; zero Month means the whole year.
type PeriodQuery struct {
	Year  int
	Month int
}

// DetailedSummary is the category breakdown of one period.
type DetailedSummary struct {
	Period       aggregate.Period          `json:"period"`
	Categories   []aggregate.CategoryTotal `json:"categories"`
	GrandTotal   aggregate.Money           `json:"grand_total"`
	Transactions []*models.Transaction     `json:"transactions"`
}

// SummaryService feeds a principal's transactions into the aggregate package.
type SummaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewSummaryService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *SummaryService {
	return &SummaryService{
		db:          db,
		repomanager: m,
		log:         log.With("service", "summary"),
		now:         time.Now,
	}
}

// Resolve fills in the default year and resolves q to a Period.
func (s *SummaryService) Resolve(q PeriodQuery) (aggregate.Period, error) {
	year := q.Year
	if year == 0 {
		year = s.now().Year()
	}
	return aggregate.ResolvePeriod(year, q.Month)
}

// Detailed groups the period's transactions by category.
func (s *SummaryService) Detailed(ctx context.Context, p models.Principal, q PeriodQuery) (*DetailedSummary, error) {
	period, err := s.Resolve(q)
	if err != nil {
		return nil, err
	}

	txs, err := s.repomanager.Transactions(s.db).ListByUserInRange(ctx, p.ID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	if txs == nil {
		txs = []*models.Transaction{}
	}
	categories, grand := aggregate.ByCategory(txs)
	aggregate.SortTransactions(txs)

	return &DetailedSummary{
		Period:       period,
		Categories:   categories,
		GrandTotal:   grand,
		Transactions: txs,
	}, nil
}

// Series buckets all of p's transactions at granularity g.
func (s *SummaryService) Series(ctx context.Context, p models.Principal, g aggregate.Granularity) ([]aggregate.Bucket, error) {
	txs, err := s.listAll(ctx, p)
	if err != nil {
		return nil, err
	}

	buckets, skipped := aggregate.Series(txs, g)
	s.warnSkipped(ctx, p, skipped)
	return buckets, nil
}

func (s *SummaryService) Weekly(ctx context.Context, p models.Principal) ([]aggregate.Bucket, error) {
	return s.Series(ctx, p, aggregate.Weekly)
}

func (s *SummaryService) Monthly(ctx context.Context, p models.Principal) ([]aggregate.Bucket, error) {
	return s.Series(ctx, p, aggregate.Monthly)
}

func (s *SummaryService) Yearly(ctx context.Context, p models.Principal) ([]aggregate.Bucket, error) {
	return s.Series(ctx, p, aggregate.Yearly)
}

// Overview computes the weekly, monthly and yearly series from one listing.
func (s *SummaryService) Overview(ctx context.Context, p models.Principal) (*aggregate.Overview, error) {
	txs, err := s.listAll(ctx, p)
	if err != nil {
		return nil, err
	}

	overview, skipped := aggregate.AllSeries(txs)
	s.warnSkipped(ctx, p, skipped)
	return &overview, nil
}

func (s *SummaryService) listAll(ctx context.Context, p models.Principal) ([]*models.Transaction, error) {
	txs, err := s.repomanager.Transactions(s.db).ListByUser(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return txs, nil
}

func (s *SummaryService) warnSkipped(ctx context.Context, p models.Principal, skipped []*models.Transaction) {
	for _, t := range skipped {
		s.log.Warn(ctx, "transaction with invalid date left out of series", "user_id", p.ID, "id", t.ID, "date", t.Date)
	}
}
