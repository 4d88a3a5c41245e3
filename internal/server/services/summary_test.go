package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceSuite struct {
	suite.Suite
	ctx   context.Context
	txs   *TransactionService
	svc   *SummaryService
	alice models.Principal
	bob   models.Principal
}

func (s *SummaryServiceSuite) SetupTest() {
	s.ctx = context.Background()
	rm := newMemoryManager()
	identity := NewIdentityService(nil, rm, testConfig(), nopLogger())
	s.alice = mustRegister(s.T(), identity, "alice")
	s.bob = mustRegister(s.T(), identity, "bob")
	s.txs = NewTransactionService(nil, rm, nopLogger())
	s.svc = NewSummaryService(nil, rm, nopLogger())
	s.svc.now = newClock(2023, time.June).Now

	for _, in := range []models.TransactionInput{
		input("groceries", "Food", "200", "2023-01-01"),
		input("power", "Utilities", "150", "2023-01-07"),
		input("flat", "Rent", "300", "2023-02-01"),
		input("water", "Utilities", "50", "2023-02-01"),
		input("gift", "Misc", "400", "2023-03-01"),
	} {
		_, err := s.txs.Create(s.ctx, s.alice, in)
		s.Require().NoError(err)
	}
	_, err := s.txs.Create(s.ctx, s.bob, input("other", "Misc", "999", "2023-03-02"))
	s.Require().NoError(err)
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceSuite))
}

func (s *SummaryServiceSuite) TestDetailed_March() {
	sum, err := s.svc.Detailed(s.ctx, s.alice, PeriodQuery{Year: 2023, Month: 3})
	s.Require().NoError(err)

	s.Equal(aggregate.Period{Start: "2023-03-01", End: "2023-04-01"}, sum.Period)
	s.Require().Len(sum.Categories, 1)
	s.Equal("Misc", sum.Categories[0].Category)
	s.True(sum.Categories[0].Total.Equal(decimal.NewFromInt(400)))
	s.True(sum.GrandTotal.Equal(decimal.NewFromInt(400)))
	s.Require().Len(sum.Transactions, 1)
	s.Equal("gift", sum.Transactions[0].ItemName)
}

func (s *SummaryServiceSuite) TestDetailed_DefaultsToCurrentYear() {
	sum, err := s.svc.Detailed(s.ctx, s.alice, PeriodQuery{})
	s.Require().NoError(err)

	s.Equal("2023-01-01", sum.Period.Start)
	s.Equal("2024-01-01", sum.Period.End)
	s.Equal("1100.00", sum.GrandTotal.Display())
	s.Len(sum.Transactions, 5)
	s.Equal("2023-01-01", sum.Transactions[0].Date)
}

func (s *SummaryServiceSuite) TestDetailed_Empty() {
	sum, err := s.svc.Detailed(s.ctx, s.alice, PeriodQuery{Year: 2020, Month: 12})
	s.Require().NoError(err)
	s.Empty(sum.Categories)
	s.True(sum.GrandTotal.IsZero())
	s.Empty(sum.Transactions)
}

func (s *SummaryServiceSuite) TestDetailed_InvalidPeriod() {
	_, err := s.svc.Detailed(s.ctx, s.alice, PeriodQuery{Year: 2023, Month: 13})
	s.ErrorIs(err, common.ErrInvalidPeriod)
}

func (s *SummaryServiceSuite) TestMonthly() {
	buckets, err := s.svc.Monthly(s.ctx, s.alice)
	s.Require().NoError(err)

	var got []string
	for _, b := range buckets {
		got = append(got, b.Key+"="+b.Total.Display())
	}
	s.Equal([]string{"2023-03=400.00", "2023-02=350.00", "2023-01=350.00"}, got)
}

func (s *SummaryServiceSuite) TestWeeklyAndYearly() {
	weekly, err := s.svc.Weekly(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Len(weekly, 4)
	s.Equal("2023-W09", weekly[0].Key)

	yearly, err := s.svc.Yearly(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(yearly, 1)
	s.Equal("1100.00", yearly[0].Total.Display())
}

func (s *SummaryServiceSuite) TestOverview() {
	o, err := s.svc.Overview(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Len(o.Weekly, 4)
	s.Len(o.Monthly, 3)
	s.Len(o.Yearly, 1)
}

func (s *SummaryServiceSuite) TestSeries_IgnoresOtherUsers() {
	buckets, err := s.svc.Series(s.ctx, s.bob, aggregate.Yearly)
	s.Require().NoError(err)
	s.Require().Len(buckets, 1)
	s.Equal("999.00", buckets[0].Total.Display())
}
