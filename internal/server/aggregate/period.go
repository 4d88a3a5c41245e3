// Package aggregate groups a user's transactions into category totals and
// weekly, monthly and yearly series. It is pure: callers list the
// transactions and pass them in.
package aggregate

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/timex"
)

const (
	minYear = 1
	maxYear = 9998
)

// Period is the half-open date range [Start, End) in YYYY-MM-DD form.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the ISO date falls inside p.
func (p Period) Contains(date string) bool {
	return date >= p.Start && date < p.End
}

// ResolvePeriod turns a year and an optional month (0 means the whole year)
// into a Period. December rolls over to January 1st of the next year.
func ResolvePeriod(year, month int) (Period, error) {
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("year %d: %w", year, common.ErrInvalidPeriod)
	}
	if month < 0 || month > 12 {
		return Period{}, fmt.Errorf("month %d: %w", month, common.ErrInvalidPeriod)
	}

	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Period{Start: timex.FormatDate(start), End: timex.FormatDate(start.AddDate(1, 0, 0))}, nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: timex.FormatDate(start), End: timex.FormatDate(end)}, nil
}
