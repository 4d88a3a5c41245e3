package timex

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/common"
)

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as midnight UTC.
// Anything else, including a trailing time part, is common.ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, common.ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(common.DateLayout)
}

// NormalizeDate parses and re-formats s, so "2024-3-1"-style typos are
// rejected and every stored date has the canonical zero-padded form.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
