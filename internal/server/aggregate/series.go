package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/timex"
	"github.com/shopspring/decimal"
)

type Granularity int

const (
	Weekly Granularity = iota
	Monthly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// ParseGranularity accepts "weekly", "monthly" and "yearly".
func ParseGranularity(s string) (Granularity, bool) {
	for _, g := range []Granularity{Weekly, Monthly, Yearly} {
		if g.String() == s {
			return g, true
		}
	}
	return 0, false
}

// Bucket is one point of a series. Sub is the ISO week or the month and is
// zero for yearly buckets. Key renders as "2023-W09", "2023-03" or "2023".
type Bucket struct {
	Key   string `json:"key"`
	Year  int    `json:"year"`
	Sub   int    `json:"sub,omitempty"`
	Total Money  `json:"total"`
}

type bucketKey struct {
	year, sub int
}

func keyOf(d time.Time, g Granularity) bucketKey {
	switch g {
	case Weekly:
		y, w := d.ISOWeek()
		return bucketKey{y, w}
	case Monthly:
		return bucketKey{d.Year(), int(d.Month())}
	default:
		return bucketKey{d.Year(), 0}
	}
}

func (k bucketKey) label(g Granularity) string {
	switch g {
	case Weekly:
		return fmt.Sprintf("%04d-W%02d", k.year, k.sub)
	case Monthly:
		return fmt.Sprintf("%04d-%02d", k.year, k.sub)
	default:
		return fmt.Sprintf("%04d", k.year)
	}
}

// Series groups txs by the date-derived key of g and returns buckets in
// descending key order. Transactions whose date does not parse are left out
// and returned as skipped.
func Series(txs []*models.Transaction, g Granularity) (buckets []Bucket, skipped []*models.Transaction) {
	acc := newAccumulator()
	for _, t := range txs {
		d, err := timex.ParseDate(t.Date)
		if err != nil {
			skipped = append(skipped, t)
			continue
		}
		acc.add(keyOf(d, g), t.Amount)
	}
	return acc.buckets(g), skipped
}

// Overview holds the three series computed from one listing.
type Overview struct {
	Weekly  []Bucket `json:"weekly"`
	Monthly []Bucket `json:"monthly"`
	Yearly  []Bucket `json:"yearly"`
}

// AllSeries computes the weekly, monthly and yearly series in one pass.
func AllSeries(txs []*models.Transaction) (Overview, []*models.Transaction) {
	week, month, year := newAccumulator(), newAccumulator(), newAccumulator()
	var skipped []*models.Transaction

	for _, t := range txs {
		d, err := timex.ParseDate(t.Date)
		if err != nil {
			skipped = append(skipped, t)
			continue
		}
		week.add(keyOf(d, Weekly), t.Amount)
		month.add(keyOf(d, Monthly), t.Amount)
		year.add(keyOf(d, Yearly), t.Amount)
	}

	return Overview{
		Weekly:  week.buckets(Weekly),
		Monthly: month.buckets(Monthly),
		Yearly:  year.buckets(Yearly),
	}, skipped
}

type accumulator struct {
	sums map[bucketKey]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make(map[bucketKey]decimal.Decimal)}
}

func (a *accumulator) add(k bucketKey, amount decimal.Decimal) {
	a.sums[k] = a.sums[k].Add(amount)
}

func (a *accumulator) buckets(g Granularity) []Bucket {
	keys := make([]bucketKey, 0, len(a.sums))
	for k := range a.sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].sub > keys[j].sub
	})

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Key: k.label(g), Year: k.year, Sub: k.sub, Total: NewMoney(a.sums[k])})
	}
	return out
}
