package aggregate

import (
	"sort"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// ByCategory sums amounts per category. The result is ordered by total
// descending, then by category name. The grand total is the sum of all
// amounts.
func ByCategory(txs []*models.Transaction) ([]CategoryTotal, Money) {
	sums := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, t := range txs {
		sums[t.Category] = sums[t.Category].Add(t.Amount)
		grand = grand.Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(sums))
	for c, s := range sums {
		out = append(out, CategoryTotal{Category: c, Total: NewMoney(s)})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total.Decimal); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})

	return out, NewMoney(grand)
}

// SortTransactions orders txs by date, then id, in place.
func SortTransactions(txs []*models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date < txs[j].Date
		}
		return txs[i].ID < txs[j].ID
	})
}
