// Package models defines server-side records persisted in the database and
// handed to the API layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single spending record owned by exactly one user.
// Date is an ISO YYYY-MM-DD string so range filters compare lexically.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ItemName  string          `json:"item_name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionInput carries the mutable fields of a transaction for create
// and update.
type TransactionInput struct {
	ItemName string
	Amount   decimal.Decimal
	Category string
	Date     string
}
