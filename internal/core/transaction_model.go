package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind separates money coming in from money going out.
type TransactionKind string

const (
	TransactionRevenue TransactionKind = "revenue"
	TransactionExpense TransactionKind = "expense"
)

// Transaction is a single revenue or expense entry on the books.
type Transaction struct {
	ID          int             `json:"id"`
	BusinessID  int             `json:"business_id"`
	Kind        TransactionKind `json:"kind"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   string          `json:"entry_date"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionInput holds the fields for recording a transaction.
type TransactionInput struct {
	Kind        TransactionKind
	Category    string
	Description string
	Amount      decimal.Decimal
	EntryDate   string // YYYY-MM-DD; empty means today
}

// TransactionService records and lists revenue/expense entries.
type TransactionService interface {
	// RecordTransaction inserts a new revenue or expense entry.
	RecordTransaction(ctx context.Context, businessID int, input TransactionInput) (*Transaction, error)

	// GetTransactions returns entries within [fromDate, toDate], newest first.
	// Empty bounds are unbounded.
	GetTransactions(ctx context.Context, businessID int, fromDate, toDate string) ([]Transaction, error)
}
