package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionService struct {
	pool *pgxpool.Pool
}

// NewTransactionService constructs a TransactionService backed by PostgreSQL.
func NewTransactionService(pool *pgxpool.Pool) TransactionService {
	return &transactionService{pool: pool}
}

const transactionColumns = `id, business_id, kind, category, description, amount,
       to_char(entry_date, 'YYYY-MM-DD'), created_at`

// RecordTransaction inserts a new revenue or expense entry.
func (s *transactionService) RecordTransaction(ctx context.Context, businessID int, input TransactionInput) (*Transaction, error) {
	if input.Kind != TransactionRevenue && input.Kind != TransactionExpense {
		return nil, fmt.Errorf("invalid transaction kind %q", input.Kind)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("transaction category is required")
	}
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, fmt.Errorf("transaction amount must be > 0, got %s", input.Amount)
	}

	entryDate := input.EntryDate
	if entryDate == "" {
		entryDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", entryDate); err != nil {
		return nil, fmt.Errorf("invalid entry date %q: %w", entryDate, err)
	}

	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	t := &Transaction{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO transactions (business_id, kind, category, description, amount, entry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+transactionColumns,
		businessID, input.Kind, input.Category, description, input.Amount, entryDate,
	).Scan(
		&t.ID, &t.BusinessID, &t.Kind, &t.Category, &t.Description, &t.Amount,
		&t.EntryDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record %s transaction: %w", input.Kind, err)
	}
	return t, nil
}

// GetTransactions returns entries within [fromDate, toDate], newest first.
func (s *transactionService) GetTransactions(ctx context.Context, businessID int, fromDate, toDate string) ([]Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE business_id = $1`
	args := []any{businessID}
	if fromDate != "" {
		args = append(args, fromDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY entry_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.BusinessID, &t.Kind, &t.Category, &t.Description, &t.Amount,
			&t.EntryDate, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return transactions, nil
}
