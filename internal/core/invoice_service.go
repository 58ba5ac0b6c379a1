package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

const invoiceColumns = `id, business_id, invoice_number, customer_name, customer_email,
       amount, currency, status, to_char(issue_date, 'YYYY-MM-DD'),
       to_char(due_date, 'YYYY-MM-DD'), paid_at, created_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	inv := &Invoice{}
	err := row.Scan(
		&inv.ID, &inv.BusinessID, &inv.InvoiceNumber, &inv.CustomerName, &inv.CustomerEmail,
		&inv.Amount, &inv.Currency, &inv.Status, &inv.IssueDate,
		&inv.DueDate, &inv.PaidAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvoice creates a Draft invoice, assigning the next number from the
// per-business, per-year sequence. The sequence row is locked inside the
// transaction so concurrent creations never reuse a number.
func (s *invoiceService) CreateInvoice(ctx context.Context, businessID int, input InvoiceInput) (*Invoice, error) {
	if input.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, fmt.Errorf("invoice amount must be > 0, got %s", input.Amount)
	}

	issueDate := input.IssueDate
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}
	issued, err := time.Parse("2006-01-02", issueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issue date %q: %w", issueDate, err)
	}
	if input.DueDate != "" {
		if _, err := time.Parse("2006-01-02", input.DueDate); err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", input.DueDate, err)
		}
	}

	currency := input.Currency
	if currency == "" {
		if err := s.pool.QueryRow(ctx,
			"SELECT currency FROM businesses WHERE id = $1", businessID,
		).Scan(&currency); err != nil {
			return nil, fmt.Errorf("business id=%d not found: %w", businessID, err)
		}
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create invoice: %w", err)
	}
	defer tx.Rollback(ctx)

	var next int
	year := issued.Year()
	err = tx.QueryRow(ctx, `
		INSERT INTO invoice_sequences (business_id, year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (business_id, year)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`,
		businessID, year,
	).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("next invoice number: %w", err)
	}
	number := fmt.Sprintf("INV-%d-%04d", year, next)

	inv, err := scanInvoice(tx.QueryRow(ctx, `
		INSERT INTO invoices (business_id, invoice_number, customer_name, customer_email,
		                      amount, currency, issue_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+invoiceColumns,
		businessID, number, input.CustomerName, toPtr(input.CustomerEmail),
		input.Amount, currency, issueDate, toPtr(input.DueDate),
	))
	if err != nil {
		return nil, fmt.Errorf("create invoice %s: %w", number, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create invoice: %w", err)
	}
	return inv, nil
}

// GetInvoices returns invoices for a business, newest first, optionally
// filtered by status.
func (s *invoiceService) GetInvoices(ctx context.Context, businessID int, status *InvoiceStatus) ([]Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE business_id = $1`
	args := []any{businessID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY issue_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return invoices, nil
}

// GetInvoiceByNumber returns an invoice by its number, scoped to the business.
func (s *invoiceService) GetInvoiceByNumber(ctx context.Context, businessID int, invoiceNumber string) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE business_id = $1 AND invoice_number = $2`,
		businessID, invoiceNumber,
	))
	if err != nil {
		return nil, fmt.Errorf("invoice %q not found: %w", invoiceNumber, err)
	}
	return inv, nil
}

// SetStatus transitions an invoice to the given status.
func (s *invoiceService) SetStatus(ctx context.Context, businessID int, invoiceNumber string, status InvoiceStatus) (*Invoice, error) {
	if _, ok := ValidInvoiceStatus(string(status)); !ok {
		return nil, fmt.Errorf("invalid invoice status %q", status)
	}

	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		UPDATE invoices
		SET status = $3,
		    paid_at = CASE WHEN $3 = 'Paid' THEN now() ELSE NULL END
		WHERE business_id = $1 AND invoice_number = $2
		RETURNING `+invoiceColumns,
		businessID, invoiceNumber, status,
	))
	if err != nil {
		return nil, fmt.Errorf("set invoice %q status to %s: %w", invoiceNumber, status, err)
	}
	return inv, nil
}
