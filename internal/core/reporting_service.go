package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// MonthlyTotal is one month's aggregated revenue and expenses.
type MonthlyTotal struct {
	Month    string // YYYY-MM
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// DashboardReport is the home-screen snapshot: this month's cashflow,
// outstanding invoices, headcount and the recent monthly trend.
type DashboardReport struct {
	BusinessCode         string
	BusinessName         string
	Currency             string
	RevenueThisMonth     decimal.Decimal
	ExpensesThisMonth    decimal.Decimal
	OutstandingInvoices  decimal.Decimal // sum of Sent + Overdue invoices
	OutstandingCount     int
	Headcount            int
	UpcomingAppointments int
	Monthly              []MonthlyTotal // oldest first, up to 6 months
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService provides read-only dashboard queries.
type ReportingService interface {
	// GetDashboard builds the dashboard snapshot as of the given instant.
	// The monthly trend covers the 6 calendar months ending at asOf.
	GetDashboard(ctx context.Context, businessID int, asOf time.Time) (*DashboardReport, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	pool *pgxpool.Pool
}

// NewReportingService constructs a ReportingService backed by the given pool.
func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) GetDashboard(ctx context.Context, businessID int, asOf time.Time) (*DashboardReport, error) {
	report := &DashboardReport{}

	err := s.pool.QueryRow(ctx,
		"SELECT business_code, name, currency FROM businesses WHERE id = $1", businessID,
	).Scan(&report.BusinessCode, &report.BusinessName, &report.Currency)
	if err != nil {
		return nil, fmt.Errorf("business id=%d not found: %w", businessID, err)
	}

	// Monthly revenue/expense trend for the 6 months ending at asOf.
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	trendStart := monthStart.AddDate(0, -5, 0)

	rows, err := s.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', entry_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'revenue'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE business_id = $1
		  AND entry_date >= $2::date
		  AND entry_date <= $3::date
		GROUP BY 1
		ORDER BY 1`,
		businessID, trendStart.Format("2006-01-02"), asOf.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		m.Net = m.Revenue.Sub(m.Expenses)
		report.Monthly = append(report.Monthly, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly total rows: %w", err)
	}

	currentMonth := asOf.Format("2006-01")
	for _, m := range report.Monthly {
		if m.Month == currentMonth {
			report.RevenueThisMonth = m.Revenue
			report.ExpensesThisMonth = m.Expenses
		}
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM invoices
		WHERE business_id = $1 AND status IN ('Sent', 'Overdue')`,
		businessID,
	).Scan(&report.OutstandingInvoices, &report.OutstandingCount)
	if err != nil {
		return nil, fmt.Errorf("outstanding invoices: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM employees WHERE business_id = $1 AND is_active = true", businessID,
	).Scan(&report.Headcount)
	if err != nil {
		return nil, fmt.Errorf("headcount: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE business_id = $1 AND status = 'SCHEDULED' AND starts_at >= $2`,
		businessID, asOf,
	).Scan(&report.UpcomingAppointments)
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
	}

	return report, nil
}
