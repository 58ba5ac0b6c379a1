package core_test

import (
	"context"
	"testing"
	"time"

	"bizdesk/internal/core"

	"github.com/shopspring/decimal"
)

func TestDashboard_Snapshot(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	asOf := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	employees := core.NewEmployeeService(pool)
	invoices := core.NewInvoiceService(pool)
	appointments := core.NewAppointmentService(pool)
	transactions := core.NewTransactionService(pool)
	reporting := core.NewReportingService(pool)
	businessID := 1

	// Two active employees, one deactivated.
	for _, name := range []string{"A One", "B Two", "C Three"} {
		if _, err := employees.CreateEmployee(ctx, businessID, core.EmployeeInput{Name: name}); err != nil {
			t.Fatalf("CreateEmployee %s: %v", name, err)
		}
	}
	all, err := employees.GetEmployees(ctx, businessID)
	if err != nil {
		t.Fatalf("GetEmployees: %v", err)
	}
	if err := employees.DeactivateEmployee(ctx, businessID, all[0].ID); err != nil {
		t.Fatalf("DeactivateEmployee: %v", err)
	}

	// One Sent invoice outstanding, one Paid.
	inv1, err := invoices.CreateInvoice(ctx, businessID, core.InvoiceInput{
		CustomerName: "Northwind", Amount: decimal.NewFromInt(1200), IssueDate: "2026-08-01",
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := invoices.SetStatus(ctx, businessID, inv1.InvoiceNumber, core.InvoiceStatusSent); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	inv2, err := invoices.CreateInvoice(ctx, businessID, core.InvoiceInput{
		CustomerName: "Contoso", Amount: decimal.NewFromInt(800), IssueDate: "2026-08-02",
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := invoices.SetStatus(ctx, businessID, inv2.InvoiceNumber, core.InvoiceStatusPaid); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	// One upcoming appointment, one already past.
	if _, err := appointments.CreateAppointment(ctx, businessID, core.AppointmentInput{
		Title: "Client call", WithWhom: "Northwind",
		StartsAt: asOf.Add(48 * time.Hour), EndsAt: asOf.Add(49 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if _, err := appointments.CreateAppointment(ctx, businessID, core.AppointmentInput{
		Title: "Old meeting", WithWhom: "Contoso",
		StartsAt: asOf.Add(-72 * time.Hour), EndsAt: asOf.Add(-71 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	// Transactions: current month plus an earlier month for the trend.
	seed := []core.TransactionInput{
		{Kind: core.TransactionRevenue, Category: "services", Amount: decimal.NewFromInt(800), EntryDate: "2026-08-05"},
		{Kind: core.TransactionExpense, Category: "rent", Amount: decimal.NewFromInt(950), EntryDate: "2026-08-03"},
		{Kind: core.TransactionRevenue, Category: "services", Amount: decimal.NewFromInt(400), EntryDate: "2026-06-20"},
	}
	for _, input := range seed {
		if _, err := transactions.RecordTransaction(ctx, businessID, input); err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
	}

	report, err := reporting.GetDashboard(ctx, businessID, asOf)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if report.BusinessCode != "TEST" {
		t.Errorf("BusinessCode = %s, want TEST", report.BusinessCode)
	}
	if !report.RevenueThisMonth.Equal(decimal.NewFromInt(800)) {
		t.Errorf("RevenueThisMonth = %s, want 800", report.RevenueThisMonth)
	}
	if !report.ExpensesThisMonth.Equal(decimal.NewFromInt(950)) {
		t.Errorf("ExpensesThisMonth = %s, want 950", report.ExpensesThisMonth)
	}
	if !report.OutstandingInvoices.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("OutstandingInvoices = %s, want 1200 (Sent only)", report.OutstandingInvoices)
	}
	if report.OutstandingCount != 1 {
		t.Errorf("OutstandingCount = %d, want 1", report.OutstandingCount)
	}
	if report.Headcount != 2 {
		t.Errorf("Headcount = %d, want 2 active employees", report.Headcount)
	}
	if report.UpcomingAppointments != 1 {
		t.Errorf("UpcomingAppointments = %d, want 1", report.UpcomingAppointments)
	}
	if len(report.Monthly) != 2 {
		t.Fatalf("Monthly trend has %d months, want 2", len(report.Monthly))
	}
	if report.Monthly[0].Month != "2026-06" || report.Monthly[1].Month != "2026-08" {
		t.Errorf("Monthly order = [%s, %s], want oldest first", report.Monthly[0].Month, report.Monthly[1].Month)
	}
	if !report.Monthly[1].Net.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("August net = %s, want -150", report.Monthly[1].Net)
	}
}

func TestAppointment_CancelRules(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewAppointmentService(pool)
	businessID := 1
	now := time.Now()

	a, err := svc.CreateAppointment(ctx, businessID, core.AppointmentInput{
		Title: "Review", WithWhom: "Auditor",
		StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(25 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	if err := svc.CancelAppointment(ctx, businessID, a.ID); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}

	// Cancelling twice fails: only SCHEDULED appointments can be cancelled.
	if err := svc.CancelAppointment(ctx, businessID, a.ID); err == nil {
		t.Error("expected error cancelling an already cancelled appointment")
	}

	upcoming, err := svc.GetUpcoming(ctx, businessID, now, 10)
	if err != nil {
		t.Fatalf("GetUpcoming: %v", err)
	}
	if len(upcoming) != 0 {
		t.Errorf("expected no upcoming appointments after cancellation, got %d", len(upcoming))
	}
}

func TestAppointment_CreateValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewAppointmentService(pool)
	now := time.Now()

	_, err := svc.CreateAppointment(ctx, 1, core.AppointmentInput{
		Title: "Backwards", WithWhom: "Nobody",
		StartsAt: now.Add(2 * time.Hour), EndsAt: now.Add(1 * time.Hour),
	})
	if err == nil {
		t.Error("expected error when the appointment ends before it starts")
	}
}
