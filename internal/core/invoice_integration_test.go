package core_test

import (
	"context"
	"fmt"
	"testing"

	"bizdesk/internal/core"

	"github.com/shopspring/decimal"
)

func TestInvoice_NumberingAndStatus(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewInvoiceService(pool)
	businessID := 1

	t.Run("CreateInvoice_AssignsGaplessNumbers", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			inv, err := svc.CreateInvoice(ctx, businessID, core.InvoiceInput{
				CustomerName: fmt.Sprintf("Customer %d", i),
				Amount:       decimal.NewFromInt(100),
				IssueDate:    "2026-08-01",
			})
			if err != nil {
				t.Fatalf("CreateInvoice %d: %v", i, err)
			}
			want := fmt.Sprintf("INV-2026-%04d", i)
			if inv.InvoiceNumber != want {
				t.Errorf("invoice %d: number = %s, want %s", i, inv.InvoiceNumber, want)
			}
			if inv.Status != core.InvoiceStatusDraft {
				t.Errorf("new invoice status = %s, want Draft", inv.Status)
			}
		}
	})

	t.Run("CreateInvoice_SequenceResetsPerYear", func(t *testing.T) {
		inv, err := svc.CreateInvoice(ctx, businessID, core.InvoiceInput{
			CustomerName: "Next Year Co",
			Amount:       decimal.NewFromInt(50),
			IssueDate:    "2027-01-05",
		})
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		if inv.InvoiceNumber != "INV-2027-0001" {
			t.Errorf("number = %s, want INV-2027-0001", inv.InvoiceNumber)
		}
	})

	t.Run("CreateInvoice_InheritsBusinessCurrency", func(t *testing.T) {
		inv, err := svc.CreateInvoice(ctx, businessID, core.InvoiceInput{
			CustomerName: "Currency Co",
			Amount:       decimal.NewFromInt(10),
		})
		if err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
		if inv.Currency != "USD" {
			t.Errorf("currency = %s, want the business default USD", inv.Currency)
		}
	})

	t.Run("CreateInvoice_ZeroAmount_Fails", func(t *testing.T) {
		_, err := svc.CreateInvoice(ctx, businessID, core.InvoiceInput{
			CustomerName: "Zero Co",
			Amount:       decimal.Zero,
		})
		if err == nil {
			t.Error("expected error for zero amount, got nil")
		}
	})

	t.Run("SetStatus_PaidStampsPaidAt", func(t *testing.T) {
		inv, err := svc.SetStatus(ctx, businessID, "INV-2026-0001", core.InvoiceStatusPaid)
		if err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
		if inv.Status != core.InvoiceStatusPaid {
			t.Errorf("status = %s, want Paid", inv.Status)
		}
		if inv.PaidAt == nil {
			t.Error("expected paid_at to be stamped on transition to Paid")
		}

		inv, err = svc.SetStatus(ctx, businessID, "INV-2026-0001", core.InvoiceStatusSent)
		if err != nil {
			t.Fatalf("SetStatus back to Sent: %v", err)
		}
		if inv.PaidAt != nil {
			t.Error("expected paid_at to be cleared when leaving Paid")
		}
	})

	t.Run("SetStatus_UnknownInvoice_Fails", func(t *testing.T) {
		if _, err := svc.SetStatus(ctx, businessID, "INV-9999-0001", core.InvoiceStatusPaid); err == nil {
			t.Error("expected error for unknown invoice, got nil")
		}
	})

	t.Run("GetInvoices_FilterByStatus", func(t *testing.T) {
		sent := core.InvoiceStatusSent
		invoices, err := svc.GetInvoices(ctx, businessID, &sent)
		if err != nil {
			t.Fatalf("GetInvoices: %v", err)
		}
		for _, inv := range invoices {
			if inv.Status != core.InvoiceStatusSent {
				t.Errorf("filter leak: invoice %s has status %s", inv.InvoiceNumber, inv.Status)
			}
		}
		if len(invoices) != 1 {
			t.Errorf("expected 1 Sent invoice, got %d", len(invoices))
		}
	})

	t.Run("GetInvoiceByNumber_ScopedToBusiness", func(t *testing.T) {
		if _, err := svc.GetInvoiceByNumber(ctx, 999, "INV-2026-0001"); err == nil {
			t.Error("expected error fetching an invoice through the wrong business, got nil")
		}
	})
}
