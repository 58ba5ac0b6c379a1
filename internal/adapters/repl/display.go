package repl

import (
	"fmt"
	"strings"

	"bizdesk/internal/app"
	"bizdesk/internal/core"
)

func printEmployees(result *app.EmployeeListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  EMPLOYEES — Business %s\n", result.BusinessCode)
	fmt.Println(strings.Repeat("=", 78))
	if len(result.Employees) == 0 {
		fmt.Println("  No employees found.")
		fmt.Println(strings.Repeat("=", 78))
		return
	}
	fmt.Printf("  %-5s %-22s %-20s %-12s %s\n", "ID", "NAME", "JOB TITLE", "START", "TYPE")
	fmt.Println(strings.Repeat("-", 78))
	for _, e := range result.Employees {
		fmt.Printf("  %-5d %-22s %-20s %-12s %s\n",
			e.ID, e.Name, deref(e.JobTitle), deref(e.StartDate), deref(e.EmploymentType))
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printInvoices(result *app.InvoiceListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("  INVOICES — Business %s\n", result.BusinessCode)
	fmt.Println(strings.Repeat("=", 80))
	if len(result.Invoices) == 0 {
		fmt.Println("  No invoices found.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-15s %-22s %-9s %12s  %s\n", "NUMBER", "CUSTOMER", "STATUS", "AMOUNT", "ISSUED")
	fmt.Println(strings.Repeat("-", 80))
	for _, inv := range result.Invoices {
		fmt.Printf("  %-15s %-22s %-9s %12s  %s\n",
			inv.InvoiceNumber, inv.CustomerName, inv.Status, inv.Amount.StringFixed(2), inv.IssueDate)
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printInvoiceDetail(inv *core.Invoice) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Invoice:   %s\n", inv.InvoiceNumber)
	fmt.Printf("  Customer:  %s\n", inv.CustomerName)
	if inv.CustomerEmail != nil {
		fmt.Printf("  Email:     %s\n", *inv.CustomerEmail)
	}
	fmt.Printf("  Amount:    %s %s\n", inv.Amount.StringFixed(2), inv.Currency)
	fmt.Printf("  Status:    %s\n", inv.Status)
	fmt.Printf("  Issued:    %s\n", inv.IssueDate)
	if inv.DueDate != nil {
		fmt.Printf("  Due:       %s\n", *inv.DueDate)
	}
	if inv.PaidAt != nil {
		fmt.Printf("  Paid at:   %s\n", inv.PaidAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(strings.Repeat("-", 60))
}

func printEmployeeDraft(d *core.EmployeeDraft) {
	fmt.Printf("\nNAME:       %s\n", d.Name)
	fmt.Printf("EMAIL:      %s\n", orDash(d.Email))
	fmt.Printf("JOB TITLE:  %s\n", orDash(d.JobTitle))
	fmt.Printf("START DATE: %s\n", orDash(d.StartDate))
	fmt.Printf("TYPE:       %s\n", orDash(d.EmploymentType))
	if d.Message != "" {
		fmt.Printf("NOTES:      %s\n", d.Message)
	}
}

func printAppointments(result *app.AppointmentListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  UPCOMING APPOINTMENTS — Business %s\n", result.BusinessCode)
	fmt.Println(strings.Repeat("=", 78))
	if len(result.Appointments) == 0 {
		fmt.Println("  No upcoming appointments.")
		fmt.Println(strings.Repeat("=", 78))
		return
	}
	fmt.Printf("  %-5s %-18s %-8s %-24s %s\n", "ID", "WHEN", "UNTIL", "TITLE", "WITH")
	fmt.Println(strings.Repeat("-", 78))
	for _, a := range result.Appointments {
		fmt.Printf("  %-5d %-18s %-8s %-24s %s\n",
			a.ID,
			a.StartsAt.Format("Mon 01-02 15:04"),
			a.EndsAt.Format("15:04"),
			a.Title, a.WithWhom)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printDashboard(result *app.DashboardResult, currency string) {
	r := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-58s\n", "DASHBOARD")
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  Revenue this month   : %12s %s\n", r.RevenueThisMonth.StringFixed(2), currency)
	fmt.Printf("  Expenses this month  : %12s %s\n", r.ExpensesThisMonth.StringFixed(2), currency)
	fmt.Printf("  Outstanding invoices : %12s %s (%d open)\n",
		r.OutstandingInvoices.StringFixed(2), currency, r.OutstandingCount)
	fmt.Printf("  Headcount            : %12d\n", r.Headcount)
	fmt.Printf("  Upcoming appointments: %12d\n", r.UpcomingAppointments)
	if len(r.Monthly) > 0 {
		fmt.Println(strings.Repeat("-", 62))
		fmt.Printf("  %-10s %15s %15s\n", "MONTH", "REVENUE", "EXPENSES")
		fmt.Println(strings.Repeat("-", 62))
		for _, m := range r.Monthly {
			fmt.Printf("  %-10s %15s %15s\n", m.Month, m.Revenue.StringFixed(2), m.Expenses.StringFixed(2))
		}
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printHelp() {
	fmt.Println()
	fmt.Println("BIZDESK ASSISTANT — COMMANDS")
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println()
	fmt.Println("  EMPLOYEES")
	fmt.Println("  /employees                       List active employees")
	fmt.Println()
	fmt.Println("  INVOICES")
	fmt.Println("  /invoices [status]               List invoices (Draft/Sent/Paid/Overdue)")
	fmt.Println("  /invoice <number>                Show invoice details")
	fmt.Println("  /status <number> <status>        Set invoice status")
	fmt.Println("  /email <number>                  Send confirmation email (simulated)")
	fmt.Println()
	fmt.Println("  APPOINTMENTS")
	fmt.Println("  /appointments                    List upcoming appointments")
	fmt.Println("  /suggest <preferences...>        Ask for a slot suggestion")
	fmt.Println()
	fmt.Println("  REPORTS")
	fmt.Println("  /dashboard                       Business overview")
	fmt.Println()
	fmt.Println("  SESSION")
	fmt.Println("  /help                            Show this help")
	fmt.Println("  /exit                            Exit")
	fmt.Println()
	fmt.Println("  ASSISTANT MODE  (no / prefix)")
	fmt.Println("  Type any request in natural language.")
	fmt.Println("  Example: \"Add John Smith as a full-time developer starting next Monday\"")
	fmt.Println(strings.Repeat("=", 62))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
