package core_test

import (
	"context"
	"os"
	"testing"

	"bizdesk/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE transactions, appointments, invoices, invoice_sequences, employees, users, businesses RESTART IDENTITY CASCADE;

		INSERT INTO businesses (id, business_code, name, currency) VALUES (1, 'TEST', 'Test Business', 'USD');
		SELECT setval(pg_get_serial_sequence('businesses', 'id'), 1);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func TestEmployee_CreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewEmployeeService(pool)
	businessID := 1

	t.Run("CreateEmployee_Success", func(t *testing.T) {
		e, err := svc.CreateEmployee(ctx, businessID, core.EmployeeInput{
			Name:           "John Smith",
			Email:          "john@example.com",
			JobTitle:       "Developer",
			StartDate:      "2026-09-01",
			EmploymentType: "Full-time",
		})
		if err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}
		if e.ID == 0 {
			t.Error("expected employee ID to be set")
		}
		if e.Name != "John Smith" {
			t.Errorf("expected name 'John Smith', got %s", e.Name)
		}
		if e.JobTitle == nil || *e.JobTitle != "Developer" {
			t.Errorf("expected job title 'Developer', got %v", e.JobTitle)
		}
		if e.StartDate == nil || *e.StartDate != "2026-09-01" {
			t.Errorf("expected start date '2026-09-01', got %v", e.StartDate)
		}
		if !e.IsActive {
			t.Error("expected new employee to be active")
		}
	})

	t.Run("CreateEmployee_MinimalFieldsStoredAsNull", func(t *testing.T) {
		e, err := svc.CreateEmployee(ctx, businessID, core.EmployeeInput{Name: "Maria Lopez"})
		if err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}
		if e.Email != nil || e.JobTitle != nil || e.StartDate != nil || e.EmploymentType != nil {
			t.Errorf("expected empty optional fields to be NULL, got %+v", e)
		}
	})

	t.Run("CreateEmployee_EmptyName_Fails", func(t *testing.T) {
		if _, err := svc.CreateEmployee(ctx, businessID, core.EmployeeInput{Name: "  "}); err == nil {
			t.Error("expected error for empty name, got nil")
		}
	})

	t.Run("CreateEmployee_UnknownEmploymentType_Fails", func(t *testing.T) {
		_, err := svc.CreateEmployee(ctx, businessID, core.EmployeeInput{
			Name:           "Bad Type",
			EmploymentType: "Freelance",
		})
		if err == nil {
			t.Error("expected error for unknown employment type, got nil")
		}
	})

	t.Run("GetEmployees_ReturnsActiveOnly", func(t *testing.T) {
		employees, err := svc.GetEmployees(ctx, businessID)
		if err != nil {
			t.Fatalf("GetEmployees: %v", err)
		}
		if len(employees) != 2 {
			t.Fatalf("expected 2 employees, got %d", len(employees))
		}

		if err := svc.DeactivateEmployee(ctx, businessID, employees[0].ID); err != nil {
			t.Fatalf("DeactivateEmployee: %v", err)
		}

		employees, err = svc.GetEmployees(ctx, businessID)
		if err != nil {
			t.Fatalf("GetEmployees after deactivate: %v", err)
		}
		if len(employees) != 1 {
			t.Errorf("expected 1 active employee after deactivation, got %d", len(employees))
		}
	})

	t.Run("UpdateEmployee_OverwritesFields", func(t *testing.T) {
		e, err := svc.CreateEmployee(ctx, businessID, core.EmployeeInput{
			Name:     "Temp Name",
			JobTitle: "Intern",
		})
		if err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}

		updated, err := svc.UpdateEmployee(ctx, businessID, e.ID, core.EmployeeInput{
			Name:           "Final Name",
			JobTitle:       "Engineer",
			EmploymentType: "Contract",
		})
		if err != nil {
			t.Fatalf("UpdateEmployee: %v", err)
		}
		if updated.Name != "Final Name" {
			t.Errorf("expected name 'Final Name', got %s", updated.Name)
		}
		if updated.JobTitle == nil || *updated.JobTitle != "Engineer" {
			t.Errorf("expected job title 'Engineer', got %v", updated.JobTitle)
		}
		if updated.EmploymentType == nil || *updated.EmploymentType != "Contract" {
			t.Errorf("expected employment type 'Contract', got %v", updated.EmploymentType)
		}
	})

	t.Run("GetEmployee_WrongBusiness_Fails", func(t *testing.T) {
		employees, err := svc.GetEmployees(ctx, businessID)
		if err != nil || len(employees) == 0 {
			t.Fatalf("GetEmployees: %v", err)
		}
		if _, err := svc.GetEmployee(ctx, 999, employees[0].ID); err == nil {
			t.Error("expected error fetching an employee through the wrong business, got nil")
		}
	})
}
