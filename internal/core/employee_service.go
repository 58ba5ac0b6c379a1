package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type employeeService struct {
	pool *pgxpool.Pool
}

// NewEmployeeService constructs an EmployeeService backed by PostgreSQL.
func NewEmployeeService(pool *pgxpool.Pool) EmployeeService {
	return &employeeService{pool: pool}
}

const employeeColumns = `id, business_id, name, email, job_title,
       to_char(start_date, 'YYYY-MM-DD'), employment_type, is_active, created_at`

// CreateEmployee inserts a new employee record for the given business.
func (s *employeeService) CreateEmployee(ctx context.Context, businessID int, input EmployeeInput) (*Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("employee name is required")
	}
	if input.EmploymentType != "" {
		et, ok := ValidEmploymentType(input.EmploymentType)
		if !ok {
			return nil, fmt.Errorf("invalid employment type %q", input.EmploymentType)
		}
		input.EmploymentType = string(et)
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	e := &Employee{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO employees (business_id, name, email, job_title, start_date, employment_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+employeeColumns,
		businessID, input.Name, toPtr(input.Email), toPtr(input.JobTitle),
		toPtr(input.StartDate), toPtr(input.EmploymentType),
	).Scan(
		&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.JobTitle,
		&e.StartDate, &e.EmploymentType, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create employee %q: %w", input.Name, err)
	}
	return e, nil
}

// GetEmployees returns all active employees for a business, ordered by name.
func (s *employeeService) GetEmployees(ctx context.Context, businessID int) ([]Employee, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE business_id = $1 AND is_active = true
		ORDER BY name`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("get employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.JobTitle,
			&e.StartDate, &e.EmploymentType, &e.IsActive, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee rows: %w", err)
	}
	return employees, nil
}

// GetEmployee returns an employee by primary key, scoped to the business.
func (s *employeeService) GetEmployee(ctx context.Context, businessID, employeeID int) (*Employee, error) {
	e := &Employee{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE business_id = $1 AND id = $2`,
		businessID, employeeID,
	).Scan(
		&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.JobTitle,
		&e.StartDate, &e.EmploymentType, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("employee id=%d not found: %w", employeeID, err)
	}
	return e, nil
}

// UpdateEmployee overwrites an employee's mutable fields.
func (s *employeeService) UpdateEmployee(ctx context.Context, businessID, employeeID int, input EmployeeInput) (*Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("employee name is required")
	}
	if input.EmploymentType != "" {
		et, ok := ValidEmploymentType(input.EmploymentType)
		if !ok {
			return nil, fmt.Errorf("invalid employment type %q", input.EmploymentType)
		}
		input.EmploymentType = string(et)
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	e := &Employee{}
	err := s.pool.QueryRow(ctx, `
		UPDATE employees
		SET name = $3, email = $4, job_title = $5, start_date = $6, employment_type = $7
		WHERE business_id = $1 AND id = $2
		RETURNING `+employeeColumns,
		businessID, employeeID, input.Name, toPtr(input.Email), toPtr(input.JobTitle),
		toPtr(input.StartDate), toPtr(input.EmploymentType),
	).Scan(
		&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.JobTitle,
		&e.StartDate, &e.EmploymentType, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update employee id=%d: %w", employeeID, err)
	}
	return e, nil
}

// DeactivateEmployee marks an employee inactive.
func (s *employeeService) DeactivateEmployee(ctx context.Context, businessID, employeeID int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE employees SET is_active = false
		WHERE business_id = $1 AND id = $2`,
		businessID, employeeID,
	)
	if err != nil {
		return fmt.Errorf("deactivate employee id=%d: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee id=%d not found", employeeID)
	}
	return nil
}
