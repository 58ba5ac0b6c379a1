package core

import (
	"context"
	"strings"
	"time"
)

// EmploymentType is the closed set of contract kinds an employee can have.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-time"
	EmploymentPartTime EmploymentType = "Part-time"
	EmploymentContract EmploymentType = "Contract"
)

// EmploymentTypes lists all valid employment types in display order.
var EmploymentTypes = []EmploymentType{EmploymentFullTime, EmploymentPartTime, EmploymentContract}

// Employee is an HR master record.
// Name is the only mandatory field; the rest may be filled in later.
type Employee struct {
	ID             int       `json:"id"`
	BusinessID     int       `json:"business_id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	JobTitle       *string   `json:"job_title,omitempty"`
	StartDate      *string   `json:"start_date,omitempty"` // YYYY-MM-DD
	EmploymentType *string   `json:"employment_type,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// EmployeeInput holds the fields for creating or updating an employee.
// Empty optional fields are stored as NULL.
type EmployeeInput struct {
	Name           string
	Email          string
	JobTitle       string
	StartDate      string // YYYY-MM-DD
	EmploymentType string
}

// EmployeeService provides HR master data operations.
type EmployeeService interface {
	// CreateEmployee inserts a new employee record for the given business.
	CreateEmployee(ctx context.Context, businessID int, input EmployeeInput) (*Employee, error)

	// GetEmployees returns all active employees for a business.
	GetEmployees(ctx context.Context, businessID int) ([]Employee, error)

	// GetEmployee returns an employee by primary key, scoped to the business.
	GetEmployee(ctx context.Context, businessID, employeeID int) (*Employee, error)

	// UpdateEmployee overwrites an employee's mutable fields.
	UpdateEmployee(ctx context.Context, businessID, employeeID int, input EmployeeInput) (*Employee, error)

	// DeactivateEmployee marks an employee inactive. Records are never deleted.
	DeactivateEmployee(ctx context.Context, businessID, employeeID int) error
}

// ValidEmploymentType reports whether s matches one of the closed employment
// types, ignoring case. The canonical form is returned on a match.
func ValidEmploymentType(s string) (EmploymentType, bool) {
	for _, et := range EmploymentTypes {
		if strings.EqualFold(string(et), strings.TrimSpace(s)) {
			return et, true
		}
	}
	return "", false
}
