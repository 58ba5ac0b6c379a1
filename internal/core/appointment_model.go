package core

import (
	"context"
	"time"
)

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is a scheduled meeting with a customer or employee.
type Appointment struct {
	ID         int               `json:"id"`
	BusinessID int               `json:"business_id"`
	Title      string            `json:"title"`
	WithWhom   string            `json:"with_whom"`
	StartsAt   time.Time         `json:"starts_at"`
	EndsAt     time.Time         `json:"ends_at"`
	Location   *string           `json:"location,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
	Status     AppointmentStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// AppointmentInput holds the fields for creating a new appointment.
type AppointmentInput struct {
	Title    string
	WithWhom string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
	Notes    string
}

// AppointmentService provides scheduling operations.
type AppointmentService interface {
	// CreateAppointment schedules a new appointment.
	CreateAppointment(ctx context.Context, businessID int, input AppointmentInput) (*Appointment, error)

	// GetUpcoming returns scheduled appointments starting at or after from,
	// soonest first, capped at limit.
	GetUpcoming(ctx context.Context, businessID int, from time.Time, limit int) ([]Appointment, error)

	// CancelAppointment marks an appointment cancelled.
	CancelAppointment(ctx context.Context, businessID, appointmentID int) error
}
