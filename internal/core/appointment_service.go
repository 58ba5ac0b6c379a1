package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appointmentService struct {
	pool *pgxpool.Pool
}

// NewAppointmentService constructs an AppointmentService backed by PostgreSQL.
func NewAppointmentService(pool *pgxpool.Pool) AppointmentService {
	return &appointmentService{pool: pool}
}

const appointmentColumns = `id, business_id, title, with_whom, starts_at, ends_at,
       location, notes, status, created_at`

// CreateAppointment schedules a new appointment.
func (s *appointmentService) CreateAppointment(ctx context.Context, businessID int, input AppointmentInput) (*Appointment, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("appointment title is required")
	}
	if input.WithWhom == "" {
		return nil, fmt.Errorf("appointment counterpart is required")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, fmt.Errorf("appointment must end after it starts")
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	a := &Appointment{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO appointments (business_id, title, with_whom, starts_at, ends_at, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+appointmentColumns,
		businessID, input.Title, input.WithWhom, input.StartsAt, input.EndsAt,
		toPtr(input.Location), toPtr(input.Notes),
	).Scan(
		&a.ID, &a.BusinessID, &a.Title, &a.WithWhom, &a.StartsAt, &a.EndsAt,
		&a.Location, &a.Notes, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create appointment %q: %w", input.Title, err)
	}
	return a, nil
}

// GetUpcoming returns scheduled appointments starting at or after from.
func (s *appointmentService) GetUpcoming(ctx context.Context, businessID int, from time.Time, limit int) ([]Appointment, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE business_id = $1 AND status = 'SCHEDULED' AND starts_at >= $2
		ORDER BY starts_at
		LIMIT $3`,
		businessID, from, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get upcoming appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.BusinessID, &a.Title, &a.WithWhom, &a.StartsAt, &a.EndsAt,
			&a.Location, &a.Notes, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}
	return appointments, nil
}

// CancelAppointment marks an appointment cancelled.
func (s *appointmentService) CancelAppointment(ctx context.Context, businessID, appointmentID int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments SET status = 'CANCELLED'
		WHERE business_id = $1 AND id = $2 AND status = 'SCHEDULED'`,
		businessID, appointmentID,
	)
	if err != nil {
		return fmt.Errorf("cancel appointment id=%d: %w", appointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment id=%d not found or not cancellable", appointmentID)
	}
	return nil
}
