package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, client_id, barber_id, service_id,
			start_time, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.BarberID,
		appointment.ServiceID,
		appointment.StartTime,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, client_id, barber_id, service_id,
			   start_time, status, notes, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := sqlx.GetContext(ctx, r.ext(ctx), &appointment, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.ext(ctx).ExecContext(ctx, query, status, cancelReason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.ext(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, client_id, barber_id, service_id,
			   start_time, status, notes, cancel_reason,
			   created_at, updated_at
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.ClientID != uuid.Nil {
		query += fmt.Sprintf(" AND client_id = $%d", argCount)
		args = append(args, filters.ClientID)
		argCount++
	}

	if filters.BarberID != uuid.Nil {
		query += fmt.Sprintf(" AND barber_id = $%d", argCount)
		args = append(args, filters.BarberID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}

	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	err := sqlx.SelectContext(ctx, r.ext(ctx), &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListBookedForDay(ctx context.Context, day time.Time, barberID *uuid.UUID) ([]model.BookedAppointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT a.id, a.barber_id, a.start_time, s.duration
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.status != 'cancelled'
		AND a.start_time >= $1
		AND a.start_time < $2
	`
	args := []interface{}{dayStart, dayEnd}

	if barberID != nil {
		query += " AND a.barber_id = $3"
		args = append(args, *barberID)
	}

	query += " ORDER BY a.start_time ASC"

	var booked []model.BookedAppointment
	err := sqlx.SelectContext(ctx, r.ext(ctx), &booked, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked appointments: %w", err)
	}
	return booked, nil
}

func (r *appointmentRepository) CheckConflict(ctx context.Context, barberID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	// Half-open intervals: a shared boundary is not a conflict. The existing
	// appointment's interval is derived from its own service duration.
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM appointments a
			JOIN services s ON s.id = a.service_id
			WHERE a.barber_id = $1
			AND a.status != 'cancelled'
			AND a.start_time < $3
			AND a.start_time + (s.duration * interval '1 minute') > $2
	`
	args := []interface{}{barberID, start, end}

	if excludeID != nil {
		query += " AND a.id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var hasConflict bool
	err := sqlx.GetContext(ctx, r.ext(ctx), &hasConflict, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}
