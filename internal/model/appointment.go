package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	Base
	ClientID     uuid.UUID         `db:"client_id" json:"client_id"`
	BarberID     uuid.UUID         `db:"barber_id" json:"barber_id"`
	ServiceID    uuid.UUID         `db:"service_id" json:"service_id"`
	StartTime    time.Time         `db:"start_time" json:"start_time"`
	Status       AppointmentStatus `db:"status" json:"status"`
	Notes        string            `db:"notes" json:"notes,omitempty"`
	CancelReason *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// BookedAppointment is the day-window projection consumed by the slot
// calculator: every non-cancelled appointment joined with the duration of
// its own service, normalized at the repository boundary.
type BookedAppointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BarberID        uuid.UUID `db:"barber_id" json:"barber_id"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration" json:"duration"`
}

// End derives the occupied interval end from the appointment's own service
// duration, not from the duration of the slot being requested.
func (a BookedAppointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

type CreateAppointmentRequest struct {
	BarberID  string    `json:"barber_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status       AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
	CancelReason *string           `json:"cancel_reason"`
}

type AppointmentFilters struct {
	ClientID  uuid.UUID
	BarberID  uuid.UUID
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
}
