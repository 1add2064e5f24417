package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/repository"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/metrics"
)

type Service struct {
	repo     repository.AppointmentRepository
	barbers  repository.BarberRepository
	services repository.ServiceRepository
	outbox   repository.OutboxRepository
	tx       repository.TxManager
	hours    BusinessHours
	metrics  *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	barbers repository.BarberRepository,
	services repository.ServiceRepository,
	outbox repository.OutboxRepository,
	tx repository.TxManager,
	hours BusinessHours,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:     repo,
		barbers:  barbers,
		services: services,
		outbox:   outbox,
		tx:       tx,
		hours:    hours,
		metrics:  m,
	}
}

// AvailableSlots fetches the day's calendar and computes every bookable slot
// for the requested service duration. The result is best-effort availability
// at read time, not a reservation: the conflict check at CreateAppointment is
// what finally guards the slot.
func (s *Service) AvailableSlots(ctx context.Context, day time.Time, serviceDurationMin int, selector BarberSelector) ([]Slot, error) {
	if serviceDurationMin <= 0 {
		return nil, apperrors.BadRequest("service duration must be positive", nil)
	}

	var roster []uuid.UUID
	var barberFilter *uuid.UUID

	if selector.IsAny() {
		available, err := s.barbers.ListAvailable(ctx)
		if err != nil {
			return nil, apperrors.Unavailable("failed to fetch barber roster", err)
		}
		roster = make([]uuid.UUID, 0, len(available))
		for _, b := range available {
			roster = append(roster, b.ID)
		}
	} else {
		id, _ := selector.ID()
		roster = []uuid.UUID{id}
		barberFilter = &id
	}

	booked, err := s.repo.ListBookedForDay(ctx, day, barberFilter)
	if err != nil {
		return nil, apperrors.Unavailable("failed to fetch appointments", err)
	}

	if s.metrics != nil {
		s.metrics.SlotComputations.Inc()
	}

	duration := time.Duration(serviceDurationMin) * time.Minute
	return computeSlots(day, duration, roster, booked, s.hours), nil
}

// AvailableSlotsForService resolves the service's duration and computes the
// day's slots for it.
func (s *Service) AvailableSlotsForService(ctx context.Context, day time.Time, serviceID uuid.UUID, selector BarberSelector) ([]Slot, error) {
	svc, err := s.services.Get(ctx, serviceID)
	if err != nil {
		return nil, apperrors.NotFound("service not found", err)
	}
	return s.AvailableSlots(ctx, day, svc.Duration, selector)
}

// CreateAppointment books a slot for a client. The storage-level conflict
// check closes the window between "slot reported free" and "booking written":
// a concurrent booking for an overlapping interval is rejected here. The
// conflict check, the appointment row and its outbox event share one
// transaction.
func (s *Service) CreateAppointment(ctx context.Context, clientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req.StartTime.Before(time.Now()) {
		return nil, apperrors.BadRequest("appointment cannot be scheduled in the past", nil)
	}

	barberID, err := uuid.Parse(req.BarberID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid barber ID", err)
	}

	barber, err := s.barbers.Get(ctx, barberID)
	if err != nil {
		return nil, apperrors.NotFound("barber not found", err)
	}
	if !barber.Available {
		return nil, apperrors.BadRequest("barber is not accepting bookings", nil)
	}

	svc, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, apperrors.NotFound("service not found", err)
	}

	end := req.StartTime.Add(time.Duration(svc.Duration) * time.Minute)

	apt := &model.Appointment{
		ClientID:  clientID,
		BarberID:  barberID,
		ServiceID: svc.ID,
		StartTime: req.StartTime,
		Status:    model.AppointmentStatusPending,
		Notes:     req.Notes,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		hasConflict, err := s.repo.CheckConflict(ctx, barberID, req.StartTime, end, nil)
		if err != nil {
			return apperrors.Unavailable("failed to check conflicts", err)
		}
		if hasConflict {
			if s.metrics != nil {
				s.metrics.BookingConflicts.Inc()
			}
			return apperrors.Conflict("time slot is no longer available", nil)
		}

		if err := s.repo.Create(ctx, apt); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return s.recordEvent(ctx, model.EventAppointmentCreated, apt)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment not found", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus applies a status transition. Completed and cancelled are
// terminal.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.BadRequest("invalid appointment status", nil)
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment not found", err)
	}

	switch apt.Status {
	case model.AppointmentStatusCancelled:
		return nil, apperrors.BadRequest("appointment is already cancelled", nil)
	case model.AppointmentStatusCompleted:
		return nil, apperrors.BadRequest("cannot change a completed appointment", nil)
	}

	if status != model.AppointmentStatusCancelled {
		cancelReason = nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, status, cancelReason); err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		apt.Status = status
		apt.CancelReason = cancelReason

		switch status {
		case model.AppointmentStatusConfirmed:
			return s.recordEvent(ctx, model.EventAppointmentConfirmed, apt)
		case model.AppointmentStatusCancelled:
			return s.recordEvent(ctx, model.EventAppointmentCancelled, apt)
		case model.AppointmentStatusCompleted:
			return s.recordEvent(ctx, model.EventAppointmentCompleted, apt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return apt, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	return s.UpdateStatus(ctx, id, model.AppointmentStatusCancelled, &reason)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("appointment not found", err)
	}

	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.BadRequest("can only delete cancelled appointments", nil)
	}

	return s.repo.Delete(ctx, id)
}

// recordEvent queues the outbox row inside the caller's transaction; the
// worker relays it to the broker. A booking never commits without its event.
func (s *Service) recordEvent(ctx context.Context, eventType string, apt *model.Appointment) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(apt)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", eventType, err)
	}
	return nil
}
