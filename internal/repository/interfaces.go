package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
)

// All repository interfaces in one file
type (
	// TxManager runs a unit of work inside a single database transaction.
	// Repository calls made with the context fn receives join that
	// transaction; returning an error rolls the whole unit back.
	TxManager interface {
		WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	BarberRepository interface {
		Create(ctx context.Context, barber *model.Barber) error
		Get(ctx context.Context, id uuid.UUID) (*model.Barber, error)
		Update(ctx context.Context, barber *model.Barber) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Barber, error)
		// ListAvailable returns the roster of barbers currently accepting
		// bookings, in a fixed order (name, then id).
		ListAvailable(ctx context.Context) ([]*model.Barber, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// ListBookedForDay returns every non-cancelled appointment starting
		// within the calendar day, each joined with its own service's
		// duration. A nil barberID means all barbers.
		ListBookedForDay(ctx context.Context, day time.Time, barberID *uuid.UUID) ([]model.BookedAppointment, error)
		// CheckConflict reports whether any non-cancelled appointment of the
		// barber occupies an interval overlapping [start, end).
		CheckConflict(ctx context.Context, barberID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	}

	ProductRepository interface {
		Create(ctx context.Context, product *model.Product) error
		Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
		Update(ctx context.Context, product *model.Product) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Product, error)
		// DecrementStock fails when fewer than qty units remain.
		DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	}

	OrderRepository interface {
		Create(ctx context.Context, order *model.Order) error
		Get(ctx context.Context, id uuid.UUID) (*model.Order, error)
		GetByPickupCode(ctx context.Context, code string) (*model.Order, error)
		ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Order, error)
		List(ctx context.Context) ([]*model.Order, error)
		MarkDelivered(ctx context.Context, id uuid.UUID) error
	}

	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Review, error)
		ListForBarber(ctx context.Context, barberID uuid.UUID) ([]*model.Review, error)
	}

	GalleryRepository interface {
		Create(ctx context.Context, image *model.GalleryImage) error
		Get(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error)
		Update(ctx context.Context, image *model.GalleryImage) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.GalleryImage, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
