package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/repository"
)

type userRepository struct{ base }

type barberRepository struct{ base }

type serviceRepository struct{ base }

type appointmentRepository struct{ base }

type productRepository struct{ base }

type orderRepository struct{ base }

type reviewRepository struct{ base }

type galleryRepository struct{ base }

type outboxRepository struct{ base }

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{base{db: db}}
}

func NewBarberRepository(db *sqlx.DB) repository.BarberRepository {
	return &barberRepository{base{db: db}}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{base{db: db}}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{base{db: db}}
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{base{db: db}}
}

func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &orderRepository{base{db: db}}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{base{db: db}}
}

func NewGalleryRepository(db *sqlx.DB) repository.GalleryRepository {
	return &galleryRepository{base{db: db}}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{base{db: db}}
}
