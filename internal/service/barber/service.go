package barber

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/repository"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/security"
)

type Service struct {
	barbers repository.BarberRepository
	users   repository.UserRepository
	hasher  security.PasswordHasher
}

func NewService(barbers repository.BarberRepository, users repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		barbers: barbers,
		users:   users,
		hasher:  hasher,
	}
}

// CreateBarber registers a professional. When an email and password are
// supplied a back-office login is created alongside the profile.
func (s *Service) CreateBarber(ctx context.Context, req *model.CreateBarberRequest) (*model.Barber, error) {
	barber := &model.Barber{
		Name:      req.Name,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		Available: true,
	}

	if req.Email != "" {
		if req.Password == "" {
			return nil, apperrors.BadRequest("password required when email is set", nil)
		}
		if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, apperrors.Conflict("email already registered", nil)
		}

		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user := &model.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
			Role:         model.RoleBarber,
			Status:       model.UserStatusActive,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create barber login: %w", err)
		}
		barber.UserID = &user.ID
	}

	if err := s.barbers.Create(ctx, barber); err != nil {
		return nil, fmt.Errorf("failed to create barber: %w", err)
	}
	return barber, nil
}

func (s *Service) GetBarber(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	barber, err := s.barbers.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("barber not found", err)
	}
	return barber, nil
}

func (s *Service) UpdateBarber(ctx context.Context, id uuid.UUID, req *model.UpdateBarberRequest) (*model.Barber, error) {
	barber, err := s.barbers.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("barber not found", err)
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		barber.PhotoURL = *req.PhotoURL
	}
	if req.Available != nil {
		barber.Available = *req.Available
	}

	if err := s.barbers.Update(ctx, barber); err != nil {
		return nil, fmt.Errorf("failed to update barber: %w", err)
	}
	return barber, nil
}

func (s *Service) DeleteBarber(ctx context.Context, id uuid.UUID) error {
	if _, err := s.barbers.Get(ctx, id); err != nil {
		return apperrors.NotFound("barber not found", err)
	}
	if err := s.barbers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete barber: %w", err)
	}
	return nil
}

func (s *Service) ListBarbers(ctx context.Context) ([]*model.Barber, error) {
	barbers, err := s.barbers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}

func (s *Service) ListAvailableBarbers(ctx context.Context) ([]*model.Barber, error) {
	barbers, err := s.barbers.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available barbers: %w", err)
	}
	return barbers, nil
}
