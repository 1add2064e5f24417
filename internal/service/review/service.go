package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/repository"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
)

type Service struct {
	reviews repository.ReviewRepository
	barbers repository.BarberRepository
}

func NewService(reviews repository.ReviewRepository, barbers repository.BarberRepository) *Service {
	return &Service{
		reviews: reviews,
		barbers: barbers,
	}
}

func (s *Service) CreateReview(ctx context.Context, clientID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	if req.BarberID != nil {
		if _, err := s.barbers.Get(ctx, *req.BarberID); err != nil {
			return nil, apperrors.NotFound("barber not found", err)
		}
	}

	review := &model.Review{
		ClientID: clientID,
		BarberID: req.BarberID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *Service) ListReviews(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *Service) ListReviewsForBarber(ctx context.Context, barberID uuid.UUID) ([]*model.Review, error) {
	reviews, err := s.reviews.ListForBarber(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barber reviews: %w", err)
	}
	return reviews, nil
}

func (s *Service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
