package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, client_id, barber_id, rating, comment, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		review.ID,
		review.ClientID,
		review.BarberID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM reviews
		WHERE id = $1
	`
	result, err := r.ext(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*model.Review, error) {
	// Author name joined in so the list renders without a second query.
	query := `
		SELECT r.id, r.client_id, r.barber_id, r.rating, r.comment,
			   r.created_at, r.updated_at,
			   COALESCE(u.name, 'Client') AS client_name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.client_id
		ORDER BY r.created_at DESC
	`
	var reviews []*model.Review
	err := sqlx.SelectContext(ctx, r.ext(ctx), &reviews, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListForBarber(ctx context.Context, barberID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT r.id, r.client_id, r.barber_id, r.rating, r.comment,
			   r.created_at, r.updated_at,
			   COALESCE(u.name, 'Client') AS client_name
		FROM reviews r
		LEFT JOIN users u ON u.id = r.client_id
		WHERE r.barber_id = $1
		ORDER BY r.created_at DESC
	`
	var reviews []*model.Review
	err := sqlx.SelectContext(ctx, r.ext(ctx), &reviews, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barber reviews: %w", err)
	}
	return reviews, nil
}
