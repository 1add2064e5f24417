package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func (r *barberRepository) Create(ctx context.Context, barber *model.Barber) error {
	query := `
		INSERT INTO barbers (
			id, user_id, name, bio, photo_url, available, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	barber.ID = uuid.New()
	barber.CreatedAt = time.Now()
	barber.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		barber.ID,
		barber.UserID,
		barber.Name,
		barber.Bio,
		barber.PhotoURL,
		barber.Available,
		barber.CreatedAt,
		barber.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create barber: %w", err)
	}
	return nil
}

func (r *barberRepository) Get(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	query := `
		SELECT id, user_id, name, bio, photo_url, available, created_at, updated_at
		FROM barbers
		WHERE id = $1
	`
	var barber model.Barber
	err := sqlx.GetContext(ctx, r.ext(ctx), &barber, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}
	return &barber, nil
}

func (r *barberRepository) Update(ctx context.Context, barber *model.Barber) error {
	query := `
		UPDATE barbers
		SET name = $1, bio = $2, photo_url = $3, available = $4, updated_at = $5
		WHERE id = $6
	`
	barber.UpdatedAt = time.Now()

	result, err := r.ext(ctx).ExecContext(ctx, query,
		barber.Name,
		barber.Bio,
		barber.PhotoURL,
		barber.Available,
		barber.UpdatedAt,
		barber.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update barber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("barber not found")
	}
	return nil
}

func (r *barberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM barbers
		WHERE id = $1
	`
	result, err := r.ext(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete barber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("barber not found")
	}
	return nil
}

func (r *barberRepository) List(ctx context.Context) ([]*model.Barber, error) {
	query := `
		SELECT id, user_id, name, bio, photo_url, available, created_at, updated_at
		FROM barbers
		ORDER BY name ASC, id ASC
	`
	var barbers []*model.Barber
	err := sqlx.SelectContext(ctx, r.ext(ctx), &barbers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}

func (r *barberRepository) ListAvailable(ctx context.Context) ([]*model.Barber, error) {
	// Fixed ordering keeps any-barber candidate assignment deterministic.
	query := `
		SELECT id, user_id, name, bio, photo_url, available, created_at, updated_at
		FROM barbers
		WHERE available = true
		ORDER BY name ASC, id ASC
	`
	var barbers []*model.Barber
	err := sqlx.SelectContext(ctx, r.ext(ctx), &barbers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list available barbers: %w", err)
	}
	return barbers, nil
}
