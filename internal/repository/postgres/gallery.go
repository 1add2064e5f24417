package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func (r *galleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (
			id, title, image_url, position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	image.ID = uuid.New()
	image.CreatedAt = time.Now()
	image.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		image.ID,
		image.Title,
		image.ImageURL,
		image.Position,
		image.CreatedAt,
		image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

func (r *galleryRepository) Get(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	query := `
		SELECT id, title, image_url, position, created_at, updated_at
		FROM gallery_images
		WHERE id = $1
	`
	var image model.GalleryImage
	err := sqlx.GetContext(ctx, r.ext(ctx), &image, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery image: %w", err)
	}
	return &image, nil
}

func (r *galleryRepository) Update(ctx context.Context, image *model.GalleryImage) error {
	query := `
		UPDATE gallery_images
		SET title = $1, image_url = $2, position = $3, updated_at = $4
		WHERE id = $5
	`
	image.UpdatedAt = time.Now()

	result, err := r.ext(ctx).ExecContext(ctx, query,
		image.Title,
		image.ImageURL,
		image.Position,
		image.UpdatedAt,
		image.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gallery image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("gallery image not found")
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM gallery_images
		WHERE id = $1
	`
	result, err := r.ext(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("gallery image not found")
	}
	return nil
}

func (r *galleryRepository) List(ctx context.Context) ([]*model.GalleryImage, error) {
	query := `
		SELECT id, title, image_url, position, created_at, updated_at
		FROM gallery_images
		ORDER BY position ASC, created_at DESC
	`
	var images []*model.GalleryImage
	err := sqlx.SelectContext(ctx, r.ext(ctx), &images, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	return images, nil
}
