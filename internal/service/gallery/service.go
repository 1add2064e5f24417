package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/repository"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
)

const galleryCacheKey = "gallery:images"

type Service struct {
	gallery repository.GalleryRepository
	cache   *gocache.Cache
}

func NewService(gallery repository.GalleryRepository) *Service {
	return &Service{
		gallery: gallery,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) AddImage(ctx context.Context, req *model.CreateGalleryImageRequest) (*model.GalleryImage, error) {
	image := &model.GalleryImage{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Position: req.Position,
	}
	if err := s.gallery.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to add gallery image: %w", err)
	}
	s.cache.Delete(galleryCacheKey)
	return image, nil
}

func (s *Service) UpdateImage(ctx context.Context, id uuid.UUID, req *model.UpdateGalleryImageRequest) (*model.GalleryImage, error) {
	image, err := s.gallery.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("gallery image not found", err)
	}

	if req.Title != nil {
		image.Title = *req.Title
	}
	if req.ImageURL != nil {
		image.ImageURL = *req.ImageURL
	}
	if req.Position != nil {
		image.Position = *req.Position
	}

	if err := s.gallery.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to update gallery image: %w", err)
	}
	s.cache.Delete(galleryCacheKey)
	return image, nil
}

func (s *Service) RemoveImage(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gallery.Get(ctx, id); err != nil {
		return apperrors.NotFound("gallery image not found", err)
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove gallery image: %w", err)
	}
	s.cache.Delete(galleryCacheKey)
	return nil
}

func (s *Service) ListImages(ctx context.Context) ([]*model.GalleryImage, error) {
	if cached, ok := s.cache.Get(galleryCacheKey); ok {
		return cached.([]*model.GalleryImage), nil
	}

	images, err := s.gallery.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	s.cache.Set(galleryCacheKey, images, gocache.DefaultExpiration)
	return images, nil
}
