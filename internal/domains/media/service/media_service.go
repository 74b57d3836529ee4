package service

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/infrastructure/storage"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/docstore"
)

// Upload is the result of one image upload: the display URL plus every
// rendered variant.
type Upload struct {
	URL      string            `json:"url"`
	Key      string            `json:"key"`
	Variants map[string]string `json:"variants"`
}

type Service interface {
	// UploadImage validates, resizes and stores an image. Admin only.
	UploadImage(ctx context.Context, data []byte, folder string) (*Upload, error)
}

type mediaService struct {
	objects   storage.ObjectStore
	processor *storage.ImageProcessor
	guard     session.Guard
}

func NewMediaService(objects storage.ObjectStore, processor *storage.ImageProcessor, guard session.Guard) Service {
	return &mediaService{objects: objects, processor: processor, guard: guard}
}

func (s *mediaService) UploadImage(ctx context.Context, data []byte, folder string) (*Upload, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("no file provided")
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "portfolio"
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return nil, apperrors.Validation("%s", err)
	}
	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, apperrors.Validation("%s", err)
	}

	prefix := fmt.Sprintf("%s/%s", folder, docstore.NewID())
	urls := make(map[string]string, len(variants))
	for name, bytes := range variants {
		key := fmt.Sprintf("%s/%s.jpg", prefix, name)
		url, err := s.objects.Upload(ctx, key, bytes, "image/jpeg")
		if err != nil {
			return nil, apperrors.Storage(err)
		}
		urls[name] = url
	}

	return &Upload{URL: urls["large"], Key: prefix, Variants: urls}, nil
}
