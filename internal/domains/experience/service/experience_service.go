package service

import (
	"context"
	"errors"
	"time"

	"portfolio-backend/internal/domains/experience/model"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/docstore"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/ordered"
)

// Collection is the experience document collection name.
const Collection = "experience"

const (
	cacheKey = "portfolio:experience"
	cacheTTL = 5 * time.Minute
)

type Service interface {
	GetAll(ctx context.Context) ([]model.Entry, error)
	CreateOne(ctx context.Context, req *model.CreateEntryRequest) (*model.Entry, error)
	UpdateOne(ctx context.Context, req *model.UpdateEntryRequest) error
	DeleteOne(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type experienceService struct {
	store *ordered.Store[model.Entry]
	guard session.Guard
	cache cache.Cache
}

func NewExperienceService(docs docstore.Store, guard session.Guard, c cache.Cache) Service {
	return &experienceService{
		store: ordered.New[model.Entry](docs, Collection),
		guard: guard,
		cache: c,
	}
}

func (s *experienceService) GetAll(ctx context.Context) ([]model.Entry, error) {
	var cached []model.Entry
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("experience cache read failed", err)
	} else if found {
		return cached, nil
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	if err := s.cache.Set(ctx, cacheKey, items, cacheTTL); err != nil {
		logger.Warn("experience cache write failed", err)
	}
	return items, nil
}

func (s *experienceService) CreateOne(ctx context.Context, req *model.CreateEntryRequest) (*model.Entry, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err)
	}

	fields, err := ordered.Fields(req)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	item, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return &item, nil
}

func (s *experienceService) UpdateOne(ctx context.Context, req *model.UpdateEntryRequest) error {
	if err := s.guard.Authenticate(ctx); err != nil {
		return err
	}
	if req == nil {
		return apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return apperrors.Validation("%s", err)
	}

	fields, err := ordered.Fields(req)
	if err != nil {
		return apperrors.Storage(err)
	}
	delete(fields, "id")

	if err := s.store.Update(ctx, req.ID, fields); err != nil {
		return apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteOne is idempotent, matching the other collections.
func (s *experienceService) DeleteOne(ctx context.Context, id string) error {
	if err := s.guard.Authenticate(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperrors.Validation("id is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *experienceService) Reorder(ctx context.Context, ids []string) error {
	if err := s.guard.Authenticate(ctx); err != nil {
		return err
	}
	if err := s.store.Reorder(ctx, ids); err != nil {
		if errors.Is(err, ordered.ErrNotPermutation) {
			return apperrors.Validation("%s", err)
		}
		return apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *experienceService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("experience cache invalidation failed", err)
	}
}
