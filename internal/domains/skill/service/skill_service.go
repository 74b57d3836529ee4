package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/domains/skill/model"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/docstore"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/ordered"
)

// Collection is the skills document collection name.
const Collection = "skills"

const (
	cacheKey = "portfolio:skills"
	cacheTTL = 5 * time.Minute
)

type Service interface {
	GetAll(ctx context.Context) ([]model.Skill, error)
	CreateOne(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error)
	UpdateOne(ctx context.Context, req *model.UpdateSkillRequest) error
	DeleteOne(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error

	// ReplaceAllBulk is the legacy dashboard save path: it atomically
	// replaces the whole collection with the given skills, renumbering from
	// input position. Prior ids and order values are destroyed, not merged.
	ReplaceAllBulk(ctx context.Context, skills []model.BulkSkill) ([]model.Skill, error)
}

type skillService struct {
	store *ordered.Store[model.Skill]
	guard session.Guard
	cache cache.Cache
}

func NewSkillService(docs docstore.Store, guard session.Guard, c cache.Cache) Service {
	return &skillService{
		store: ordered.New[model.Skill](docs, Collection),
		guard: guard,
		cache: c,
	}
}

func (s *skillService) GetAll(ctx context.Context) ([]model.Skill, error) {
	var cached []model.Skill
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("skills cache read failed", err)
	} else if found {
		return cached, nil
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	if err := s.cache.Set(ctx, cacheKey, items, cacheTTL); err != nil {
		logger.Warn("skills cache write failed", err)
	}
	return items, nil
}

func (s *skillService) CreateOne(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err)
	}

	item, err := s.store.Create(ctx, map[string]interface{}{
		"name": strings.TrimSpace(req.Name),
	})
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return &item, nil
}

func (s *skillService) UpdateOne(ctx context.Context, req *model.UpdateSkillRequest) error {
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
func (s *skillService) DeleteOne(ctx context.Context, id string) error {
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

func (s *skillService) Reorder(ctx context.Context, ids []string) error {
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

func (s *skillService) ReplaceAllBulk(ctx context.Context, skills []model.BulkSkill) ([]model.Skill, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0, len(skills))
	for i, sk := range skills {
		name := strings.TrimSpace(sk.Name)
		if name == "" {
			return nil, apperrors.Validation("skill at position %d has no name", i)
		}
		// Input order is discarded; position in the payload wins.
		items = append(items, map[string]interface{}{"name": name})
	}

	if err := s.store.ReplaceAll(ctx, items); err != nil {
		return nil, apperrors.FromStore(err)
	}
	s.invalidate(ctx)

	saved, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return saved, nil
}

func (s *skillService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("skills cache invalidation failed", err)
	}
}
