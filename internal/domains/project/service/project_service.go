package service

import (
	"context"
	"errors"
	"time"

	"portfolio-backend/internal/domains/project/model"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/docstore"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/ordered"
)

// Collection is the projects document collection name.
const Collection = "projects"

const (
	cacheKey = "portfolio:projects"
	cacheTTL = 5 * time.Minute
)

type projectService struct {
	store *ordered.Store[model.Project]
	docs  docstore.Store
	guard session.Guard
	cache cache.Cache
}

func NewProjectService(docs docstore.Store, guard session.Guard, c cache.Cache) Service {
	return &projectService{
		store: ordered.New[model.Project](docs, Collection),
		docs:  docs,
		guard: guard,
		cache: c,
	}
}

func (s *projectService) GetAll(ctx context.Context) ([]model.Project, error) {
	var cached []model.Project
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("projects cache read failed", err)
	} else if found {
		return cached, nil
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	if err := s.cache.Set(ctx, cacheKey, items, cacheTTL); err != nil {
		logger.Warn("projects cache write failed", err)
	}
	return items, nil
}

func (s *projectService) GetOne(ctx context.Context, id string) (*model.Project, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return &item, nil
}

func (s *projectService) CreateOne(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
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
	// New projects always start unfeatured; the only path to featured is
	// ToggleFeatured.
	fields["featured"] = false

	item, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return &item, nil
}

func (s *projectService) UpdateOne(ctx context.Context, req *model.UpdateProjectRequest) error {
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
	// Featured never flows through the merge path; the selector owns it.
	delete(fields, "featured")

	if err := s.store.Update(ctx, req.ID, fields); err != nil {
		return apperrors.FromStore(err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteOne is idempotent: deleting an id that is already gone succeeds.
// Remaining order values keep their gaps.
func (s *projectService) DeleteOne(ctx context.Context, id string) error {
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

func (s *projectService) Reorder(ctx context.Context, ids []string) error {
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

func (s *projectService) ToggleFeatured(ctx context.Context, id string) (bool, error) {
	if err := s.guard.Authenticate(ctx); err != nil {
		return false, err
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return false, apperrors.FromStore(err)
	}

	// The read above is not transactional with the write below; two racing
	// toggles on different projects can transiently disagree. The write
	// itself is a single atomic batch, so a reader never sees two featured
	// projects.
	if current.Featured {
		err = s.unsetFeatured(ctx, id)
	} else {
		err = s.setFeatured(ctx, id)
	}
	if err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return !current.Featured, nil
}

func (s *projectService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("projects cache invalidation failed", err)
	}
}
