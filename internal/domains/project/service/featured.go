package service

import (
	"context"
	"time"

	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/docstore"
)

// setFeatured promotes id and demotes every currently featured project in
// one batch. A reader observes either the old featured project or the new
// one, never both.
func (s *projectService) setFeatured(ctx context.Context, id string) error {
	docs, err := s.docs.List(ctx, Collection)
	if err != nil {
		return apperrors.FromStore(err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)
	var ops []docstore.Op
	found := false
	for _, doc := range docs {
		if doc.ID == id {
			found = true
			continue
		}
		if b, ok := doc.Data["featured"].(bool); ok && b {
			ops = append(ops, docstore.MergeOp(Collection, doc.ID, map[string]interface{}{
				"featured":  false,
				"updatedAt": stamp,
			}))
		}
	}
	if !found {
		return apperrors.NotFound("project", id)
	}
	ops = append(ops, docstore.MergeOp(Collection, id, map[string]interface{}{
		"featured":  true,
		"updatedAt": stamp,
	}))

	if err := s.docs.ApplyBatch(ctx, ops); err != nil {
		return apperrors.FromStore(err)
	}
	return nil
}

// unsetFeatured clears the flag on a single project without touching the
// rest of the collection.
func (s *projectService) unsetFeatured(ctx context.Context, id string) error {
	stamp := time.Now().UTC().Format(time.RFC3339)
	err := s.docs.Merge(ctx, Collection, id, map[string]interface{}{
		"featured":  false,
		"updatedAt": stamp,
	})
	if err != nil {
		return apperrors.FromStore(err)
	}
	return nil
}
