package service

import (
	"context"

	"portfolio-backend/internal/domains/project/model"
)

// Service is the projects collection API. GetAll and GetOne are public;
// every mutating operation authenticates through the session guard before
// touching the store.
type Service interface {
	GetAll(ctx context.Context) ([]model.Project, error)
	GetOne(ctx context.Context, id string) (*model.Project, error)
	CreateOne(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error)
	UpdateOne(ctx context.Context, req *model.UpdateProjectRequest) error
	DeleteOne(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error

	// ToggleFeatured flips the featured flag on one project. Promoting a
	// project demotes the previously featured one in the same atomic batch,
	// so at most one project is ever featured. Returns the new state.
	ToggleFeatured(ctx context.Context, id string) (bool, error)
}
