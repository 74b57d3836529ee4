package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/experience/model"
	infracache "portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/identity"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/apperrors"
	"portfolio-backend/pkg/docstore"
)

func newService(t *testing.T) (Service, *docstore.Memory) {
	t.Helper()
	mem := docstore.NewMemory()
	svc := NewExperienceService(mem, session.NewGuard(), infracache.NewMemoryCache())
	return svc, mem
}

func adminCtx() context.Context {
	return session.WithUser(context.Background(), identity.User{UID: "admin", Email: "admin@example.com"})
}

func TestExperienceLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := adminCtx()

	first, err := svc.CreateOne(ctx, &model.CreateEntryRequest{
		Title:   "Backend Engineer",
		Company: "Acme",
		Stack:   []string{"Go", "Postgres"},
		Links:   model.Links{Repo: "https://example.com/repo"},
	})
	require.NoError(t, err)
	require.NotNil(t, first.Order)
	assert.Equal(t, 0, *first.Order)
	assert.Equal(t, "https://example.com/repo", first.Links.Repo)

	second, err := svc.CreateOne(ctx, &model.CreateEntryRequest{Title: "Tech Lead"})
	require.NoError(t, err)
	assert.Equal(t, 1, *second.Order)

	company := "Globex"
	require.NoError(t, svc.UpdateOne(ctx, &model.UpdateEntryRequest{ID: first.ID, Company: &company}))

	items, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Globex", items[0].Company)
	assert.Equal(t, "Backend Engineer", items[0].Title)

	require.NoError(t, svc.Reorder(ctx, []string{second.ID, first.ID}))
	items, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, items[0].ID)

	require.NoError(t, svc.DeleteOne(ctx, first.ID))
	require.NoError(t, svc.DeleteOne(ctx, first.ID))
	items, err = svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestExperienceMutationsRequireSession(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	_, err := svc.CreateOne(ctx, &model.CreateEntryRequest{Title: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteOne(ctx, "x"), apperrors.ErrUnauthorized)
	assert.Equal(t, 0, mem.Calls())
}

func TestExperienceUpdateMissing(t *testing.T) {
	svc, _ := newService(t)
	title := "x"
	err := svc.UpdateOne(adminCtx(), &model.UpdateEntryRequest{ID: "missing", Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
