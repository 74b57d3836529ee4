package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	doc, err := m.Insert(ctx, "things", map[string]interface{}{"name": "first"})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)

	got, err := m.Get(ctx, "things", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Data["name"])

	_, err = m.Get(ctx, "things", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListArrivalOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	names := []string{"a", "b", "c"}
	for _, n := range names {
		_, err := m.Insert(ctx, "things", map[string]interface{}{"name": n})
		require.NoError(t, err)
	}

	docs, err := m.List(ctx, "things")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, d := range docs {
		assert.Equal(t, names[i], d.Data["name"])
	}
}

func TestMemorySetUpserts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "things", "x", map[string]interface{}{"name": "v1"}))
	require.NoError(t, m.Set(ctx, "things", "x", map[string]interface{}{"name": "v2"}))

	docs, err := m.List(ctx, "things")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "v2", docs[0].Data["name"])
}

func TestMemoryMerge(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "things", "x", map[string]interface{}{"name": "v1", "keep": true}))
	require.NoError(t, m.Merge(ctx, "things", "x", map[string]interface{}{"name": "v2"}))

	got, err := m.Get(ctx, "things", "x")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Data["name"])
	assert.Equal(t, true, got.Data["keep"])

	err = m.Merge(ctx, "things", "missing", map[string]interface{}{"name": "v"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "things", "x", map[string]interface{}{"name": "v1"}))
	require.NoError(t, m.Delete(ctx, "things", "x"))
	assert.ErrorIs(t, m.Delete(ctx, "things", "x"), ErrNotFound)
}

func TestMemoryApplyBatchAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "things", "a", map[string]interface{}{"name": "a"}))

	// The second op fails, so the first must not take effect.
	err := m.ApplyBatch(ctx, []Op{
		SetOp("things", "b", map[string]interface{}{"name": "b"}),
		MergeOp("things", "missing", map[string]interface{}{"name": "x"}),
	})
	require.ErrorIs(t, err, ErrNotFound)

	docs, err := m.List(ctx, "things")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
}

func TestMemoryApplyBatchDeleteAll(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "things", "a", map[string]interface{}{"name": "a"}))
	require.NoError(t, m.Set(ctx, "things", "b", map[string]interface{}{"name": "b"}))

	err := m.ApplyBatch(ctx, []Op{
		DeleteAllOp("things"),
		SetOp("things", "c", map[string]interface{}{"name": "c"}),
	})
	require.NoError(t, err)

	docs, err := m.List(ctx, "things")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0].ID)
}

func TestMemoryFailNext(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")

	require.NoError(t, m.Set(ctx, "things", "a", map[string]interface{}{"name": "a"}))

	m.FailNext(boom)
	err := m.ApplyBatch(ctx, []Op{DeleteAllOp("things")})
	require.ErrorIs(t, err, boom)

	// Prior state survives a rejected batch, and the failure is one-shot.
	docs, err := m.List(ctx, "things")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryCalls(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	assert.Equal(t, 0, m.Calls())

	_, _ = m.List(ctx, "things")
	_, _ = m.Insert(ctx, "things", map[string]interface{}{"name": "a"})
	assert.Equal(t, 2, m.Calls())
}
