// Package ordered implements the ordered-collection store shared by the
// portfolio collections (projects, experience, skills). Items carry an
// integer "order" field assigned on append; display order is ascending
// order with items lacking the field sorted last in arrival order.
package ordered

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"portfolio-backend/pkg/docstore"
)

// ErrNotPermutation is returned by Reorder when the supplied ids do not
// cover the collection exactly once each.
var ErrNotPermutation = errors.New("ids are not a permutation of the collection")

// Store is a typed ordered collection on top of a document store. T is the
// JSON shape of one item; documents decode into it with the store id
// injected under "id".
type Store[T any] struct {
	docs       docstore.Store
	collection string
	now        func() time.Time
}

func New[T any](docs docstore.Store, collection string) *Store[T] {
	return &Store[T]{docs: docs, collection: collection, now: time.Now}
}

// List returns every item sorted for display: ascending order, stable, with
// order-less items after all ordered ones in their arrival order. An empty
// collection yields an empty slice, never an error.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	docs, err := s.docs.List(ctx, s.collection)
	if err != nil {
		return nil, err
	}
	sortDocs(docs)

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns a single item by id.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := s.docs.Get(ctx, s.collection, id)
	if err != nil {
		return zero, err
	}
	return decode[T](doc)
}

// Create appends a new item: order = max(existing) + 1, timestamps set to
// now. Any order or timestamps present in fields are overwritten; clients
// never choose them on creation. Two concurrent creates may compute the
// same order, which degrades to a display tie rather than an error.
func (s *Store[T]) Create(ctx context.Context, fields map[string]interface{}) (T, error) {
	var zero T
	docs, err := s.docs.List(ctx, s.collection)
	if err != nil {
		return zero, err
	}

	next := -1
	for _, doc := range docs {
		if v, ok := orderValue(doc.Data); ok && v > next {
			next = v
		}
	}

	data := cloneFields(fields)
	stamp := s.timestamp()
	data["order"] = next + 1
	data["createdAt"] = stamp
	data["updatedAt"] = stamp

	doc, err := s.docs.Insert(ctx, s.collection, data)
	if err != nil {
		return zero, err
	}
	return decode[T](doc)
}

// Update merges fields into the stored item and refreshes updatedAt. The
// order field is only touched when the caller sends it explicitly.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	data := cloneFields(fields)
	delete(data, "id")
	delete(data, "createdAt")
	data["updatedAt"] = s.timestamp()
	return s.docs.Merge(ctx, s.collection, id, data)
}

// Delete removes an item. Remaining order values are not renumbered; gaps
// are fine for display sorting. Reports docstore.ErrNotFound for a missing
// id; whether that surfaces to callers is the service's policy.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, s.collection, id)
}

// ReplaceAll atomically swaps the entire collection for items, with order
// assigned from input position. Old ids and order values are discarded. On
// failure the prior contents are untouched.
func (s *Store[T]) ReplaceAll(ctx context.Context, items []map[string]interface{}) error {
	stamp := s.timestamp()
	ops := make([]docstore.Op, 0, len(items)+1)
	ops = append(ops, docstore.DeleteAllOp(s.collection))
	for i, fields := range items {
		data := cloneFields(fields)
		data["order"] = i
		data["createdAt"] = stamp
		data["updatedAt"] = stamp
		ops = append(ops, docstore.SetOp(s.collection, docstore.NewID(), data))
	}
	return s.docs.ApplyBatch(ctx, ops)
}

// Reorder renumbers the collection to match ids, which must be a
// permutation of the current item ids. Applied as one atomic batch.
func (s *Store[T]) Reorder(ctx context.Context, ids []string) error {
	docs, err := s.docs.List(ctx, s.collection)
	if err != nil {
		return err
	}
	if len(ids) != len(docs) {
		return fmt.Errorf("%w: got %d ids, collection has %d items", ErrNotPermutation, len(ids), len(docs))
	}
	existing := make(map[string]bool, len(docs))
	for _, doc := range docs {
		existing[doc.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !existing[id] {
			return fmt.Errorf("%w: unknown id %s", ErrNotPermutation, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", ErrNotPermutation, id)
		}
		seen[id] = true
	}

	stamp := s.timestamp()
	ops := make([]docstore.Op, 0, len(ids))
	for i, id := range ids {
		ops = append(ops, docstore.MergeOp(s.collection, id, map[string]interface{}{
			"order":     i,
			"updatedAt": stamp,
		}))
	}
	return s.docs.ApplyBatch(ctx, ops)
}

func (s *Store[T]) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func sortDocs(docs []docstore.Doc) {
	sort.SliceStable(docs, func(i, j int) bool {
		iv, iok := orderValue(docs[i].Data)
		jv, jok := orderValue(docs[j].Data)
		switch {
		case iok && jok:
			return iv < jv
		case iok:
			return true
		default:
			return false
		}
	})
}

// orderValue reads the order field, tolerating the numeric types JSON
// decoding and callers produce.
func orderValue(data map[string]interface{}) (int, bool) {
	switch v := data["order"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func decode[T any](doc docstore.Doc) (T, error) {
	var item T
	data := make(map[string]interface{}, len(doc.Data)+1)
	for k, v := range doc.Data {
		data[k] = v
	}
	data["id"] = doc.ID
	raw, err := json.Marshal(data)
	if err != nil {
		return item, fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return item, nil
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	return out
}
