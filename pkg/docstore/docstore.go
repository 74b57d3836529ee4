// Package docstore defines the document-database contract the portfolio
// collections persist through. Implementations exist for Postgres (JSONB)
// and in-memory (tests, local development).
package docstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Doc is one stored document. Data holds the JSON body; timestamps live
// inside Data because the services own them, not the store.
type Doc struct {
	ID   string
	Data map[string]interface{}
}

// Store is the document-store collaborator. List returns documents in
// arrival order (insertion order into the store), which is the tie-break
// the ordered-collection layer relies on.
type Store interface {
	Get(ctx context.Context, collection, id string) (Doc, error)
	List(ctx context.Context, collection string) ([]Doc, error)

	// Insert stores data under a fresh store-assigned id.
	Insert(ctx context.Context, collection string, data map[string]interface{}) (Doc, error)

	// Set upserts the full document body under an explicit id.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error

	// Merge overlays fields onto an existing document. ErrNotFound if absent.
	Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete removes a document. ErrNotFound if absent.
	Delete(ctx context.Context, collection, id string) error

	// ApplyBatch applies all ops atomically: either every op takes effect or
	// none do. This is the carrier for multi-document invariants (bulk
	// replace, featured fan-out).
	ApplyBatch(ctx context.Context, ops []Op) error
}

type OpKind int

const (
	OpSet OpKind = iota
	OpMerge
	OpDelete
	OpDeleteAll
)

// Op is one step of an atomic batch.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Data       map[string]interface{}
}

func SetOp(collection, id string, data map[string]interface{}) Op {
	return Op{Kind: OpSet, Collection: collection, ID: id, Data: data}
}

func MergeOp(collection, id string, fields map[string]interface{}) Op {
	return Op{Kind: OpMerge, Collection: collection, ID: id, Data: fields}
}

func DeleteOp(collection, id string) Op {
	return Op{Kind: OpDelete, Collection: collection, ID: id}
}

func DeleteAllOp(collection string) Op {
	return Op{Kind: OpDeleteAll, Collection: collection}
}

// NewID mints a document id for callers that must know the id before the
// write lands (batch inserts).
func NewID() string {
	return uuid.NewString()
}
