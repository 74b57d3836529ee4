package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/pkg/docstore"
)

// DocumentStore implements docstore.Store on a single JSONB table. The
// serial column records arrival order, which List preserves so callers can
// fall back to insertion order when documents have no explicit order field.
type DocumentStore struct {
	pool *pgxpool.Pool
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT   NOT NULL,
			id         TEXT   NOT NULL,
			seq        BIGSERIAL,
			data       JSONB  NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Doc, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Doc{}, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
		}
		return docstore.Doc{}, fmt.Errorf("get document: %w", err)
	}
	return decodeDoc(id, raw)
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]docstore.Doc, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Doc
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decodeDoc(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, data map[string]interface{}) (docstore.Doc, error) {
	id := docstore.NewID()
	raw, err := json.Marshal(data)
	if err != nil {
		return docstore.Doc{}, fmt.Errorf("encode document: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(raw))
	if err != nil {
		return docstore.Doc{}, fmt.Errorf("insert document: %w", err)
	}
	return decodeDoc(id, raw)
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("merge document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	return nil
}

// ApplyBatch runs every op inside one transaction. A failed op rolls the
// whole batch back, so bulk replace and the featured fan-out are all-or-
// nothing as observed by any reader.
func (s *DocumentStore) ApplyBatch(ctx context.Context, ops []docstore.Op) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		if err := applyOp(ctx, tx, op); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func applyOp(ctx context.Context, tx pgx.Tx, op docstore.Op) error {
	switch op.Kind {
	case docstore.OpSet:
		raw, err := json.Marshal(op.Data)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
			ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
			op.Collection, op.ID, string(raw))
		if err != nil {
			return fmt.Errorf("batch set: %w", err)
		}
	case docstore.OpMerge:
		raw, err := json.Marshal(op.Data)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		tag, err := tx.Exec(ctx,
			`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
			op.Collection, op.ID, string(raw))
		if err != nil {
			return fmt.Errorf("batch merge: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, op.Collection, op.ID)
		}
	case docstore.OpDelete:
		tag, err := tx.Exec(ctx,
			`DELETE FROM documents WHERE collection = $1 AND id = $2`,
			op.Collection, op.ID)
		if err != nil {
			return fmt.Errorf("batch delete: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, op.Collection, op.ID)
		}
	case docstore.OpDeleteAll:
		if _, err := tx.Exec(ctx,
			`DELETE FROM documents WHERE collection = $1`, op.Collection); err != nil {
			return fmt.Errorf("batch delete all: %w", err)
		}
	default:
		return fmt.Errorf("unknown batch op kind %d", op.Kind)
	}
	return nil
}

func decodeDoc(id string, raw []byte) (docstore.Doc, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return docstore.Doc{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return docstore.Doc{ID: id, Data: data}, nil
}
