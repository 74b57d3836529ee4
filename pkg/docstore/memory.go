package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store. It backs unit tests and the "memory"
// docstore driver for running the API without Postgres.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]memDoc
	calls       int
	failErr     error
}

type memDoc struct {
	id   string
	data map[string]interface{}
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]memDoc)}
}

// FailNext makes the next store call return err instead of applying.
// Batch failures leave prior state untouched, mirroring a rejected
// transaction in the real store.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Calls reports how many store operations have been issued. Used by tests
// asserting that auth rejection happens before any store traffic.
func (m *Memory) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *Memory) begin() error {
	m.calls++
	if m.failErr != nil {
		err := m.failErr
		m.failErr = nil
		return err
	}
	return nil
}

func (m *Memory) Get(_ context.Context, collection, id string) (Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return Doc{}, err
	}
	for _, d := range m.collections[collection] {
		if d.id == id {
			return Doc{ID: d.id, Data: cloneData(d.data)}, nil
		}
	}
	return Doc{}, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

func (m *Memory) List(_ context.Context, collection string) ([]Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	docs := make([]Doc, 0, len(m.collections[collection]))
	for _, d := range m.collections[collection] {
		docs = append(docs, Doc{ID: d.id, Data: cloneData(d.data)})
	}
	return docs, nil
}

func (m *Memory) Insert(_ context.Context, collection string, data map[string]interface{}) (Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return Doc{}, err
	}
	d := memDoc{id: NewID(), data: cloneData(data)}
	m.collections[collection] = append(m.collections[collection], d)
	return Doc{ID: d.id, Data: cloneData(d.data)}, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	m.applySet(collection, id, data)
	return nil
}

func (m *Memory) Merge(_ context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	return m.applyMerge(collection, id, fields)
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	return m.applyDelete(collection, id)
}

func (m *Memory) ApplyBatch(_ context.Context, ops []Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}

	// Apply against a copy, swap only on full success.
	saved := m.collections
	m.collections = cloneCollections(saved)
	for _, op := range ops {
		var err error
		switch op.Kind {
		case OpSet:
			m.applySet(op.Collection, op.ID, op.Data)
		case OpMerge:
			err = m.applyMerge(op.Collection, op.ID, op.Data)
		case OpDelete:
			err = m.applyDelete(op.Collection, op.ID)
		case OpDeleteAll:
			delete(m.collections, op.Collection)
		}
		if err != nil {
			m.collections = saved
			return err
		}
	}
	return nil
}

func (m *Memory) applySet(collection, id string, data map[string]interface{}) {
	docs := m.collections[collection]
	for i, d := range docs {
		if d.id == id {
			docs[i] = memDoc{id: id, data: cloneData(data)}
			return
		}
	}
	m.collections[collection] = append(docs, memDoc{id: id, data: cloneData(data)})
}

func (m *Memory) applyMerge(collection, id string, fields map[string]interface{}) error {
	docs := m.collections[collection]
	for i, d := range docs {
		if d.id == id {
			merged := cloneData(d.data)
			for k, v := range fields {
				merged[k] = v
			}
			docs[i] = memDoc{id: id, data: merged}
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

func (m *Memory) applyDelete(collection, id string) error {
	docs := m.collections[collection]
	for i, d := range docs {
		if d.id == id {
			m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// cloneData round-trips through JSON so stored documents look the same as
// they would coming back from a real JSON document database.
func cloneData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		// Data maps are built from JSON-decoded input; this cannot fail
		// for any value that reached the store.
		panic(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func cloneCollections(src map[string][]memDoc) map[string][]memDoc {
	out := make(map[string][]memDoc, len(src))
	for name, docs := range src {
		copied := make([]memDoc, len(docs))
		for i, d := range docs {
			copied[i] = memDoc{id: d.id, data: cloneData(d.data)}
		}
		out[name] = copied
	}
	return out
}
