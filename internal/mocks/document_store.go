package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/phrazzld/library-api/internal/store"
)

// DocumentCall records the arguments of one MockDocumentStore call.
type DocumentCall struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// MockDocumentStore implements store.DocumentStore for testing.
//
// Calls whose function field is nil are served by an embedded in-memory map,
// so a zero-configured mock behaves like an empty store. Every call is
// recorded and can be inspected with Calls.
type MockDocumentStore struct {
	CreateFn func(ctx context.Context, collection string, fields map[string]any) (string, error)
	ListFn   func(ctx context.Context, collection string) ([]store.Document, error)
	GetFn    func(ctx context.Context, collection, id string) (*store.Document, error)
	UpdateFn func(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteFn func(ctx context.Context, collection, id string) error

	mu     sync.Mutex
	docs   map[string]map[string]map[string]any
	order  map[string][]string
	nextID int
	calls  map[string][]DocumentCall
}

var _ store.DocumentStore = (*MockDocumentStore)(nil)

// NewMockDocumentStore creates a mock with an empty backing map.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{}
}

// Seed stores fields under id in collection, bypassing CreateFn.
func (m *MockDocumentStore) Seed(collection, id string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, fields)
}

// Calls returns the recorded calls of the named method ("Create", "List", "Get",
// "Update" or "Delete") in order.
func (m *MockDocumentStore) Calls(method string) []DocumentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DocumentCall(nil), m.calls[method]...)
}

func (m *MockDocumentStore) record(method string, call DocumentCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string][]DocumentCall)
	}
	m.calls[method] = append(m.calls[method], call)
}

func (m *MockDocumentStore) put(collection, id string, fields map[string]any) {
	if m.docs == nil {
		m.docs = make(map[string]map[string]map[string]any)
		m.order = make(map[string][]string)
	}
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]map[string]any)
	}
	if _, exists := m.docs[collection][id]; !exists {
		m.order[collection] = append(m.order[collection], id)
	}
	m.docs[collection][id] = copyFields(fields)
}

// Create implements store.DocumentStore.
func (m *MockDocumentStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	m.record("Create", DocumentCall{Collection: collection, Fields: copyFields(fields)})
	if m.CreateFn != nil {
		return m.CreateFn(ctx, collection, fields)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := "mock-" + strconv.Itoa(m.nextID)
	m.put(collection, id, fields)
	return id, nil
}

// List implements store.DocumentStore.
func (m *MockDocumentStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	m.record("List", DocumentCall{Collection: collection})
	if m.ListFn != nil {
		return m.ListFn(ctx, collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]store.Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		if fields, ok := m.docs[collection][id]; ok {
			docs = append(docs, store.Document{ID: id, Data: copyFields(fields)})
		}
	}
	return docs, nil
}

// Get implements store.DocumentStore.
func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	m.record("Get", DocumentCall{Collection: collection, ID: id})
	if m.GetFn != nil {
		return m.GetFn(ctx, collection, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	fields, ok := m.docs[collection][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Document{ID: id, Data: copyFields(fields)}, nil
}

// Update implements store.DocumentStore.
func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.record("Update", DocumentCall{Collection: collection, ID: id, Fields: copyFields(fields)})
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, collection, id, fields)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return store.ErrNotFound
	}
	m.put(collection, id, fields)
	return nil
}

// Delete implements store.DocumentStore.
func (m *MockDocumentStore) Delete(ctx context.Context, collection, id string) error {
	m.record("Delete", DocumentCall{Collection: collection, ID: id})
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, collection, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(m.docs[collection], id)
	order := m.order[collection][:0]
	for _, existing := range m.order[collection] {
		if existing != id {
			order = append(order, existing)
		}
	}
	m.order[collection] = order
	return nil
}

// copyFields makes a shallow copy; nested values in tests are immutable literals.
func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
