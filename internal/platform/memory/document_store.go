package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
)

type entry struct {
	data []byte
	seq  uint64
}

// DocumentStore is a concurrency-safe in-memory document store.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]entry
	seq         uint64
	logger      *slog.Logger
}

// NewDocumentStore creates an empty store. If logger is nil, a default logger will be used.
func NewDocumentStore(logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{
		collections: make(map[string]map[string]entry),
		logger:      logger.With(slog.String("component", "memory_document_store")),
	}
}

var _ store.DocumentStore = (*DocumentStore)(nil)

// Create implements store.DocumentStore.Create.
func (s *DocumentStore) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encode(fields)
	if err != nil {
		return "", store.NewStoreError(collection, "create", "failed to encode document", err)
	}

	id := uuid.NewString()

	s.mu.Lock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]entry)
		s.collections[collection] = docs
	}
	s.seq++
	docs[id] = entry{data: data, seq: s.seq}
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("document created",
		slog.String("collection", collection),
		slog.String("id", id))
	return id, nil
}

// List implements store.DocumentStore.List. Documents are returned in creation order.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type item struct {
		id string
		entry
	}

	s.mu.RLock()
	items := make([]item, 0, len(s.collections[collection]))
	for id, e := range s.collections[collection] {
		items = append(items, item{id: id, entry: e})
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	docs := make([]store.Document, 0, len(items))
	for _, it := range items {
		data, err := decode(it.data)
		if err != nil {
			return nil, store.NewStoreError(collection, "list", "failed to decode document "+it.id, err)
		}
		docs = append(docs, store.Document{ID: it.id, Data: data})
	}
	return docs, nil
}

// Get implements store.DocumentStore.Get.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.collections[collection][id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}

	data, err := decode(e.data)
	if err != nil {
		return nil, store.NewStoreError(collection, "get", "failed to decode document", err)
	}
	return &store.Document{ID: id, Data: data}, nil
}

// Update implements store.DocumentStore.Update.
func (s *DocumentStore) Update(
	ctx context.Context,
	collection, id string,
	fields map[string]any,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(fields)
	if err != nil {
		return store.NewStoreError(collection, "update", "failed to encode document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	e.data = data
	s.collections[collection][id] = e
	return nil
}

// Delete implements store.DocumentStore.Delete.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	delete(s.collections[collection], id)
	return nil
}

func encode(fields map[string]any) ([]byte, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	data, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return data, nil
}

func decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
