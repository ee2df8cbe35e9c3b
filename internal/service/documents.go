package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/phrazzld/library-api/internal/store"
)

// Collection names used by the entity services.
const (
	UsersCollection   = "users"
	BooksCollection   = "books"
	BorrowsCollection = "borrows"
)

// documents maps one DocumentStore collection to entity type T.
// T must encode to a JSON object whose "id" key holds the document id.
type documents[T any] struct {
	store      store.DocumentStore
	collection string
}

func (d documents[T]) list(ctx context.Context) ([]T, error) {
	docs, err := d.store.List(ctx, d.collection)
	if err != nil {
		return nil, err
	}

	entities := make([]T, 0, len(docs))
	for _, doc := range docs {
		entity, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

// get returns nil, nil when the document does not exist.
func (d documents[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := d.store.Get(ctx, d.collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromDocument[T](*doc)
}

// create stores entity without its id and returns a freshly decoded copy
// carrying the assigned id.
func (d documents[T]) create(ctx context.Context, entity T) (*T, error) {
	fields, err := toFields(entity)
	if err != nil {
		return nil, err
	}
	id, err := d.store.Create(ctx, d.collection, fields)
	if err != nil {
		return nil, err
	}
	return fromDocument[T](store.Document{ID: id, Data: fields})
}

func (d documents[T]) replace(ctx context.Context, id string, entity T) error {
	fields, err := toFields(entity)
	if err != nil {
		return err
	}
	return d.store.Update(ctx, d.collection, id, fields)
}

func (d documents[T]) delete(ctx context.Context, id string) error {
	return d.store.Delete(ctx, d.collection, id)
}

// toFields encodes entity as document fields. The id is never stored.
func toFields(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	delete(fields, "id")
	return fields, nil
}

// fromDocument decodes doc into a new T whose id is the document id.
// Unknown stored keys are ignored.
func fromDocument[T any](doc store.Document) (*T, error) {
	fields := make(map[string]any, len(doc.Data)+1)
	maps.Copy(fields, doc.Data)
	fields["id"] = doc.ID

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode document %s: %w", doc.ID, err)
	}
	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
	}
	return &entity, nil
}
