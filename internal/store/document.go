package store

import "context"

// Document is a stored JSON object and the id the store assigned to it.
// Data never contains the id.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentStore persists JSON-like documents grouped into named collections.
// Implementations must be safe for concurrent use. Every call is attempted once.
type DocumentStore interface {
	// Create stores fields as a new document and returns the assigned id.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)

	// List returns every document in the collection. An empty collection
	// yields an empty slice.
	List(ctx context.Context, collection string) ([]Document, error)

	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Update replaces the stored fields of an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, collection, id string) error
}
