package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
)

// DocumentStore implements store.DocumentStore on a PostgreSQL JSONB table.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDocumentStore creates a PostgreSQL DocumentStore.
// It accepts a database connection or transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// Create implements store.DocumentStore.Create.
// A new UUID is assigned as the document id.
func (s *DocumentStore) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := encodeFields(fields)
	if err != nil {
		log.Warn("document could not be encoded",
			slog.String("collection", collection),
			slog.String("error", err.Error()))
		return "", store.NewStoreError(collection, "create", "failed to encode document", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
	`
	if _, err := s.db.ExecContext(ctx, query, collection, id, data); err != nil {
		log.Error("failed to create document",
			slog.String("collection", collection),
			slog.String("error", err.Error()))
		return "", store.NewStoreError(collection, "create", "failed to insert document", MapError(err))
	}

	log.Debug("document created",
		slog.String("collection", collection),
		slog.String("id", id))
	return id, nil
}

// listQuery orders by seq, which is assigned per insert. created_at is the
// transaction start time and ties for documents created in one transaction.
const listQuery = `
	SELECT id, data::text
	FROM documents
	WHERE collection = $1
	ORDER BY seq
`

// List implements store.DocumentStore.List. Documents are returned in creation order.
// Documents are returned in creation order.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listQuery, collection)
	if err != nil {
		log.Error("failed to list documents",
			slog.String("collection", collection),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(collection, "list", "failed to query documents", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	docs := make([]store.Document, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, store.NewStoreError(collection, "list", "failed to scan document", err)
		}
		data, err := decodeFields(raw)
		if err != nil {
			return nil, store.NewStoreError(collection, "list", "failed to decode document "+id, err)
		}
		docs = append(docs, store.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(collection, "list", "failed to iterate documents", MapError(err))
	}

	log.Debug("documents listed",
		slog.String("collection", collection),
		slog.Int("count", len(docs)))
	return docs, nil
}

// Get implements store.DocumentStore.Get.
// Returns an error wrapping store.ErrNotFound if the document does not exist.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT data::text
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	var raw string
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found",
				slog.String("collection", collection),
				slog.String("id", id))
			return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
		}
		log.Error("failed to get document",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(collection, "get", "failed to query document", MapError(err))
	}

	data, err := decodeFields(raw)
	if err != nil {
		return nil, store.NewStoreError(collection, "get", "failed to decode document", err)
	}

	return &store.Document{ID: id, Data: data}, nil
}

// Update implements store.DocumentStore.Update.
// The stored fields are replaced as a whole.
func (s *DocumentStore) Update(
	ctx context.Context,
	collection, id string,
	fields map[string]any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := encodeFields(fields)
	if err != nil {
		return store.NewStoreError(collection, "update", "failed to encode document", err)
	}

	query := `
		UPDATE documents
		SET data = $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query, collection, id, data)
	if err != nil {
		log.Error("failed to update document",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError(collection, "update", "failed to update document", MapError(err))
	}

	if err := CheckRowsAffected(result, collection); err != nil {
		log.Debug("document to update not found",
			slog.String("collection", collection),
			slog.String("id", id))
		return err
	}

	log.Debug("document updated",
		slog.String("collection", collection),
		slog.String("id", id))
	return nil
}

// Delete implements store.DocumentStore.Delete.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("collection", collection),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError(collection, "delete", "failed to delete document", MapError(err))
	}

	if err := CheckRowsAffected(result, collection); err != nil {
		return err
	}

	log.Debug("document deleted",
		slog.String("collection", collection),
		slog.String("id", id))
	return nil
}

// encodeFields serializes fields as a JSON object, dropping any "id" key
// since the id is stored in its own column.
func encodeFields(fields map[string]any) (string, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		clean[k] = v
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return string(data), nil
}

// decodeFields parses a stored JSON object. Numbers are kept as json.Number
// so integers survive without float rounding.
func decodeFields(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode document data: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
