package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/redact"
	"github.com/phrazzld/library-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// BorrowService provides operations on borrow records.
//
// Records link a user id to a book id. The service does not check that either
// exists and does not change a book's available copies.
type BorrowService interface {
	GetAll(ctx context.Context) ([]domain.BorrowRecord, error)

	// GetByID returns the record with the given id, or nil if there is none.
	GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error)

	// Create stores a new record. An empty BorrowedAt defaults to the current
	// UTC time and an empty Status to "borrowed".
	Create(ctx context.Context, record domain.BorrowRecord) (*domain.BorrowRecord, error)

	// Update merges the present patch fields into the stored record.
	// Returns nil, nil if the record does not exist.
	Update(ctx context.Context, id string, patch domain.BorrowPatch) (*domain.BorrowRecord, error)

	// Delete removes the record. Returns an error wrapping
	// store.ErrBorrowNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error
}

type borrowServiceImpl struct {
	docs   documents[domain.BorrowRecord]
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewBorrowService creates a new BorrowService backed by the borrows collection.
func NewBorrowService(docs store.DocumentStore, logger *slog.Logger) (BorrowService, error) {
	if docs == nil {
		return nil, domain.NewValidationError("docs", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &borrowServiceImpl{
		docs:   documents[domain.BorrowRecord]{store: docs, collection: BorrowsCollection},
		logger: logger.With(slog.String("component", "borrow_service")),
		tracer: otel.Tracer(TracerName),
		now:    time.Now,
	}, nil
}

func (s *borrowServiceImpl) log(ctx context.Context) *slog.Logger {
	return contextLogger(ctx, s.logger, "borrow_service")
}

func (s *borrowServiceImpl) GetAll(ctx context.Context) (records []domain.BorrowRecord, err error) {
	ctx, span := startSpan(ctx, s.tracer, BorrowsCollection, "list", "")
	defer func() { finishSpan(span, err) }()

	records, err = s.docs.list(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list borrow records", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("borrow", "list", err)
	}
	return records, nil
}

func (s *borrowServiceImpl) GetByID(ctx context.Context, id string) (record *domain.BorrowRecord, err error) {
	ctx, span := startSpan(ctx, s.tracer, BorrowsCollection, "get", id)
	defer func() { finishSpan(span, err) }()

	record, err = s.docs.get(ctx, id)
	if err != nil {
		s.log(ctx).Error("failed to retrieve borrow record",
			slog.String("error", redact.Error(err)),
			slog.String("borrow_id", id))
		return nil, NewServiceError("borrow", "get", err)
	}
	return record, nil
}

func (s *borrowServiceImpl) Create(
	ctx context.Context,
	input domain.BorrowRecord,
) (record *domain.BorrowRecord, err error) {
	ctx, span := startSpan(ctx, s.tracer, BorrowsCollection, "create", "")
	defer func() { finishSpan(span, err) }()

	input.ID = ""
	if input.BorrowedAt == "" {
		input.BorrowedAt = s.now().UTC().Format(time.RFC3339)
	}
	if input.Status == "" {
		input.Status = domain.BorrowStatusBorrowed
	}
	if err = input.Validate(); err != nil {
		return nil, NewServiceError("borrow", "create", err)
	}

	record, err = s.docs.create(ctx, input)
	if err != nil {
		s.log(ctx).Error("failed to create borrow record",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", input.UserID),
			slog.String("book_id", input.BookID))
		return nil, NewServiceError("borrow", "create", err)
	}

	s.log(ctx).Info("borrow record created",
		slog.String("borrow_id", record.ID),
		slog.String("user_id", record.UserID),
		slog.String("book_id", record.BookID))
	return record, nil
}

// Update re-reads the record and stores the full merged document, so fields
// absent from the patch keep their stored values.
func (s *borrowServiceImpl) Update(
	ctx context.Context,
	id string,
	patch domain.BorrowPatch,
) (record *domain.BorrowRecord, err error) {
	ctx, span := startSpan(ctx, s.tracer, BorrowsCollection, "update", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	merged := current.Apply(patch)
	if err = merged.Validate(); err != nil {
		return nil, NewServiceError("borrow", "update", err)
	}
	if err = s.docs.replace(ctx, id, merged); err != nil {
		s.log(ctx).Error("failed to update borrow record",
			slog.String("error", redact.Error(err)),
			slog.String("borrow_id", id))
		return nil, NewServiceError("borrow", "update", err)
	}

	s.log(ctx).Info("borrow record updated",
		slog.String("borrow_id", id),
		slog.String("status", string(merged.Status)))
	return &merged, nil
}

func (s *borrowServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, s.tracer, BorrowsCollection, "delete", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		s.log(ctx).Debug("attempted to delete non-existent borrow record", slog.String("borrow_id", id))
		return NewServiceError("borrow", "delete", store.ErrBorrowNotFound)
	}

	if err = s.docs.delete(ctx, id); err != nil {
		s.log(ctx).Error("failed to delete borrow record",
			slog.String("error", redact.Error(err)),
			slog.String("borrow_id", id))
		return NewServiceError("borrow", "delete", err)
	}

	s.log(ctx).Info("borrow record deleted", slog.String("borrow_id", id))
	return nil
}
