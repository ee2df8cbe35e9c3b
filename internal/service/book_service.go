package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/redact"
	"github.com/phrazzld/library-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// BookService provides operations on the book catalog.
type BookService interface {
	// GetAll returns every book. An empty store yields an empty slice.
	GetAll(ctx context.Context) ([]domain.Book, error)

	// GetByID returns the book with the given id, or nil if there is none.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// Create stores a new book and returns it with its assigned id.
	// Any ID set on the input is ignored. Negative copy counts are rejected
	// with a domain.ErrValidation error.
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)

	// Update merges the present patch fields into the stored book.
	// Returns nil, nil if the book does not exist.
	Update(ctx context.Context, id string, patch domain.BookPatch) (*domain.Book, error)

	// Delete removes the book. Returns an error wrapping store.ErrBookNotFound
	// if the book does not exist.
	Delete(ctx context.Context, id string) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	docs   documents[domain.Book]
	logger *slog.Logger
	tracer trace.Tracer
}

// NewBookService creates a new BookService backed by the books collection.
// It returns an error if docs is nil.
func NewBookService(docs store.DocumentStore, logger *slog.Logger) (BookService, error) {
	if docs == nil {
		return nil, domain.NewValidationError("docs", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &bookServiceImpl{
		docs:   documents[domain.Book]{store: docs, collection: BooksCollection},
		logger: logger.With(slog.String("component", "book_service")),
		tracer: otel.Tracer(TracerName),
	}, nil
}

func (s *bookServiceImpl) log(ctx context.Context) *slog.Logger {
	return contextLogger(ctx, s.logger, "book_service")
}

// GetAll implements BookService.GetAll
func (s *bookServiceImpl) GetAll(ctx context.Context) (books []domain.Book, err error) {
	ctx, span := startSpan(ctx, s.tracer, BooksCollection, "list", "")
	defer func() { finishSpan(span, err) }()

	books, err = s.docs.list(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list books", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("book", "list", err)
	}

	s.log(ctx).Debug("listed books", slog.Int("count", len(books)))
	return books, nil
}

// GetByID implements BookService.GetByID
func (s *bookServiceImpl) GetByID(ctx context.Context, id string) (book *domain.Book, err error) {
	ctx, span := startSpan(ctx, s.tracer, BooksCollection, "get", id)
	defer func() { finishSpan(span, err) }()

	book, err = s.docs.get(ctx, id)
	if err != nil {
		s.log(ctx).Error("failed to retrieve book",
			slog.String("error", redact.Error(err)),
			slog.String("book_id", id))
		return nil, NewServiceError("book", "get", err)
	}
	if book == nil {
		s.log(ctx).Debug("book not found", slog.String("book_id", id))
	}
	return book, nil
}

// Create implements BookService.Create
func (s *bookServiceImpl) Create(ctx context.Context, input domain.Book) (book *domain.Book, err error) {
	ctx, span := startSpan(ctx, s.tracer, BooksCollection, "create", "")
	defer func() { finishSpan(span, err) }()

	input.ID = ""
	if err = input.Validate(); err != nil {
		s.log(ctx).Debug("rejected invalid book", slog.String("error", err.Error()))
		return nil, NewServiceError("book", "create", err)
	}

	book, err = s.docs.create(ctx, input)
	if err != nil {
		s.log(ctx).Error("failed to create book", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("book", "create", err)
	}

	s.log(ctx).Info("book created", slog.String("book_id", book.ID))
	return book, nil
}

// Update implements BookService.Update
// It reads the current book, overwrites the present patch fields and stores the
// complete merged document.
func (s *bookServiceImpl) Update(
	ctx context.Context,
	id string,
	patch domain.BookPatch,
) (book *domain.Book, err error) {
	ctx, span := startSpan(ctx, s.tracer, BooksCollection, "update", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	merged := current.Apply(patch)
	if err = merged.Validate(); err != nil {
		s.log(ctx).Debug("rejected invalid book update",
			slog.String("error", err.Error()),
			slog.String("book_id", id))
		return nil, NewServiceError("book", "update", err)
	}

	if err = s.docs.replace(ctx, id, merged); err != nil {
		s.log(ctx).Error("failed to update book",
			slog.String("error", redact.Error(err)),
			slog.String("book_id", id))
		return nil, NewServiceError("book", "update", err)
	}

	s.log(ctx).Info("book updated", slog.String("book_id", id))
	return &merged, nil
}

// Delete implements BookService.Delete
func (s *bookServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, s.tracer, BooksCollection, "delete", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return NewServiceError("book", "delete", store.ErrBookNotFound)
	}

	if err = s.docs.delete(ctx, id); err != nil {
		s.log(ctx).Error("failed to delete book",
			slog.String("error", redact.Error(err)),
			slog.String("book_id", id))
		return NewServiceError("book", "delete", err)
	}

	s.log(ctx).Info("book deleted", slog.String("book_id", id))
	return nil
}
