package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/library-api/internal/api/middleware"
	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/validation"
)

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	books  service.BookService
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(books service.BookService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BookHandler")
	}

	return &BookHandler{
		books:  books,
		logger: logger.With(slog.String("component", "book_handler")),
	}
}

// Routes mounts the /books routes on r.
func (h *BookHandler) Routes(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.With(middleware.ValidateRequest(validation.Books.Create)).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(middleware.ValidateRequest(validation.Books.Update)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /books requests
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateBookRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	book, err := h.books.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create book")
		return
	}

	log.Debug("book created", slog.String("book_id", book.ID))
	shared.RespondWithEnvelope(w, r, http.StatusCreated, book, "Book Created")
}

// List handles GET /books requests
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.GetAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve books")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, books, "Books Retrieved")
}

// Get handles GET /books/{id} requests
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), pathID(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve book")
		return
	}
	if book == nil {
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "Book not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, book, "Book Retrieved")
}

// Update handles PUT /books/{id} requests
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var patch domain.BookPatch
	if !decodeRequest(w, r, &patch, log) {
		return
	}

	book, err := h.books.Update(r.Context(), pathID(r), patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update book")
		return
	}
	if book == nil {
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "Book not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, book, "Book Updated")
}

// Delete handles DELETE /books/{id} requests
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.books.Delete(r.Context(), pathID(r)); err != nil {
		HandleAPIError(w, r, err, "Failed to delete book")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, nil, "Book Deleted")
}
