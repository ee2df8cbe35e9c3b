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

// BorrowHandler handles borrow record HTTP requests
type BorrowHandler struct {
	borrows service.BorrowService
	logger  *slog.Logger
}

// NewBorrowHandler creates a new BorrowHandler
func NewBorrowHandler(borrows service.BorrowService, logger *slog.Logger) *BorrowHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BorrowHandler")
	}

	return &BorrowHandler{
		borrows: borrows,
		logger:  logger.With(slog.String("component", "borrow_handler")),
	}
}

// Routes mounts the /borrows routes on r.
func (h *BorrowHandler) Routes(r chi.Router) {
	r.Route("/borrows", func(r chi.Router) {
		r.With(middleware.ValidateRequest(validation.Borrows.Create)).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(middleware.ValidateRequest(validation.Borrows.Update)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /borrows requests
// A missing borrowedAt defaults to now and the record starts as "borrowed".
func (h *BorrowHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateBorrowRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	record, err := h.borrows.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create borrow record")
		return
	}

	log.Debug("borrow record created",
		slog.String("borrow_id", record.ID),
		slog.String("user_id", record.UserID),
		slog.String("book_id", record.BookID))
	shared.RespondWithEnvelope(w, r, http.StatusCreated, record, "Borrow record created")
}

// List handles GET /borrows requests
func (h *BorrowHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.borrows.GetAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve borrow records")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, records, "Borrow records retrieved")
}

// Get handles GET /borrows/{id} requests
func (h *BorrowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	record, err := h.borrows.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve borrow record")
		return
	}
	if record == nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("borrow record not found", slog.String("borrow_id", id))
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "Borrow record not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, record, "Borrow record retrieved")
}

// Update handles PUT /borrows/{id} requests
// Returning a book is an update with status "returned" and a returnedAt
// timestamp. Fields absent from the body keep their stored values.
func (h *BorrowHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := pathID(r)

	var patch domain.BorrowPatch
	if !decodeRequest(w, r, &patch, log) {
		return
	}

	record, err := h.borrows.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update borrow record")
		return
	}
	if record == nil {
		log.Debug("borrow record not found for update", slog.String("borrow_id", id))
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "Borrow record not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, record, "Borrow record updated")
}

// Delete handles DELETE /borrows/{id} requests
func (h *BorrowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.borrows.Delete(r.Context(), pathID(r)); err != nil {
		HandleAPIError(w, r, err, "Failed to delete borrow record")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, nil, "Borrow record deleted")
}
