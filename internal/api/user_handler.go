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

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Routes mounts the /users routes on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.ValidateRequest(validation.Users.Create)).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(middleware.ValidateRequest(validation.Users.Update)).Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /users requests
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	user, err := h.users.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusCreated, user, "User Created")
}

// List handles GET /users requests
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve users")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, users, "Users Retrieved")
}

// Get handles GET /users/{id} requests
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user")
		return
	}
	if user == nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("user not found", slog.String("user_id", id))
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "User not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, user, "User Retrieved")
}

// Update handles PUT /users/{id} requests
// Only the fields present in the body are changed.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := pathID(r)

	var patch domain.UserPatch
	if !decodeRequest(w, r, &patch, log) {
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}
	if user == nil {
		log.Debug("user not found for update", slog.String("user_id", id))
		shared.RespondWithEnvelope(w, r, http.StatusNotFound, nil, "User not found")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, user, "User Updated")
}

// Delete handles DELETE /users/{id} requests
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), pathID(r)); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, nil, "User Deleted")
}
