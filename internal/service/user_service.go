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

// UserService provides library member operations.
type UserService interface {
	// GetAll returns every user. An empty store yields an empty slice.
	GetAll(ctx context.Context) ([]domain.User, error)

	// GetByID returns the user with the given id, or nil if there is none.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create stores a new user and returns it with its assigned id.
	// Any ID set on the input is ignored.
	Create(ctx context.Context, user domain.User) (*domain.User, error)

	// Update merges the present patch fields into the stored user.
	// Returns nil, nil if the user does not exist.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// Delete removes the user. Returns an error wrapping store.ErrUserNotFound
	// if the user does not exist.
	Delete(ctx context.Context, id string) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	docs   documents[domain.User]
	logger *slog.Logger
	tracer trace.Tracer
}

// NewUserService creates a new UserService backed by the users collection.
// It returns an error if docs is nil.
func NewUserService(docs store.DocumentStore, logger *slog.Logger) (UserService, error) {
	if docs == nil {
		return nil, domain.NewValidationError("docs", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		docs:   documents[domain.User]{store: docs, collection: UsersCollection},
		logger: logger.With(slog.String("component", "user_service")),
		tracer: otel.Tracer(TracerName),
	}, nil
}

func (s *userServiceImpl) log(ctx context.Context) *slog.Logger {
	return contextLogger(ctx, s.logger, "user_service")
}

// GetAll implements UserService.GetAll
func (s *userServiceImpl) GetAll(ctx context.Context) (users []domain.User, err error) {
	ctx, span := startSpan(ctx, s.tracer, UsersCollection, "list", "")
	defer func() { finishSpan(span, err) }()

	users, err = s.docs.list(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "list", err)
	}

	s.log(ctx).Debug("listed users", slog.Int("count", len(users)))
	return users, nil
}

// GetByID implements UserService.GetByID
func (s *userServiceImpl) GetByID(ctx context.Context, id string) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, s.tracer, UsersCollection, "get", id)
	defer func() { finishSpan(span, err) }()

	user, err = s.docs.get(ctx, id)
	if err != nil {
		s.log(ctx).Error("failed to retrieve user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, NewServiceError("user", "get", err)
	}
	if user == nil {
		s.log(ctx).Debug("user not found", slog.String("user_id", id))
	}
	return user, nil
}

// Create implements UserService.Create
func (s *userServiceImpl) Create(ctx context.Context, input domain.User) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, s.tracer, UsersCollection, "create", "")
	defer func() { finishSpan(span, err) }()

	input.ID = ""
	user, err = s.docs.create(ctx, input)
	if err != nil {
		s.log(ctx).Error("failed to create user", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "create", err)
	}

	s.log(ctx).Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// Update implements UserService.Update
// It reads the current user, overwrites the present patch fields and stores the
// complete merged document.
func (s *userServiceImpl) Update(
	ctx context.Context,
	id string,
	patch domain.UserPatch,
) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, s.tracer, UsersCollection, "update", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}

	merged := current.Apply(patch)
	if err = s.docs.replace(ctx, id, merged); err != nil {
		s.log(ctx).Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, NewServiceError("user", "update", err)
	}

	s.log(ctx).Info("user updated", slog.String("user_id", id))
	return &merged, nil
}

// Delete implements UserService.Delete
func (s *userServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, s.tracer, UsersCollection, "delete", id)
	defer func() { finishSpan(span, err) }()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return NewServiceError("user", "delete", store.ErrUserNotFound)
	}

	if err = s.docs.delete(ctx, id); err != nil {
		s.log(ctx).Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return NewServiceError("user", "delete", err)
	}

	s.log(ctx).Info("user deleted", slog.String("user_id", id))
	return nil
}
