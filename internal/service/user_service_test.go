package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/mocks"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, docs store.DocumentStore) service.UserService {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	svc, err := service.NewUserService(docs, log)
	require.NoError(t, err)
	return svc
}

func TestNewUserService_NilStore(t *testing.T) {
	svc, err := service.NewUserService(nil, nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Create(t *testing.T) {
	docs := mocks.NewMockDocumentStore()
	svc := newUserService(t, docs)

	user, err := svc.Create(context.Background(), domain.User{
		ID:    "client-chosen",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "client-chosen", user.ID, "the store assigns ids")
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)

	calls := docs.Calls("Create")
	require.Len(t, calls, 1)
	assert.Equal(t, service.UsersCollection, calls[0].Collection)
	assert.Equal(t, map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"}, calls[0].Fields)
}

func TestUserService_Create_StoreError(t *testing.T) {
	docs := mocks.NewMockDocumentStore()
	docs.CreateFn = func(ctx context.Context, collection string, fields map[string]any) (string, error) {
		return "", errors.New("connection refused")
	}
	svc := newUserService(t, docs)

	user, err := svc.Create(context.Background(), domain.User{Name: "Ada", Email: "ada@example.com"})

	assert.Nil(t, user)
	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "create", serviceErr.Op)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserService_GetAll(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		svc := newUserService(t, mocks.NewMockDocumentStore())

		users, err := svc.GetAll(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("documents carry their ids", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.Seed(service.UsersCollection, "u1", map[string]any{"name": "Ada", "email": "ada@example.com"})
		docs.Seed(service.UsersCollection, "u2", map[string]any{"name": "Grace", "email": "grace@example.com"})
		svc := newUserService(t, docs)

		users, err := svc.GetAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []domain.User{
			{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			{ID: "u2", Name: "Grace", Email: "grace@example.com"},
		}, users)
	})

	t.Run("store error", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.ListFn = func(ctx context.Context, collection string) ([]store.Document, error) {
			return nil, errors.New("timeout")
		}
		svc := newUserService(t, docs)

		users, err := svc.GetAll(context.Background())

		assert.Nil(t, users)
		assert.Error(t, err)
	})
}

func TestUserService_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.Seed(service.UsersCollection, "u1", map[string]any{"name": "Ada", "email": "ada@example.com"})
		svc := newUserService(t, docs)

		user, err := svc.GetByID(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}, user)
	})

	t.Run("absent", func(t *testing.T) {
		svc := newUserService(t, mocks.NewMockDocumentStore())

		user, err := svc.GetByID(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("wrapped not found is absent", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.GetFn = func(ctx context.Context, collection, id string) (*store.Document, error) {
			return nil, store.NewStoreError(collection, "get", "no rows", store.ErrNotFound)
		}
		svc := newUserService(t, docs)

		user, err := svc.GetByID(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("store error", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.GetFn = func(ctx context.Context, collection, id string) (*store.Document, error) {
			return nil, errors.New("connection reset")
		}
		svc := newUserService(t, docs)

		user, err := svc.GetByID(context.Background(), "u1")

		assert.Nil(t, user)
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("merges present fields", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.Seed(service.UsersCollection, "u1", map[string]any{"name": "Ada", "email": "ada@example.com"})
		svc := newUserService(t, docs)

		user, err := svc.Update(context.Background(), "u1", domain.UserPatch{
			Email: domain.Some("countess@example.com"),
		})

		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: "u1", Name: "Ada", Email: "countess@example.com"}, user)

		calls := docs.Calls("Update")
		require.Len(t, calls, 1)
		assert.Equal(t, "u1", calls[0].ID)
		assert.Equal(t, map[string]any{"name": "Ada", "email": "countess@example.com"}, calls[0].Fields,
			"the full merged document is stored")
	})

	t.Run("absent", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		svc := newUserService(t, docs)

		user, err := svc.Update(context.Background(), "missing", domain.UserPatch{Name: domain.Some("Ada")})

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.Empty(t, docs.Calls("Update"), "store must not be touched")
	})

	t.Run("store error", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.Seed(service.UsersCollection, "u1", map[string]any{"name": "Ada", "email": "ada@example.com"})
		docs.UpdateFn = func(ctx context.Context, collection, id string, fields map[string]any) error {
			return store.ErrInvalidEntity
		}
		svc := newUserService(t, docs)

		user, err := svc.Update(context.Background(), "u1", domain.UserPatch{Name: domain.Some("Ada")})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		docs.Seed(service.UsersCollection, "u1", map[string]any{"name": "Ada", "email": "ada@example.com"})
		svc := newUserService(t, docs)

		require.NoError(t, svc.Delete(context.Background(), "u1"))

		calls := docs.Calls("Delete")
		require.Len(t, calls, 1)
		assert.Equal(t, "u1", calls[0].ID)

		user, err := svc.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("absent never reaches the store", func(t *testing.T) {
		docs := mocks.NewMockDocumentStore()
		svc := newUserService(t, docs)

		err := svc.Delete(context.Background(), "missing")

		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Empty(t, docs.Calls("Delete"))
	})
}
