package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/auth"
	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
	mock_notify "polychat/backend/internal/notify/mocks"
	"polychat/backend/internal/repository"
	mock_repo "polychat/backend/internal/repository/mocks"
	"polychat/backend/internal/service"
)

func setupAuthService(t *testing.T) (*service.AuthService, *mock_repo.MockUserRepository, *mock_notify.MockNotifier) {
	users := mock_repo.NewMockUserRepository(t)
	notifier := mock_notify.NewMockNotifier(t)
	return service.NewAuthService(users, notifier, "admin"), users, notifier
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		authService, users, notifier := setupAuthService(t)
		users.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.ID != "" && auth.CheckPassword(u.PasswordHash, "secret1")
		})).Return(nil).Once()
		notifier.On("NotifyNewUser", ctx, "alice").Return().Once()

		user, err := authService.Register(ctx, service.Credentials{Username: "  alice ", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("CreateUser", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := authService.Register(ctx, service.Credentials{Username: "alice", Password: "secret1"})

		assert.ErrorIs(t, err, app_errors.ErrConflict)
	})

	t.Run("Blank username", func(t *testing.T) {
		authService, _, _ := setupAuthService(t)
		_, err := authService.Register(ctx, service.Credentials{Username: "   ", Password: "secret1"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Admin username is reserved", func(t *testing.T) {
		// No repository or notifier call is expected.
		authService, _, _ := setupAuthService(t)

		_, err := authService.Register(ctx, service.Credentials{Username: " admin ", Password: "attacker1"})

		assert.ErrorIs(t, err, app_errors.ErrConflict)
		assert.ErrorContains(t, err, "reserved")
	})

	t.Run("Password longer than 72 bytes", func(t *testing.T) {
		authService, _, _ := setupAuthService(t)
		// 40 runes, 80 bytes.
		password := strings.Repeat("é", 40)

		_, err := authService.Register(ctx, service.Credentials{Username: "alice", Password: password})

		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.ErrorContains(t, err, "at most 72 bytes")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &model.User{ID: "u1", Username: "alice", PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "alice").Return(stored, nil).Once()

		user, err := authService.Login(ctx, service.Credentials{Username: "alice", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "alice").Return(stored, nil).Once()

		_, err := authService.Login(ctx, service.Credentials{Username: "alice", Password: "wrong!"})

		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
	})

	t.Run("Unknown user gives the same error", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "bob").Return(nil, repository.ErrNotFound).Once()

		_, err := authService.Login(ctx, service.Credentials{Username: "bob", Password: "secret1"})

		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
		assert.ErrorContains(t, err, "invalid username or password")
	})

	t.Run("Database failure", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "alice").Return(nil, errors.New("db down")).Once()

		_, err := authService.Login(ctx, service.Credentials{Username: "alice", Password: "secret1"})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, app_errors.ErrUnauthorized)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("No password configured", func(t *testing.T) {
		authService, _, _ := setupAuthService(t)
		assert.NoError(t, authService.EnsureAdmin(ctx, "admin", ""))
	})

	t.Run("Already exists", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "admin").Return(&model.User{ID: "a"}, nil).Once()
		assert.NoError(t, authService.EnsureAdmin(ctx, "admin", "changeme"))
	})

	t.Run("Password the login endpoint would refuse", func(t *testing.T) {
		authService, _, _ := setupAuthService(t)

		err := authService.EnsureAdmin(ctx, "admin", "admin")

		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.ErrorContains(t, err, "invalid admin credentials")
	})

	t.Run("Username too short", func(t *testing.T) {
		authService, _, _ := setupAuthService(t)
		assert.ErrorIs(t, authService.EnsureAdmin(ctx, "ad", "changeme"), app_errors.ErrValidation)
	})

	t.Run("Created without notification", func(t *testing.T) {
		authService, users, _ := setupAuthService(t)
		users.On("GetUserByUsername", ctx, "admin").Return(nil, repository.ErrNotFound).Once()
		users.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool { return u.Username == "admin" })).Return(nil).Once()
		assert.NoError(t, authService.EnsureAdmin(ctx, "admin", "changeme"))
	})
}
