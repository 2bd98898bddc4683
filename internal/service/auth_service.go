package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"polychat/backend/internal/auth"
	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/model"
	"polychat/backend/internal/notify"
	"polychat/backend/internal/repository"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 6
	// bcrypt refuses longer input with ErrPasswordTooLong.
	maxPasswordBytes = 72
)

type AuthService struct {
	users         repository.UserRepository
	notifier      notify.Notifier
	adminUsername string
}

// NewAuthService creates the service. adminUsername is reserved: it can only
// be created through EnsureAdmin.
func NewAuthService(users repository.UserRepository, notifier notify.Notifier, adminUsername string) *AuthService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &AuthService{users: users, notifier: notifier, adminUsername: adminUsername}
}

// Register creates an account. The operators are notified of every new user.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (*model.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", app_errors.ErrValidation)
	}
	if s.adminUsername != "" && username == s.adminUsername {
		return nil, fmt.Errorf("%w: username '%s' is reserved", app_errors.ErrConflict, username)
	}
	if err := checkCredentials(username, creds.Password); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, username, creds.Password)
	if err != nil {
		return nil, err
	}
	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	s.notifier.NotifyNewUser(ctx, user.Username)
	return user, nil
}

// Login checks the credentials. Unknown users and wrong passwords produce the
// same error.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", app_errors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		return nil, fmt.Errorf("%w: invalid username or password", app_errors.ErrUnauthorized)
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", app_errors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return user, nil
}

// EnsureAdmin creates the administrator account on first start. It does
// nothing when no password is configured or the account already exists.
// Credentials that the login endpoint would refuse are an error.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if err := checkCredentials(username, password); err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("could not look up admin user: %w", err)
	}

	user, err := s.createUser(ctx, username, password)
	if err != nil {
		if errors.Is(err, app_errors.ErrConflict) {
			return nil
		}
		return err
	}
	slog.Info("Admin user created", "username", user.Username)
	return nil
}

func (s *AuthService) createUser(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: could not hash password: %s", app_errors.ErrValidation, err.Error())
	}
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username '%s' is already taken", app_errors.ErrConflict, username)
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}

// checkCredentials applies the length rules of the register and login
// endpoints, with the password cap counted in bytes.
func checkCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("%w: username must be between %d and %d characters", app_errors.ErrValidation, minUsernameLength, maxUsernameLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", app_errors.ErrValidation, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", app_errors.ErrValidation, maxPasswordBytes)
	}
	return nil
}
