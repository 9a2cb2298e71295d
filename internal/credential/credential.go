package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/tasktracker/internal/database"
)

var (
	// ErrAuthFailure is returned for unknown usernames and wrong passwords alike.
	ErrAuthFailure = errors.New("invalid username or password")
	// ErrMissingUsername is returned when the username is empty.
	ErrMissingUsername = errors.New("username is required")
)

// Store registers users and checks their passwords.
type Store struct {
	db     database.DB
	hasher *PasswordHasher
}

// NewStore creates a credential store on top of db.
func NewStore(db database.DB, hasher *PasswordHasher) *Store {
	return &Store{
		db:     db,
		hasher: hasher,
	}
}

// Register creates a regular user and returns its id.
// The existence check is only a fast path, the store's unique index has the final word.
func (s *Store) Register(ctx context.Context, username, password string) (uint, error) {
	return s.create(ctx, username, password, false)
}

// RegisterAdmin creates a user flagged as admin.
func (s *Store) RegisterAdmin(ctx context.Context, username, password string) (uint, error) {
	return s.create(ctx, username, password, true)
}

func (s *Store) create(ctx context.Context, username, password string, isAdmin bool) (uint, error) {
	if username == "" {
		return 0, ErrMissingUsername
	}

	exists, err := s.db.UsernameExists(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return 0, database.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, username, hash, isAdmin)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return 0, database.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("registered user", "username", username, "id", user.ID, "admin", isAdmin)
	return user.ID, nil
}

// Authenticate returns the id of the user matching username and password.
func (s *Store) Authenticate(ctx context.Context, username, password string) (uint, error) {
	user, err := s.db.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.hasher.burn(password)
			return 0, ErrAuthFailure
		}
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.VerifyCredential(user.PasswordHash, password) {
		return 0, ErrAuthFailure
	}
	return user.ID, nil
}

// VerifyCredential compares a stored credential with a plaintext password in constant time.
func (s *Store) VerifyCredential(stored, password string) bool {
	return s.hasher.Verify(stored, password)
}
