package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// fallbackDummyHash is a well-formed bcrypt hash used when generating one at
// the configured cost fails.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserStore defines the user persistence operations the service needs.
// Satisfied by the users repository.
type UserStore interface {
	CreateUser(username, passwordHash string) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	UsernameExists(username string) (bool, error)
}

// Service handles account creation and credential verification.
type Service struct {
	store  UserStore
	config config.Auth

	// dummyHash is compared against when the username does not exist, so
	// both login failure modes cost one bcrypt verification. Generated at
	// the same cost as real account hashes.
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(store UserStore, cfg config.Auth) *Service {
	dummyHash, err := HashPassword("no-such-password", cfg.BcryptCost)
	if err != nil {
		dummyHash = fallbackDummyHash
	}

	return &Service{
		store:     store,
		config:    cfg,
		dummyHash: dummyHash,
	}
}

// Register validates the credentials and creates a new user with a hashed
// password. Validation happens before any write; a failed registration
// leaves no partial state behind.
func (s *Service) Register(username, password string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	taken, err := s.store.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. Unknown usernames
// and wrong passwords both yield ErrInvalidCredentials so callers cannot
// distinguish them.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		// Burn a comparison so the missing-user path is not obviously faster.
		_ = CheckPassword(password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID, for session restoration.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
