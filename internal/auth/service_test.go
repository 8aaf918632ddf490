package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(users.NewRepository(db), config.Auth{BcryptCost: 4})
}

func TestService_Register(t *testing.T) {
	svc := setupTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "alice",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "missing username",
			username: "",
			password: "password12345",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "missing password",
			username: "bob",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "password too short",
			username: "bob",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "username too short",
			username: "ab",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "username with invalid characters",
			username: "bad user!",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(tt.username, tt.password)

			if tt.wantErr != nil {
				if err == nil {
					t.Errorf("Register() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Register() unexpected error = %v", err)
				return
			}
			if user == nil {
				t.Error("Register() returned nil user")
				return
			}
			if user.Username != tt.username {
				t.Errorf("user.Username = %v, want %v", user.Username, tt.username)
			}
			if user.PasswordHash == "" {
				t.Error("user.PasswordHash is empty")
			}
			if user.PasswordHash == tt.password {
				t.Error("user.PasswordHash stores the plaintext password")
			}
		})
	}
}

func TestService_RegisterDuplicateUsername(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.Register("alice", "password12345"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register("alice", "differentpassword")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() error = %v, want %v", err, ErrUserExists)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register("alice", "password12345")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			username: "alice",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "mallory",
			password: "password12345",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty credentials",
			username: "",
			password: "",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Authenticate() unexpected error = %v", err)
				return
			}
			if user.ID != created.ID {
				t.Errorf("user.ID = %v, want %v", user.ID, created.ID)
			}
		})
	}
}

func TestService_GetUserByID(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register("alice", "password12345")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user.Username = %v, want alice", user.Username)
	}

	_, err = svc.GetUserByID(9999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID(9999) error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestNewService_DummyHashUsesConfiguredCost(t *testing.T) {
	// The hash burned on unknown usernames must cost the same as real
	// account hashes, or the two failure paths differ in timing.
	for _, cost := range []int{bcrypt.MinCost, 10} {
		svc := NewService(nil, config.Auth{BcryptCost: cost})

		got, err := bcrypt.Cost([]byte(svc.dummyHash))
		if err != nil {
			t.Fatalf("Cost() error = %v", err)
		}
		if got != cost {
			t.Errorf("dummy hash cost = %d, want %d", got, cost)
		}
	}
}
