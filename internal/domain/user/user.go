package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// Roles a user account can hold. Role gates the admin mutation endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Sentinel errors for identity operations.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned on registration when the email or
	// username is already taken.
	ErrAlreadyExists = errors.New("user already exists")
)

// User is an account record. PasswordHash holds only the bcrypt hash; the
// plaintext password never leaves the registration/login request.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Repository defines identity persistence operations.
type Repository interface {
	// Insert stores a new user and returns its assigned ID. It must fail
	// with ErrAlreadyExists when the email or username is taken.
	Insert(ctx context.Context, u *User) (string, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmailOrUsername reports whether any user holds the given
	// email or username.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}
