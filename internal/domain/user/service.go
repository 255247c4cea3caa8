package user

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/techmart/storefront/internal/domain/auth"
)

// ErrInvalidCredentials is returned on login when the email is unknown or the
// password does not match. Both cases map to the same error so responses do
// not leak which emails are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterRequest holds the fields accepted at registration.
type RegisterRequest struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// Service implements registration and login on top of the user repository.
type Service struct {
	users  Repository
	tokens *auth.Tokens
}

// NewService creates a user Service.
func NewService(users Repository, tokens *auth.Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account with role "user". The password is stored
// only as a bcrypt hash. Duplicate email or username fails with
// ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	exists, err := s.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, errors.Wrap(err, "check existing user")
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         RoleUser,
	}

	id, err := s.users.Insert(ctx, u)
	if err != nil {
		return nil, errors.Wrap(err, "insert user")
	}
	u.ID = id

	return u, nil
}

// Login verifies the credentials and returns the user together with a signed
// bearer token carrying its id, email, and role.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", errors.Wrap(err, "get user")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue token")
	}

	return u, token, nil
}
