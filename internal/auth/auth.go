// Package auth is the credential store: signup and login over a store.UserStore.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Caller-facing messages
const (
	msgMissingFields      = "All fields are required"
	msgDuplicateUser      = "Username or email already exists"
	msgInvalidCredentials = "Invalid username or password"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// Session is what signup and login hand back to the client
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Service registers and authenticates users
type Service struct {
	users  store.UserStore
	tokens TokenIssuer
	cost   int // bcrypt cost
}

// NewService wires a Service with bcrypt.DefaultCost
func NewService(users store.UserStore, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Signup creates a user and returns a session for it
func (s *Service) Signup(ctx context.Context, username, email, password string) (*Session, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.ErrValidation, msgMissingFields)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewError(domain.ErrValidation, msgPasswordTooLong)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, domain.NewError(domain.ErrConflict, msgDuplicateUser)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.session(user)
}

// Login checks the password against the stored hash and returns a fresh session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewError(domain.ErrAuth, msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewError(domain.ErrAuth, msgInvalidCredentials)
	}
	return s.session(user)
}

func (s *Service) session(u *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, UserID: u.ID, Username: u.Username}, nil
}
