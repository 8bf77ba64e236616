package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetdocs/internal/config"
	"fleetdocs/internal/model"
	"fleetdocs/internal/session"
)

// AuthService handles the login/logout lifecycle for the single configured
// operator account. Nothing outside this service knows how credentials are
// verified or how session tokens are minted.
type AuthService interface {
	// Login verifies the credentials and creates a new session.
	Login(ctx context.Context, username, password string) (*session.Session, error)

	// Logout destroys the session for the given token.
	Logout(ctx context.Context, token string) error

	// Resolve maps a session token to the authenticated user, or
	// ErrUnauthorized when there is no live session.
	Resolve(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	store session.Store
	auth  config.AuthConfig
	ttl   time.Duration
	now   func() time.Time
}

// NewAuthService constructs an AuthService with the configured credential and
// session TTL.
func NewAuthService(store session.Store, auth config.AuthConfig, sess config.SessionConfig) AuthService {
	return &authService{
		store: store,
		auth:  auth,
		ttl:   time.Duration(sess.TTLHours) * time.Hour,
		now:   time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if s.auth.Username == "" || s.auth.PasswordHash == "" {
		// No credential configured means nobody can log in.
		return nil, ErrInvalidCredentials
	}
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.auth.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.auth.PasswordHash), []byte(password))
	if !userMatch || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	sess := session.Session{
		Token:     uuid.New().String(),
		UserID:    s.auth.Username,
		Username:  s.auth.Username,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

func (s *authService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &model.User{ID: sess.UserID, Username: sess.Username}, nil
}
