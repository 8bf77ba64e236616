// Package session provides the server-side session store behind the cookie
// auth. The rest of the application never touches session mechanics; handlers
// only see the resolved user identity.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a token resolves to no live session.
var ErrNotFound = errors.New("session not found")

// Session is one logged-in browser. Token is the opaque value carried by the
// session cookie.
type Session struct {
	Token     string
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions. Implementations must treat expired sessions as
// absent from Get.
type Store interface {
	// Put saves or replaces a session keyed by its token.
	Put(ctx context.Context, s Session) error
	// Get resolves a token to a live session, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
