// Package session keeps the project form state of a browser or terminal
// session.
//
// A [Session] pairs a UUID with a [project.Config]. Sessions live in a
// [Store]; [CacheStore] persists them as JSON in any [cache.Cache], so the
// backend follows the cache that is configured:
//   - memory: single `phpgen serve` process (default)
//   - redis: several server instances behind a load balancer
//   - file: `phpgen tui`, which resumes the last form between runs
//
// Sessions expire after a sliding TTL; every save pushes the expiry out.
// An expired or unknown session is reported as SESSION_NOT_FOUND and the
// caller starts over with the form defaults.
//
// # Usage
//
//	store := session.NewCacheStore(cache.NewMemoryCache(), nil, session.DefaultTTL)
//
//	sess, err := store.Load(ctx, cookieValue) // new session if missing
//	if err != nil {
//	    return err
//	}
//	sess.Config.SetFramework("symfony")
//	err = store.Save(ctx, sess)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/phpgen/pkg/project"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Session is the form state of one user.
type Session struct {
	ID        string         `json:"id"`
	Config    project.Config `json:"config"`
	Flash     string         `json:"flash,omitempty"` // one-shot notice shown on the next page view
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// now is replaced in tests.
var now = time.Now

// New creates a session with a fresh ID and the default form.
func New(ttl time.Duration) *Session {
	t := now()
	return &Session{
		ID:        uuid.NewString(),
		Config:    project.Default(),
		CreatedAt: t,
		ExpiresAt: t.Add(ttl),
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return now().After(s.ExpiresAt)
}

// Reset restores the default form, keeping the session ID.
func (s *Session) Reset() {
	s.Config.Reset()
}

// TakeFlash returns the pending notice and clears it.
func (s *Session) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

// ValidID reports whether id looks like a session ID. Cookies carrying
// anything else are ignored.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Store persists sessions.
type Store interface {
	// Get returns a stored session; missing or expired sessions yield a
	// SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Session, error)

	// Load returns the session for id, or a new session when id is empty,
	// malformed, unknown or expired. New sessions are not saved until
	// [Store.Save] is called.
	Load(ctx context.Context, id string) (*Session, error)

	// Save stores the session and extends its expiry.
	Save(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
