package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/errors"
)

// CacheStore keeps sessions in a cache backend.
type CacheStore struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCacheStore creates a store over c. A nil keyer uses the default key
// layout; a non-positive ttl uses [DefaultTTL].
func NewCacheStore(c cache.Cache, keyer cache.Keyer, ttl time.Duration) *CacheStore {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheStore{cache: c, keyer: keyer, ttl: ttl}
}

// TTL returns the session lifetime.
func (s *CacheStore) TTL() time.Duration {
	return s.ttl
}

func (s *CacheStore) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "invalid session id")
	}
	data, ok, err := s.cache.Get(ctx, s.keyer.SessionKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session")
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		_ = s.cache.Delete(ctx, s.keyer.SessionKey(id))
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s is unreadable", id)
	}
	if sess.IsExpired() {
		_ = s.cache.Delete(ctx, s.keyer.SessionKey(id))
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s expired", id)
	}
	return &sess, nil
}

func (s *CacheStore) Load(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		sess, err := s.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, errors.ErrCodeSessionNotFound) {
			return nil, err
		}
	}
	return New(s.ttl), nil
}

func (s *CacheStore) Save(ctx context.Context, sess *Session) error {
	sess.ExpiresAt = now().Add(s.ttl)
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode session")
	}
	if err := s.cache.Set(ctx, s.keyer.SessionKey(sess.ID), data, s.ttl); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save session")
	}
	return nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, s.keyer.SessionKey(id)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete session")
	}
	return nil
}

var _ Store = (*CacheStore)(nil)
