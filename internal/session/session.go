// Package session keeps the access token of the signed-in user.
//
// A session lives for a fixed window from the moment it is saved; there is no
// sliding renewal. The state is persisted through a KV store so it can survive
// restarts when the user asked to be remembered.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// Lifetime is how long a saved token is considered valid.
const Lifetime = 12 * time.Hour

// ErrEmptyToken is returned by Save for an empty token.
var ErrEmptyToken = errors.New("token must not be empty")

// KV is the persistence the store needs. Get reports a miss with storage.ErrNotFound.
type KV interface {
	Get(key string) (string, error)
	SetMany(values map[string]string) error
	Delete(keys ...string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store holds at most one session. Reads never touch the KV store.
type Store struct {
	kv    KV
	clock Clock

	mu      sync.RWMutex
	current *models.Session
}

// Open loads any persisted session from kv.
func Open(kv KV, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}

	token, err := kv.Get(storage.KeyAccessToken)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return s, nil
	}

	sess := &models.Session{Token: token}
	// A missing or unreadable expiry leaves the zero time, which reads as expired.
	if v, err := kv.Get(storage.KeyTokenExpiry); err == nil {
		if t, perr := time.Parse(time.RFC3339Nano, v); perr == nil {
			sess.ExpiresAt = t
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load token expiry: %w", err)
	}
	if v, err := kv.Get(storage.KeyRememberMe); err == nil {
		sess.RememberMe, _ = strconv.ParseBool(v)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load remember me: %w", err)
	}

	s.current = sess
	return s, nil
}

// Save stores token with an expiry of Lifetime from now.
func (s *Store) Save(token string, rememberMe bool) error {
	if token == "" {
		return ErrEmptyToken
	}
	sess := &models.Session{
		Token:      token,
		ExpiresAt:  s.clock.Now().Add(Lifetime),
		RememberMe: rememberMe,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.SetMany(map[string]string{
		storage.KeyAccessToken: sess.Token,
		storage.KeyTokenExpiry: sess.ExpiresAt.UTC().Format(time.RFC3339Nano),
		storage.KeyRememberMe:  strconv.FormatBool(sess.RememberMe),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = sess
	return nil
}

// Read returns the stored token, expired or not.
func (s *Store) Read() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", false
	}
	return s.current.Token, true
}

// Current returns a copy of the stored session.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// IsExpired reports whether now is past the expiry. Without a session it reports true.
func (s *Store) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return true
	}
	return s.clock.Now().After(s.current.ExpiresAt)
}

// RememberMe reports the remember-me flag of the stored session.
func (s *Store) RememberMe() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.RememberMe
}

// Clear forgets the session in memory and in the KV store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := s.kv.Delete(storage.KeyAccessToken, storage.KeyTokenExpiry, storage.KeyRememberMe); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore applies the start-up policy: a persisted session survives a restart
// only if the user asked to be remembered and it has not expired.
// It reports whether a usable session remains.
func (s *Store) Restore() (bool, error) {
	sess, ok := s.Current()
	if !ok {
		return false, nil
	}
	if sess.RememberMe && !s.IsExpired() {
		return true, nil
	}
	return false, s.Clear()
}
