package redis

// Package redis provides the durable session store backing the navigation
// core. A session record is written as one JSON value under one key, so it
// is always fully populated or absent — there is no partial state for a
// reload (or another tab) to observe.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/bookstand/store-ui-api/internal/domain/auth"
)

const defaultKeyPrefix = "session:"

// SessionStore persists sessions in Redis with a TTL derived from the
// session expiry, so abandoned sessions age out without a reaper.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, defaultKeyPrefix)
}

// NewSessionStoreWithPrefix creates a session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

// Save writes the session through to Redis. Saving the same session twice
// is idempotent: the key, value, and TTL are derived entirely from the
// session itself.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.BearerToken == "" {
		// The invariant is all-or-nothing: an identity without its bearer
		// credential must never be persisted.
		return errors.New("session bearer credential cannot be empty")
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

// Get returns the session for id, or ErrNotFound. Corrupt and expired
// records are deleted on read so the next evaluation starts clean.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("discard corrupt session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	// Redis TTL normally handles expiry; re-check in case of clock drift.
	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

// Delete removes the session; deleting an absent session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}
