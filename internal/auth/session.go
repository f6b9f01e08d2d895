package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates an unknown, expired or revoked token.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state bound to an opaque token.
type Session struct {
	Username string
}

// SessionStore persists sessions keyed by opaque token.
type SessionStore interface {
	Put(ctx context.Context, token string, session Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	// Touch extends the idle expiry of an existing session.
	Touch(ctx context.Context, token string, ttl time.Duration) error
}

// SessionManager issues and validates opaque staff session tokens. Tokens
// carry no claims; everything lives server-side so logout revokes
// immediately and idle sessions lapse on their own.
type SessionManager struct {
	store SessionStore
	ttl   time.Duration
}

// NewSessionManager builds a manager over the given store.
func NewSessionManager(store SessionStore, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionManager{store: store, ttl: ttl}
}

// Issue creates a session for the authenticated staff username and returns
// the opaque token.
func (m *SessionManager) Issue(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := m.store.Put(ctx, token, Session{Username: username}, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its session and refreshes the idle expiry.
func (m *SessionManager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	_ = m.store.Touch(ctx, token, m.ttl)
	return session, nil
}

// Revoke deletes the session, ending it immediately.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

const sessionKeyPrefix = "helpdesk:session:"

// redisSessionStore keeps sessions in Redis with a TTL.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore builds a store over the given client.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Put(ctx context.Context, token string, session Session, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+token, session.Username, ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	username, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &Session{Username: username}, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *redisSessionStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Expire(ctx, sessionKeyPrefix+token, ttl).Err()
}
