package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClockStore tracks expiries against a controllable clock, mirroring
// the TTL behavior of the Redis store.
type fakeClockStore struct {
	now      time.Time
	sessions map[string]Session
	expiries map[string]time.Time
}

func newFakeClockStore() *fakeClockStore {
	return &fakeClockStore{
		now:      time.Unix(1700000000, 0),
		sessions: make(map[string]Session),
		expiries: make(map[string]time.Time),
	}
}

func (s *fakeClockStore) Put(_ context.Context, token string, session Session, ttl time.Duration) error {
	s.sessions[token] = session
	s.expiries[token] = s.now.Add(ttl)
	return nil
}

func (s *fakeClockStore) Get(_ context.Context, token string) (*Session, error) {
	session, ok := s.sessions[token]
	if !ok || s.now.After(s.expiries[token]) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *fakeClockStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	delete(s.expiries, token)
	return nil
}

func (s *fakeClockStore) Touch(_ context.Context, token string, ttl time.Duration) error {
	if _, ok := s.sessions[token]; ok {
		s.expiries[token] = s.now.Add(ttl)
	}
	return nil
}

func TestSessionIssueAndValidate(t *testing.T) {
	store := newFakeClockStore()
	manager := NewSessionManager(store, 30*time.Minute)

	token, err := manager.Issue(context.Background(), "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := manager.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Username)
}

func TestSessionTokensAreOpaqueAndUnique(t *testing.T) {
	store := newFakeClockStore()
	manager := NewSessionManager(store, 30*time.Minute)

	first, err := manager.Issue(context.Background(), "admin")
	require.NoError(t, err)
	second, err := manager.Issue(context.Background(), "admin")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "admin", "token must not embed the identity")
}

func TestSessionValidateRejectsUnknownToken(t *testing.T) {
	manager := NewSessionManager(newFakeClockStore(), 30*time.Minute)

	_, err := manager.Validate(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.Validate(context.Background(), "forged-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRevoke(t *testing.T) {
	store := newFakeClockStore()
	manager := NewSessionManager(store, 30*time.Minute)

	token, err := manager.Issue(context.Background(), "admin")
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(context.Background(), token))

	_, err = manager.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionIdleExpiryAndRefresh(t *testing.T) {
	store := newFakeClockStore()
	manager := NewSessionManager(store, 30*time.Minute)

	token, err := manager.Issue(context.Background(), "admin")
	require.NoError(t, err)

	// activity 20 minutes in refreshes the idle window
	store.now = store.now.Add(20 * time.Minute)
	_, err = manager.Validate(context.Background(), token)
	require.NoError(t, err)

	// 25 more minutes is still inside the refreshed window
	store.now = store.now.Add(25 * time.Minute)
	_, err = manager.Validate(context.Background(), token)
	require.NoError(t, err)

	// going fully idle past the TTL ends the session
	store.now = store.now.Add(31 * time.Minute)
	_, err = manager.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
