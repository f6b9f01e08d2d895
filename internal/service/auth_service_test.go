package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushelp/helpdesk/internal/auth"
	"github.com/campushelp/helpdesk/internal/config"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/repository/repotest"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// memSessionStore is a map-backed auth.SessionStore for tests.
type memSessionStore struct {
	sessions map[string]auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]auth.Session)}
}

func (s *memSessionStore) Put(_ context.Context, token string, session auth.Session, _ time.Duration) error {
	s.sessions[token] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*auth.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &session, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *memSessionStore) Touch(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

// bcrypt at minimum cost keeps these tests fast.
const testBcryptCost = 4

func newAuthFixture(t *testing.T) (*AuthService, *repotest.StaffRepo, *auth.SessionManager) {
	t.Helper()
	staffRepo := repotest.NewStaffRepo()
	sessions := auth.NewSessionManager(newMemSessionStore(), time.Hour)
	svc := NewAuthService(staffRepo, sessions, testBcryptCost, zap.NewNop())
	return svc, staffRepo, sessions
}

func seedStaff(t *testing.T, repo *repotest.StaffRepo, username, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password, testBcryptCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.StaffAccount{
		Username:     username,
		Email:        username + "@school.edu",
		PasswordHash: hash,
	}))
}

func TestLoginIssuesValidSession(t *testing.T) {
	svc, staffRepo, sessions := newAuthFixture(t)
	seedStaff(t, staffRepo, "admin", "hunter2hunter2")

	token, err := svc.Login(context.Background(), "admin", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := sessions.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, staffRepo, _ := newAuthFixture(t)
	seedStaff(t, staffRepo, "admin", "hunter2hunter2")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "unknown username", username: "nobody", password: "hunter2hunter2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			// both denials are indistinguishable to the caller
			assert.True(t, errorutil.IsCode(err, "UNAUTHORIZED"))
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, staffRepo, sessions := newAuthFixture(t)
	seedStaff(t, staffRepo, "admin", "hunter2hunter2")

	token, err := svc.Login(context.Background(), "admin", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = sessions.Validate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	// logging out twice is harmless
	assert.NoError(t, svc.Logout(context.Background(), token))
}

func TestEnsureAdminAccount(t *testing.T) {
	svc, staffRepo, _ := newAuthFixture(t)

	cfg := config.AuthConfig{
		AdminUsername: "itadmin",
		AdminEmail:    "itadmin@school.edu",
		AdminPassword: "first-run-secret",
	}
	require.NoError(t, svc.EnsureAdminAccount(context.Background(), cfg))

	account, err := staffRepo.GetByUsername(context.Background(), "itadmin")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(account.PasswordHash, "first-run-secret"))

	// idempotent: a second run must not replace the existing account
	cfg.AdminPassword = "different"
	require.NoError(t, svc.EnsureAdminAccount(context.Background(), cfg))
	account, err = staffRepo.GetByUsername(context.Background(), "itadmin")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(account.PasswordHash, "first-run-secret"))
}

func TestEnsureAdminAccountSkipsWithoutPassword(t *testing.T) {
	svc, staffRepo, _ := newAuthFixture(t)

	require.NoError(t, svc.EnsureAdminAccount(context.Background(), config.AuthConfig{
		AdminUsername: "itadmin",
	}))

	count, err := staffRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "no account without a configured password")
}
