package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/campushelp/helpdesk/internal/auth"
	"github.com/campushelp/helpdesk/internal/config"
	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/internal/repository"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// AuthService validates staff credentials and manages their sessions.
type AuthService struct {
	staff      repository.StaffRepository
	sessions   *auth.SessionManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(staff repository.StaffRepository, sessions *auth.SessionManager, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{
		staff:      staff,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies the credential and issues an opaque session token. Unknown
// usernames and wrong passwords produce the same denial.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	staff, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if errorutil.IsCode(err, "NOT_FOUND") {
			return "", errorutil.NewUnauthorized("invalid username or password")
		}
		return "", err
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return "", errorutil.NewUnauthorized("invalid username or password")
	}

	token, err := s.sessions.Issue(ctx, staff.Username)
	if err != nil {
		return "", err
	}
	s.logger.Info("staff logged in", zap.String("username", staff.Username))
	return token, nil
}

// Logout revokes the session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		return err
	}
	return nil
}

// EnsureAdminAccount creates the bootstrap staff account when none exists.
// The credential comes from injected configuration, never from a baked-in
// default password.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, cfg config.AuthConfig) error {
	count, err := s.staff.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		s.logger.Warn("no staff accounts exist and ADMIN_PASSWORD is unset; staff login disabled")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account := &domain.StaffAccount{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	}
	if err := s.staff.Create(ctx, account); err != nil {
		return err
	}
	s.logger.Info("bootstrap staff account created", zap.String("username", account.Username))
	return nil
}
