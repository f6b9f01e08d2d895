package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campushelp/helpdesk/internal/api/dto"
	"github.com/campushelp/helpdesk/internal/auth"
	"github.com/campushelp/helpdesk/internal/service"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// StaffHandler manages staff login and logout.
type StaffHandler struct {
	auth       *service.AuthService
	sessionTTL time.Duration
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService, sessionTTL time.Duration) *StaffHandler {
	return &StaffHandler{auth: authService, sessionTTL: sessionTTL}
}

// Login POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return errorutil.NewValidationError("username and password required", nil)
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": dto.StaffLoginResponse{Token: token}})
}

// Logout POST /auth/staff/logout.
func (h *StaffHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(auth.SessionCookieName)
	if token == "" {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token != "" {
		if err := h.auth.Logout(c.UserContext(), token); err != nil {
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}
