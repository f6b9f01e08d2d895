package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campushelp/helpdesk/internal/domain"
	"github.com/campushelp/helpdesk/pkg/errorutil"
)

const principalKey = "staff_principal"

// SessionCookieName is the cookie carrying the staff session token. An
// Authorization bearer header is accepted as an alternative for API clients.
const SessionCookieName = "helpdesk_session"

// StaffMiddleware validates session tokens and loads the staff identity.
type StaffMiddleware struct {
	sessions *SessionManager
}

// NewStaffMiddleware constructs middleware.
func NewStaffMiddleware(sessions *SessionManager) *StaffMiddleware {
	return &StaffMiddleware{sessions: sessions}
}

// Handle enforces staff authentication for protected routes.
func (m *StaffMiddleware) Handle(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return errorutil.NewUnauthorized("missing session token")
	}

	session, err := m.sessions.Validate(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return errorutil.NewUnauthorized("invalid or expired session")
		}
		return errorutil.MapError(err)
	}

	c.Locals(principalKey, &domain.StaffIdentity{Username: session.Username})
	return c.Next()
}

// StaffFromContext retrieves the authenticated staff identity.
func StaffFromContext(c *fiber.Ctx) (*domain.StaffIdentity, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	staff, ok := val.(*domain.StaffIdentity)
	return staff, ok
}

func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
