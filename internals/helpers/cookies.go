// file: internals/helpers/cookies.go
package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Session-marker cookie names. active_role is the durable marker the
// active-role selector reads back on the next session.
const (
	CookieActiveRole   = "active_role"
	CookieProfileID    = "profile_id"
	CookieSchoolID     = "school_id"
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// SessionCookieTTL: 7 days since last write, not refreshed on read.
const SessionCookieTTL = 7 * 24 * time.Hour

func sessionCookie(name, value string, now time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(SessionCookieTTL),
		MaxAge:   int(SessionCookieTTL / time.Second),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// SetSessionContextCookies persists the resolved session context
// (profile, tenant school, active role) on the client.
func SetSessionContextCookies(c *fiber.Ctx, profileID, schoolID, role string, now time.Time) {
	c.Cookie(sessionCookie(CookieProfileID, profileID, now))
	c.Cookie(sessionCookie(CookieSchoolID, schoolID, now))
	c.Cookie(sessionCookie(CookieActiveRole, role, now))
}

func SetActiveRoleCookie(c *fiber.Ctx, role string, now time.Time) {
	c.Cookie(sessionCookie(CookieActiveRole, role, now))
}

func SetAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(sessionCookie(CookieAccessToken, accessToken, now))
	c.Cookie(sessionCookie(CookieRefreshToken, refreshToken, now))
}

// GetActiveRoleFromCookies returns the stored role marker, "" when absent.
func GetActiveRoleFromCookies(c *fiber.Ctx) string {
	return c.Cookies(CookieActiveRole)
}

// ClearSessionCookies expires every session cookie (logout is idempotent).
func ClearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{
		CookieAccessToken, CookieRefreshToken,
		CookieActiveRole, CookieProfileID, CookieSchoolID,
	} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
