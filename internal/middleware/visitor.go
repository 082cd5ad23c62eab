package middleware

import (
	"time"

	"prepwise/internal/util"

	"github.com/gofiber/fiber/v2"
)

const (
	VisitorCookie = "pw_visitor"
	VisitorIDKey  = "visitorID" // Key for storing the visitor ID in fiber.Ctx locals
)

// VisitorID assigns every request a stable anonymous visitor identifier via
// a long-lived cookie. The server-side view counter is keyed by it.
func VisitorID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		visitorID := c.Cookies(VisitorCookie)
		if visitorID == "" {
			visitorID = util.NewULID()
			c.Cookie(&fiber.Cookie{
				Name:     VisitorCookie,
				Value:    visitorID,
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(VisitorIDKey, visitorID)
		return c.Next()
	}
}

// RequestVisitorID returns the visitor ID assigned by VisitorID.
func RequestVisitorID(c *fiber.Ctx) string {
	if visitorID, ok := c.Locals(VisitorIDKey).(string); ok {
		return visitorID
	}
	return ""
}
