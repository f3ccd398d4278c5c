package middleware

import (
	"strings"

	"motorvault/internal/config"
	"motorvault/internal/pkg/jwt"
	"motorvault/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer credential and threads the caller's
// member identity into the request context. Every coordinator call receives
// that identity explicitly; there is no ambient session state.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("memberID", claims.MemberID)
		c.Locals("memberNumber", claims.MemberNumber)

		return c.Next()
	}
}

// CallerID returns the authenticated member ID from the request context
func CallerID(c *fiber.Ctx) (string, bool) {
	memberID, ok := c.Locals("memberID").(string)
	return memberID, ok && memberID != ""
}
