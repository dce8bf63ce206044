package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"skillalign/resume-matcher/internal/models"
	"skillalign/resume-matcher/internal/services"
)

const claimsLocalKey = "claims"

// RequireAuth validates the bearer token and stores the parsed claims on the
// request context for downstream handlers.
func RequireAuth(tokenService services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Authorization header",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header must be a bearer token",
			})
		}

		claims, err := tokenService.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(claimsLocalKey, claims)
		return c.Next()
	}
}

// RequireRole gates a route on an exact role match. A mismatch is fatal to
// the request only.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only " + string(role) + " can access this resource",
			})
		}

		return c.Next()
	}
}

// CurrentClaims returns the claims stored by RequireAuth, or nil.
func CurrentClaims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsLocalKey).(*services.Claims)
	return claims
}
