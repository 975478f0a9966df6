package middleware

import (
	"log"
	"strings"

	"academy/internal/services"

	"github.com/gofiber/fiber/v2"
)

const adminLocalsKey = "admin"

// AuthRequired guards the admin API. Requests must carry a bearer token
// issued by AuthService.Login; the resolved admin is stored on the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin authentication required",
			})
		}

		admin, err := authService.Authenticate(token)
		if err != nil {
			log.Printf("Rejected admin request %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

// CurrentAdmin returns the admin resolved by AuthRequired.
func CurrentAdmin(c *fiber.Ctx) (*services.AdminIdentity, bool) {
	admin, ok := c.Locals(adminLocalsKey).(*services.AdminIdentity)
	return admin, ok && admin != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
