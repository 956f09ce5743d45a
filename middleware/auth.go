package middleware

import (
	"errors"

	"cybertech/config"
	"cybertech/models"
	"cybertech/store"
	"cybertech/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer token and stashes the caller's email
// and role claim in locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, role, err := utils.ExtractUserFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userEmail", email)
		c.Locals("userRole", role)
		return c.Next()
	}
}

// AdminMiddleware requires the caller to be an admin. The role is checked
// against the registered-user record, not the token claim.
func AdminMiddleware(identity *store.IdentityStore) fiber.Handler {
	return requireRole(identity, models.RoleAdmin)
}

// InstructorMiddleware requires the caller to be an instructor or an admin.
func InstructorMiddleware(identity *store.IdentityStore) fiber.Handler {
	return requireRole(identity, models.RoleInstructor, models.RoleAdmin)
}

func requireRole(identity *store.IdentityStore, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("userEmail").(string)
		if email == "" {
			return utils.Unauthorized(c, "Unauthorized")
		}

		user, err := identity.FindUser(email)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return utils.Unauthorized(c, "Unauthorized")
			}
			return utils.InternalServerError(c, "Could not query user")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient role")
	}
}
