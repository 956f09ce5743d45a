package controllers

import (
	"errors"

	"cybertech/models"
	"cybertech/store"
	"cybertech/utils"

	"github.com/gofiber/fiber/v2"
)

// storeError maps store errors onto HTTP statuses.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrDuplicateEnrollment):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, models.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return utils.Forbidden(c, err.Error())
	default:
		return utils.InternalServerError(c, "Could not complete request")
	}
}

// sessionActor rebuilds the acting user's projection from the registered-user
// record behind the authenticated email.
func sessionActor(identity *store.IdentityStore, c *fiber.Ctx) (*models.SessionUser, error) {
	email, _ := c.Locals("userEmail").(string)
	user, err := identity.FindUser(email)
	if err != nil {
		return nil, err
	}
	session := user.Session()
	return &session, nil
}
