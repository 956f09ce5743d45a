package controllers

import (
	"cybertech/config"
	"cybertech/models"
	"cybertech/store"
	"cybertech/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Catalog  *store.CatalogStore
	Identity *store.IdentityStore
	Cfg      *config.Config
}

func NewAdminController(catalog *store.CatalogStore, identity *store.IdentityStore, cfg *config.Config) *AdminController {
	return &AdminController{Catalog: catalog, Identity: identity, Cfg: cfg}
}

// ListUsers returns every registered user, passwords stripped.
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	users, err := ac.Identity.Users()
	if err != nil {
		return utils.InternalServerError(c, "Could not load users")
	}

	projections := make([]models.SessionUser, 0, len(users))
	for _, u := range users {
		projections = append(projections, u.Session())
	}
	return utils.Success(c, fiber.StatusOK, projections)
}

// DeleteCourse removes a course and cascades to enrollments and user
// purchase/created lists.
func (ac *AdminController) DeleteCourse(c *fiber.Ctx) error {
	actor, err := sessionActor(ac.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	if err := ac.Catalog.DeleteCourse(c.Params("id"), actor); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}

// RemoveInstructor deletes every course the instructor owns, then the
// instructor's account.
func (ac *AdminController) RemoveInstructor(c *fiber.Ctx) error {
	actor, err := sessionActor(ac.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	if err := ac.Catalog.RemoveInstructor(c.Params("email"), actor); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}
