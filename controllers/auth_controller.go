package controllers

import (
	"cybertech/config"
	"cybertech/store"
	"cybertech/utils"
	"cybertech/validators"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Identity *store.IdentityStore
	Cfg      *config.Config
}

func NewAuthController(identity *store.IdentityStore, cfg *config.Config) *AuthController {
	return &AuthController{Identity: identity, Cfg: cfg}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input validators.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validators.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	session, err := ac.Identity.Register(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		return storeError(c, err)
	}

	token, err := utils.GenerateJWTToken(session.Email, session.Role, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  session,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input validators.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if errs := validators.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	session, err := ac.Identity.Login(input.Email, input.Password)
	if err != nil {
		return storeError(c, err)
	}

	token, err := utils.GenerateJWTToken(session.Email, session.Role, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  session,
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Identity.Logout(); err != nil {
		return utils.InternalServerError(c, "Could not clear session")
	}
	return utils.NoContent(c)
}

func (ac *AuthController) GetSession(c *fiber.Ctx) error {
	session, err := ac.Identity.Session()
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, session)
}
