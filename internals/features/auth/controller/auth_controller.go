package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"discens_backend/internals/features/auth/service"
)

type AuthController struct {
	DB       *gorm.DB
	Identity *service.LocalIdentity
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:       db,
		Identity: service.NewLocalIdentity(db),
	}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, ac.Identity, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) SelectRole(c *fiber.Ctx) error {
	return service.SelectRole(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return service.Me(ac.DB, c)
}

func (ac *AuthController) MyRoles(c *fiber.Ctx) error {
	return service.MyRoles(ac.DB, c)
}

func (ac *AuthController) Navigation(c *fiber.Ctx) error {
	return service.Navigation(ac.DB, c)
}
