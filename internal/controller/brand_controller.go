package controller

import (
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IBrandController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type brandController struct {
	brand *config.Brand
}

func NewBrandController(brand *config.Brand) IBrandController {
	return &brandController{brand: brand}
}

func (c *brandController) RegisterRoutes(r fiber.Router) {
	r.Get("/brand", c.Show)
}

func (c *brandController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get brand", c.brand.Snapshot()))
}
