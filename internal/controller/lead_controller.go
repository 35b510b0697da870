package controller

import (
	"errors"
	"time"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type leadController struct {
	service service.ILeadService
	logger  logger.ILogger
}

func NewLeadController(service service.ILeadService, log logger.ILogger) ILeadController {
	return &leadController{service: service, logger: log}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	r.Post("/submit-lead", c.Submit)
	r.Get("/submit-lead", c.Health)
}

// Submit answers with a flat body rather than the response envelope; the
// marketing site reads success and ghlSubmitted directly.
func (c *leadController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitLeadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid JSON body"})
	}

	res, err := c.service.Submit(ctx.UserContext(), req)
	if err != nil {
		var missing *service.MissingFieldError
		if errors.As(err, &missing) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": missing.Error()})
		}
		c.logger.Error("LeadController", "Lead submission failed", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to submit lead"})
	}
	return ctx.JSON(res)
}

func (c *leadController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.LeadHealthResponse{
		Status:    "ok",
		Service:   "GoHighLevel Lead Submission",
		Timestamp: time.Now(),
	})
}
