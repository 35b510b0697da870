package controller

import (
	"errors"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/serverutils"
	"mortgage-connect-be/internal/service"
	"mortgage-connect-be/pkg/formflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFormController interface {
	RegisterRoutes(r fiber.Router)
	Variants(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Answer(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Discard(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type formController struct {
	wizard       service.IWizardService
	conversation service.IConversationService
	debug        bool
}

// NewFormController serves the paginated wizard and the chat transcript.
// With debug set, internal errors carry their detail.
func NewFormController(wizard service.IWizardService, conversation service.IConversationService, debug bool) IFormController {
	return &formController{wizard: wizard, conversation: conversation, debug: debug}
}

func (c *formController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/forms")
	h.Get("/variants", c.Variants)
	h.Post("/sessions", c.Create)
	h.Get("/sessions/:id", c.Show)
	h.Delete("/sessions/:id", c.Discard)
	h.Post("/sessions/:id/answer", c.Answer)
	h.Post("/sessions/:id/back", c.Back)
	h.Post("/sessions/:id/submit", c.Submit)
	h.Get("/sessions/:id/transcript", c.Transcript)
}

func (c *formController) Variants(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get form variants", c.wizard.Variants(ctx.UserContext())))
}

func (c *formController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFormSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.wizard.Create(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Form session started", res))
}

func (c *formController) Show(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	res, err := c.wizard.Show(ctx.UserContext(), id)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show form step", res))
}

func (c *formController) Answer(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	var req dto.AnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.wizard.Answer(ctx.UserContext(), id, &req)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer accepted", res))
}

func (c *formController) Back(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	res, err := c.wizard.Back(ctx.UserContext(), id)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success go back", res))
}

func (c *formController) Submit(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}

	res, err := c.wizard.Submit(ctx.UserContext(), id)
	switch {
	case err == nil:
		return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
	case res != nil && res.Pending:
		return ctx.Status(fiber.StatusConflict).JSON(submissionResponse(fiber.StatusConflict, res))
	case res != nil && res.Retryable:
		return ctx.Status(fiber.StatusBadGateway).JSON(submissionResponse(fiber.StatusBadGateway, res))
	}
	return c.fail(ctx, err)
}

func (c *formController) Discard(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	if err := c.wizard.Discard(ctx.UserContext(), id); err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Form session discarded", nil))
}

func (c *formController) Transcript(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	res, err := c.conversation.Transcript(ctx.UserContext(), id)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}

func (c *formController) fail(ctx *fiber.Ctx, err error) error {
	var verr *formflow.ValidationError
	switch {
	case errors.As(err, &verr):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(
			serverutils.FieldErrorResponse(fiber.StatusUnprocessableEntity, verr.Message, map[string]string{verr.FieldKey: verr.Message}))
	case errors.Is(err, service.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Form session not found"))
	case errors.Is(err, service.ErrUnknownVariant):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, formflow.ErrSubmissionInFlight),
		errors.Is(err, formflow.ErrFlowComplete),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, service.ErrModeMismatch),
		errors.Is(err, service.ErrNotAwaitingSubmission):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(fiber.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrSessionHalted), formflow.IsNavigation(err):
		msg := "Something went wrong"
		if c.debug {
			msg = msg + ": " + err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, msg))
	}
	return err
}

func sessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, service.ErrSessionNotFound
	}
	return id, nil
}

func submissionResponse(code int, res *dto.SubmissionResult) serverutils.BaseResponse[*dto.SubmissionResult] {
	return serverutils.BaseResponse[*dto.SubmissionResult]{
		Success: false,
		Code:    code,
		Message: res.Message,
		Data:    res,
	}
}
