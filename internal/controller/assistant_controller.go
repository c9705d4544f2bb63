package controller

import (
	"storefront-assistant-be/internal/dto"
	"storefront-assistant-be/internal/pkg/serverutils"
	"storefront-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	EndConversation(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetQuality(ctx *fiber.Ctx) error
}

type assistantController struct {
	dialogueService service.IDialogueService
}

func NewAssistantController(dialogueService service.IDialogueService) IAssistantController {
	return &assistantController{
		dialogueService: dialogueService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("message", c.SendMessage)
	h.Post("conversation/end", c.EndConversation)
	h.Get("conversation/:id/history", c.GetHistory)
	h.Get("conversation/:id/quality", c.GetQuality)
}

func storeIdFromToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	storeIdStr, ok := ctx.Locals("store_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing store claim")
	}
	storeId, err := uuid.Parse(storeIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid store claim")
	}
	return storeId, nil
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	storeId, err := storeIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.SendMessage(ctx.Context(), storeId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *assistantController) EndConversation(ctx *fiber.Ctx) error {
	storeId, err := storeIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.EndConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.EndConversation(ctx.Context(), storeId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end conversation", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	storeId, err := storeIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	res, err := c.dialogueService.GetHistory(ctx.Context(), storeId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) GetQuality(ctx *fiber.Ctx) error {
	storeId, err := storeIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	res, err := c.dialogueService.GetQuality(ctx.Context(), storeId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get quality score", res))
}
