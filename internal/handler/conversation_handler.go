package handler

import (
	"context"
	"encoding/json"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/pkg/serverutils"
	"mortgage-connect-be/internal/service"
	internalWS "mortgage-connect-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ConversationHandler upgrades chat form requests to websockets and bridges
// frames between the socket and the conversation service.
type ConversationHandler struct {
	service  service.IConversationService
	registry *catalog.Registry
	hub      *internalWS.Hub
	logger   logger.ILogger
}

func NewConversationHandler(service service.IConversationService, registry *catalog.Registry, hub *internalWS.Hub, log logger.ILogger) *ConversationHandler {
	return &ConversationHandler{
		service:  service,
		registry: registry,
		hub:      hub,
		logger:   log,
	}
}

// ServeWs handles GET /forms/chat/:variant.
func (h *ConversationHandler) ServeWs(c *fiber.Ctx) error {
	variant := c.Params("variant")
	if _, err := h.registry.ForVariant(variant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.serve(conn, variant)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ConversationHandler) serve(conn *websocket.Conn, variant string) {
	client := internalWS.NewClient(h.hub, conn, h.logger)

	id, err := h.service.Start(context.Background(), variant, client)
	if err != nil {
		h.logger.Error("ConversationHandler", "Failed to start chat", map[string]interface{}{"variant": variant, "error": err.Error()})
		conn.WriteJSON(dto.ChatFrame{Type: dto.FrameError, Message: "Something went wrong. Please refresh the page and start over."})
		conn.Close()
		return
	}
	client.Bind(id)
	h.logger.Info("ConversationHandler", "Chat connected", map[string]interface{}{"session_id": id.String(), "variant": variant})

	internalWS.ServeWs(client, func(raw []byte) {
		var frame dto.ChatFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			client.Emit(dto.ChatFrame{Type: dto.FrameError, Message: "Unsupported message."})
			return
		}
		// rejections are reported to the client as frames by the service
		_ = h.service.Receive(context.Background(), id, frame)
	})

	h.service.Close(id)
	h.logger.Info("ConversationHandler", "Chat disconnected", map[string]interface{}{"session_id": id.String()})
}

func (h *ConversationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/forms/chat/:variant", h.ServeWs)
}
