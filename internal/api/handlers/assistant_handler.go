package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type AssistantHandler struct {
	s service.AssistantService
}

func NewAssistantHandler(service service.AssistantService) *AssistantHandler {
	return &AssistantHandler{s: service}
}

func (h *AssistantHandler) Suggestions(c *fiber.Ctx) error {
	var req transfer.SuggestionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			slog.Info(err.Error())
			return badRequest(c, "Unable to parse json")
		}
	}

	suggestions, err := h.s.Suggestions(c.Context(), GetUserID(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

func (h *AssistantHandler) PopularHashtags(c *fiber.Ctx) error {
	hashtags, err := h.s.PopularHashtags(c.Context(), GetUserID(c), c.Query("niche"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"hashtags": hashtags})
}
