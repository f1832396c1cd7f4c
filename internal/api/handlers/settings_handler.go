package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	settingsInfo, err := h.s.GetSettingsInfo(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings transfer.SettingsUpdate
	if err := c.BodyParser(&settings); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	updated, err := h.s.UpdateSettings(c.Context(), GetUserID(c), settings.Industry, settings.TonePreference)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(updated)
}
