package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/service"
)

const maxUploadSize = 100 * 1024 * 1024

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "No file provided")
	}
	if fileHeader.Size > maxUploadSize {
		return badRequest(c, "File is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to open file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to read file")
	}

	asset, err := h.s.Upload(c.Context(), GetUserID(c), data)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	if err := h.s.Delete(c.Context(), GetUserID(c), c.Query("url")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
