package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type CalendarHandler struct {
	s service.CalendarService
}

func NewCalendarHandler(service service.CalendarService) *CalendarHandler {
	return &CalendarHandler{s: service}
}

func (h *CalendarHandler) GenerateCalendar(c *fiber.Ctx) error {
	var req transfer.CalendarRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	posts, err := h.s.GenerateCalendar(c.Context(), GetUserID(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(transfer.PostList{Posts: posts})
}

func (h *CalendarHandler) CalendarEvents(c *fiber.Ctx) error {
	from, err := queryTime(c, "start")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "end")
	if err != nil {
		return writeError(c, err)
	}

	events, err := h.s.CalendarEvents(c.Context(), GetUserID(c), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}
