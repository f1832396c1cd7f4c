package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) BestPostingTimes(c *fiber.Ctx) error {
	times, err := h.s.BestPostingTimes(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"posting_times": times})
}

func (h *AnalyticsHandler) PostPerformance(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	score, err := h.s.ScorePost(c.Context(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(score)
}
