package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

const streamHeartbeat = 25 * time.Second

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.Create(c.Context(), userID, &pc)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	filter, err := listFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	posts, err := h.s.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(transfer.PostList{Posts: posts})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	post, err := h.s.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.Update(c.Context(), GetUserID(c), id, &pu)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) ReschedulePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req transfer.Reschedule
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.Reschedule(c.Context(), GetUserID(c), id, req.ScheduledTime)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) UpdateEngagement(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	var e models.Engagement
	if err := c.BodyParser(&e); err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse json")
	}

	post, err := h.s.UpdateEngagement(c.Context(), GetUserID(c), id, e)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.s.Remove(c.Context(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// StreamPosts sends the filtered post list as server-sent events, once on
// connect and again after every change. The stream ends when the client
// goes away.
func (h *PostHandler) StreamPosts(c *fiber.Ctx) error {
	filter, err := listFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	snapshots, err := h.s.Subscribe(ctx, filter)
	if err != nil {
		cancel()
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case posts, ok := <-snapshots:
				if !ok {
					return
				}
				data, err := json.Marshal(transfer.PostList{Posts: posts})
				if err != nil {
					slog.Error("encoding post snapshot", "error", err)
					return
				}
				fmt.Fprintf(w, "event: posts\ndata: %s\n\n", data)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// A failed flush means the client is gone.
			if err := w.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}

func listFilter(c *fiber.Ctx) (models.PostFilter, error) {
	from, err := queryTime(c, "start")
	if err != nil {
		return models.PostFilter{}, err
	}
	to, err := queryTime(c, "end")
	if err != nil {
		return models.PostFilter{}, err
	}

	filter := models.PostFilter{UserID: GetUserID(c), From: from, To: to}
	for _, p := range queryList(c, "platforms") {
		filter.Platforms = append(filter.Platforms, models.Platform(p))
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, models.PostStatus(s))
	}
	return filter, nil
}
