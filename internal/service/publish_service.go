package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

// Publisher delivers a post to its platforms.
type Publisher interface {
	Publish(ctx context.Context, post *models.Post) error
}

// PublishScheduler arranges for a post to be published at a given time.
type PublishScheduler interface {
	SchedulePublish(ctx context.Context, postID int64, at time.Time) error
}

type PublishResult struct {
	PostID  int64  `json:"post_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type PublishService interface {
	Publish(ctx context.Context, post *models.Post) PublishResult
}

type publishService struct {
	posts     repository.PostRepository
	history   repository.PostingHistoryRepository
	publisher Publisher
	hub       *events.Hub
}

func NewPublishService(posts repository.PostRepository, history repository.PostingHistoryRepository, publisher Publisher, hub *events.Hub) PublishService {
	return &publishService{
		posts:     posts,
		history:   history,
		publisher: publisher,
		hub:       hub,
	}
}

// Publish delivers a scheduled post and moves it to published or failed.
// The status change only applies while the post is still scheduled, so a
// published post is never touched again.
func (s *publishService) Publish(ctx context.Context, post *models.Post) PublishResult {
	result := PublishResult{PostID: post.ID}
	if post.Status != models.PostStatusScheduled {
		result.Error = fmt.Sprintf("post is %s, not scheduled", post.Status)
		return result
	}

	next := models.PostStatusPublished
	deliveryErr := s.publisher.Publish(ctx, post)
	if deliveryErr != nil {
		slog.Info("post delivery failed", "post_id", post.ID, "error", deliveryErr.Error())
		next = models.PostStatusFailed
	}

	changed, err := s.posts.TransitionStatus(ctx, post.ID, models.PostStatusScheduled, next)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !changed {
		result.Error = "post is no longer scheduled"
		return result
	}

	ph := &models.PostingHistory{UserID: post.UserID, PostID: post.ID, Status: next}
	if deliveryErr != nil {
		ph.ErrorMessage = deliveryErr.Error()
		result.Error = deliveryErr.Error()
	}
	if _, err := s.history.Create(ctx, ph); err != nil {
		slog.Error("recording posting history", "post_id", post.ID, "error", err)
	}

	if s.hub != nil {
		s.hub.Notify(post.UserID)
	}

	result.Success = deliveryErr == nil
	return result
}

type loggingPublisher struct{}

// NewLoggingPublisher returns a Publisher that only logs. No platform API
// integration exists yet.
func NewLoggingPublisher() Publisher {
	return loggingPublisher{}
}

func (loggingPublisher) Publish(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, platform := range post.Platforms {
		slog.Info("publishing post", "post_id", post.ID, "platform", platform)
	}
	return nil
}
