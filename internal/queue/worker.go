package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/service"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding %s payload: %w", TaskTypePublishPost, err)
	}

	_, err := j.PublishPost(ctx, payload.PostID)
	return err
}

// PublishPost publishes postID if it is still scheduled. Posts that were
// deleted, rescheduled away or already handled by the sweep are skipped.
func (j *Queue) PublishPost(ctx context.Context, postID int64) (*service.PublishResult, error) {
	post, err := j.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		slog.Info("publish task for missing post", "post_id", postID)
		return nil, nil
	}
	if post.Status != models.PostStatusScheduled {
		slog.Info("publish task skipped", "post_id", postID, "status", post.Status)
		return nil, nil
	}

	res := j.ps.Publish(ctx, post)
	if !res.Success {
		slog.Info("publish task failed", "post_id", postID, "error", res.Error)
	}
	return &res, nil
}
