package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

func NewPublishTask(payload PublishPostPayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePublishPost, taskPayload, asynq.MaxRetry(0)), nil
}

func EnqueuePost(ctx context.Context, asynqClient *asynq.Client, payload PublishPostPayload, delay time.Duration) error {
	task, err := NewPublishTask(payload)
	if err != nil {
		return err
	}

	_, err = asynqClient.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	slog.Info("publish task scheduled", "post_id", payload.PostID, "delay", delay.String())
	return nil
}

// Scheduler enqueues a publish task per scheduled post.
type Scheduler struct {
	client *asynq.Client
	now    func() time.Time
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client, now: time.Now}
}

func (s *Scheduler) SchedulePublish(ctx context.Context, postID int64, at time.Time) error {
	return EnqueuePost(ctx, s.client, PublishPostPayload{PostID: postID}, publishDelay(s.now(), at))
}

func publishDelay(now, at time.Time) time.Duration {
	if d := at.Sub(now); d > 0 {
		return d
	}
	return 0
}
