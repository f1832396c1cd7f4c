package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

type noopHistory struct{}

func (noopHistory) Create(context.Context, *models.PostingHistory) (int64, error) { return 1, nil }
func (noopHistory) GetByPostID(context.Context, int64) ([]*models.PostingHistory, error) {
	return nil, nil
}

func newTestQueue() (*Queue, *repository.MemoryPostRepository) {
	repo := repository.NewMemoryPostRepository()
	ps := service.NewPublishService(repo, noopHistory{}, service.NewLoggingPublisher(), events.NewHub())
	return NewQueue(repo, ps), repo
}

func TestNewPublishTask(t *testing.T) {
	task, err := NewPublishTask(PublishPostPayload{PostID: 42})
	require.NoError(t, err)
	assert.Equal(t, TaskTypePublishPost, task.Type())
	assert.JSONEq(t, `{"post_id":42}`, string(task.Payload()))
}

func TestPublishDelay(t *testing.T) {
	now := time.Date(2026, time.November, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 90*time.Second, publishDelay(now, now.Add(90*time.Second)))
	assert.Equal(t, time.Duration(0), publishDelay(now, now.Add(-time.Hour)))
}

func TestHandlePublishPostTask(t *testing.T) {
	q, repo := newTestQueue()
	ctx := context.Background()
	id, err := repo.Create(ctx, &models.Post{
		UserID:        1,
		Content:       "queued",
		Platforms:     []models.Platform{models.PlatformFacebook},
		ScheduledTime: time.Now().Add(time.Minute),
		Status:        models.PostStatusScheduled,
	})
	require.NoError(t, err)

	payload, err := json.Marshal(PublishPostPayload{PostID: id})
	require.NoError(t, err)
	require.NoError(t, q.HandlePublishPostTask(ctx, asynq.NewTask(TaskTypePublishPost, payload)))

	post, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, post.Status)

	res, err := q.PublishPost(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHandlePublishPostTaskSkips(t *testing.T) {
	q, repo := newTestQueue()
	ctx := context.Background()

	res, err := q.PublishPost(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, res)

	id, err := repo.Create(ctx, &models.Post{UserID: 1, Content: "d", Platforms: []models.Platform{models.PlatformTwitter}, ScheduledTime: time.Now(), Status: models.PostStatusDraft})
	require.NoError(t, err)
	res, err = q.PublishPost(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, res)

	err = q.HandlePublishPostTask(ctx, asynq.NewTask(TaskTypePublishPost, []byte("{")))
	assert.Error(t, err)
}
