package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

type stubPublisher struct {
	fail map[string]error
}

func (p stubPublisher) Publish(_ context.Context, post *models.Post) error {
	return p.fail[post.Content]
}

type stubHistory struct{}

func (stubHistory) Create(context.Context, *models.PostingHistory) (int64, error) { return 1, nil }
func (stubHistory) GetByPostID(context.Context, int64) ([]*models.PostingHistory, error) {
	return nil, nil
}

var sweepNow = time.Date(2026, time.November, 3, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *repository.MemoryPostRepository, content string, at time.Time, status models.PostStatus) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &models.Post{
		UserID:        1,
		Content:       content,
		Platforms:     []models.Platform{models.PlatformTwitter},
		ScheduledTime: at,
		Status:        status,
	})
	require.NoError(t, err)
	return id
}

func newSweep(repo *repository.MemoryPostRepository, publisher service.Publisher) *PublishSweepJob {
	ps := service.NewPublishService(repo, stubHistory{}, publisher, events.NewHub())
	j := NewPublishSweepJob(repo, ps, 5*time.Minute)
	j.SetClock(func() time.Time { return sweepNow })
	return j
}

func status(t *testing.T, repo *repository.MemoryPostRepository, id int64) models.PostStatus {
	t.Helper()
	post, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return post.Status
}

func TestSweepPublishesDuePosts(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	due := seed(t, repo, "due", sweepNow.Add(2*time.Minute), models.PostStatusScheduled)
	later := seed(t, repo, "later", sweepNow.Add(10*time.Minute), models.PostStatusScheduled)
	draft := seed(t, repo, "draft", sweepNow.Add(time.Minute), models.PostStatusDraft)

	results := newSweep(repo, stubPublisher{}).Sweep(context.Background())
	assert.Equal(t, []service.PublishResult{{PostID: due, Success: true}}, results)

	assert.Equal(t, models.PostStatusPublished, status(t, repo, due))
	assert.Equal(t, models.PostStatusScheduled, status(t, repo, later))
	assert.Equal(t, models.PostStatusDraft, status(t, repo, draft))
}

func TestSweepMarksFailuresWithoutStopping(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	bad := seed(t, repo, "bad", sweepNow.Add(time.Minute), models.PostStatusScheduled)
	good := seed(t, repo, "good", sweepNow.Add(3*time.Minute), models.PostStatusScheduled)

	results := newSweep(repo, stubPublisher{fail: map[string]error{"bad": errors.New("rejected")}}).Sweep(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, service.PublishResult{PostID: bad, Error: "rejected"}, results[0])
	assert.Equal(t, service.PublishResult{PostID: good, Success: true}, results[1])

	assert.Equal(t, models.PostStatusFailed, status(t, repo, bad))
	assert.Equal(t, models.PostStatusPublished, status(t, repo, good))
}

func TestSweepNeverTouchesPublished(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	id := seed(t, repo, "done", sweepNow.Add(time.Minute), models.PostStatusScheduled)
	j := newSweep(repo, stubPublisher{})

	require.Len(t, j.Sweep(context.Background()), 1)
	assert.Empty(t, j.Sweep(context.Background()))
	assert.Equal(t, models.PostStatusPublished, status(t, repo, id))
}
