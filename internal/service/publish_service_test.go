package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

func scheduledPost(t *testing.T, repo *repository.MemoryPostRepository, userID int64) *models.Post {
	t.Helper()
	return seedPost(t, repo, &models.Post{
		UserID:        userID,
		Content:       "ship it",
		Platforms:     []models.Platform{models.PlatformTwitter},
		ScheduledTime: scheduledAt,
		Status:        models.PostStatusScheduled,
	})
}

func TestPublishMarksPublished(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryPostRepository()
	history := &fakeHistoryRepo{}
	hub := events.NewHub()
	sub := hub.Subscribe(1)
	defer sub.Close()

	post := scheduledPost(t, repo, 1)
	res := NewPublishService(repo, history, &fakePublisher{}, hub).Publish(ctx, post)
	assert.Equal(t, PublishResult{PostID: post.ID, Success: true}, res)

	stored, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, stored.Status)

	require.Len(t, history.entries, 1)
	assert.Equal(t, models.PostStatusPublished, history.entries[0].Status)

	select {
	case <-sub.C():
	default:
		t.Fatal("subscriber was not notified")
	}
}

func TestPublishDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryPostRepository()
	history := &fakeHistoryRepo{}

	post := scheduledPost(t, repo, 1)
	publisher := &fakePublisher{failFor: map[int64]error{post.ID: errors.New("platform rejected post")}}
	res := NewPublishService(repo, history, publisher, nil).Publish(ctx, post)
	assert.False(t, res.Success)
	assert.Equal(t, "platform rejected post", res.Error)

	stored, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusFailed, stored.Status)
	require.Len(t, history.entries, 1)
	assert.Equal(t, "platform rejected post", history.entries[0].ErrorMessage)
}

func TestPublishNeverRepublishes(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryPostRepository()
	history := &fakeHistoryRepo{}
	s := NewPublishService(repo, history, &fakePublisher{}, nil)

	post := scheduledPost(t, repo, 1)
	require.True(t, s.Publish(ctx, post).Success)

	// A stale copy still says scheduled.
	res := s.Publish(ctx, post)
	assert.False(t, res.Success)
	assert.Equal(t, "post is no longer scheduled", res.Error)
	assert.Len(t, history.entries, 1)

	draft := seedPost(t, repo, &models.Post{UserID: 1, Content: "d", Platforms: []models.Platform{models.PlatformTwitter}, ScheduledTime: scheduledAt, Status: models.PostStatusDraft})
	res = s.Publish(ctx, draft)
	assert.Equal(t, "post is draft, not scheduled", res.Error)
}
