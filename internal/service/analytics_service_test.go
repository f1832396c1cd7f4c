package service

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/scheduling"
)

func seedPost(t *testing.T, repo *repository.MemoryPostRepository, p *models.Post) *models.Post {
	t.Helper()
	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	p.ID = id
	return p
}

func TestBestPostingTimesFallsBackWithoutHistory(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	s := NewAnalyticsService(repo, &fakeGenerator{}, time.UTC, nil)

	got, err := s.BestPostingTimes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, scheduling.FallbackPostingTimes(), got)

	_, err = s.BestPostingTimes(context.Background(), 0)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}

func TestBestPostingTimesUsesPublishedHistory(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	monday := time.Date(2026, time.October, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		seedPost(t, repo, &models.Post{
			UserID:        1,
			Content:       "history",
			Platforms:     []models.Platform{models.PlatformTwitter},
			ScheduledTime: monday.AddDate(0, 0, 7*i),
			Status:        models.PostStatusPublished,
			Engagement:    &models.Engagement{Likes: 10},
		})
	}
	seedPost(t, repo, &models.Post{
		UserID:        1,
		Content:       "draft",
		Platforms:     []models.Platform{models.PlatformTwitter},
		ScheduledTime: monday.Add(5 * time.Hour),
		Status:        models.PostStatusDraft,
		Engagement:    &models.Engagement{Likes: 1000},
	})

	s := NewAnalyticsService(repo, &fakeGenerator{}, time.UTC, nil)
	got, err := s.BestPostingTimes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.PlatformTwitter, got[0].Platform)
	assert.Equal(t, "Monday", got[0].Day)
	assert.Equal(t, "10:00 AM", got[0].Time)
}

func TestScorePost(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	post := seedPost(t, repo, &models.Post{
		UserID:        1,
		Content:       "Our new release is live",
		Platforms:     []models.Platform{models.PlatformTwitter},
		ScheduledTime: scheduledAt,
		Status:        models.PostStatusPublished,
		Engagement:    &models.Engagement{Likes: 14, Shares: 2, Comments: 2, Clicks: 4},
	})
	gen := &fakeGenerator{text: "Ask a question\n1. Numbered aside\nAdd an image\n\n- Bullet aside\nPost earlier\nExtra"}
	s := NewAnalyticsService(repo, gen, time.UTC, rand.New(rand.NewPCG(7, 7)))

	score, err := s.ScorePost(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, score.Score)
	assert.Equal(t, []string{"Ask a question", "Add an image", "Post earlier"}, score.Improvements)
	assert.NotEmpty(t, score.BestTimeToRepost.Day)
	assert.NotEmpty(t, score.BestTimeToRepost.Time)
	assert.Contains(t, gen.last().Prompt, "received 14 likes, 2 shares, 2 comments, and 4 clicks")
}

func TestScorePostErrors(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	post := seedPost(t, repo, &models.Post{
		UserID:        1,
		Content:       "x",
		Platforms:     []models.Platform{models.PlatformInstagram},
		ScheduledTime: scheduledAt,
		Status:        models.PostStatusPublished,
	})
	ctx := context.Background()

	s := NewAnalyticsService(repo, missingKeyGenerator(), time.UTC, nil)
	_, err := s.ScorePost(ctx, 1, post.ID)
	assert.Equal(t, apperror.FailedPrecondition, apperror.KindOf(err))

	_, err = s.ScorePost(ctx, 2, post.ID)
	assert.Equal(t, apperror.PermissionDenied, apperror.KindOf(err))

	_, err = s.ScorePost(ctx, 1, post.ID+1)
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))
}

func TestScorePostEmptyImprovements(t *testing.T) {
	repo := repository.NewMemoryPostRepository()
	post := seedPost(t, repo, &models.Post{
		UserID:        1,
		Content:       "x",
		Platforms:     []models.Platform{models.PlatformFacebook},
		ScheduledTime: scheduledAt,
		Status:        models.PostStatusPublished,
	})
	s := NewAnalyticsService(repo, &fakeGenerator{text: "  \n "}, time.UTC, nil)

	score, err := s.ScorePost(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Score)
	assert.NotNil(t, score.Improvements)
	assert.Empty(t, score.Improvements)
}
