package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/scheduling"
	"github.com/maheshrc27/postcal/internal/transfer"
)

const maxImprovements = 3

type AnalyticsService interface {
	BestPostingTimes(ctx context.Context, userID int64) ([]scheduling.PostingTime, error)
	ScorePost(ctx context.Context, userID, postID int64) (*transfer.PostScore, error)
}

type analyticsService struct {
	pr  repository.PostRepository
	gen TextGenerator
	loc *time.Location

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewAnalyticsService builds the analyzer and scorer. rnd drives the repost
// time suggestion; nil seeds from the clock.
func NewAnalyticsService(pr repository.PostRepository, gen TextGenerator, loc *time.Location, rnd *rand.Rand) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &analyticsService{pr: pr, gen: gen, loc: loc, rnd: rnd}
}

func (s *analyticsService) BestPostingTimes(ctx context.Context, userID int64) ([]scheduling.PostingTime, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}

	posts, err := s.pr.List(ctx, models.PostFilter{
		UserID:   userID,
		Statuses: []models.PostStatus{models.PostStatusPublished},
	})
	if err != nil {
		return nil, internalError("Error determining optimal posting times", err)
	}

	return scheduling.BestPostingTimes(posts, s.loc), nil
}

func (s *analyticsService) ScorePost(ctx context.Context, userID, postID int64) (*transfer.PostScore, error) {
	post, err := ownedPost(ctx, s.pr, userID, postID)
	if err != nil {
		return nil, err
	}

	score := scheduling.PerformanceScore(post.Platforms, post.Engagement)

	text, err := s.gen.Generate(ctx, improvementsRequest(post))
	if err != nil {
		return nil, internalError("Error analyzing post performance", err)
	}
	improvements := scheduling.ParseImprovements(text, maxImprovements)
	if improvements == nil {
		improvements = []string{}
	}

	s.mu.Lock()
	repost := scheduling.SuggestRepostTime(s.rnd)
	s.mu.Unlock()

	return &transfer.PostScore{
		Score:            score,
		Improvements:     improvements,
		BestTimeToRepost: repost,
	}, nil
}
