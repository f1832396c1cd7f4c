package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

const concurrencyLimit = 10

type PublishSweepJob struct {
	pr       repository.PostRepository
	ps       service.PublishService
	interval time.Duration
	now      func() time.Time
}

func NewPublishSweepJob(pr repository.PostRepository, ps service.PublishService, interval time.Duration) *PublishSweepJob {
	return &PublishSweepJob{
		pr:       pr,
		ps:       ps,
		interval: interval,
		now:      time.Now,
	}
}

// Run is the cron entry point.
func (j *PublishSweepJob) Run() {
	j.Sweep(context.Background())
}

// Sweep publishes every scheduled post due within the next interval. A failed
// post never stops the others; results come back in due order.
func (j *PublishSweepJob) Sweep(ctx context.Context) []service.PublishResult {
	currentTime := j.now()
	windowEnd := currentTime.Add(j.interval)

	posts, err := j.pr.ListDue(ctx, currentTime, windowEnd)
	if err != nil {
		slog.Info(err.Error())
		return nil
	}

	results := make([]service.PublishResult, len(posts))
	var mu sync.Mutex
	published, failed := 0, 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyLimit)

	for i, post := range posts {
		g.Go(func() error {
			res := j.ps.Publish(gctx, post)
			results[i] = res

			mu.Lock()
			if res.Success {
				published++
			} else {
				failed++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("publish sweep finished", "due", len(posts), "published", published, "failed", failed)
	return results
}

// SetClock replaces the job's time source.
func (j *PublishSweepJob) SetClock(now func() time.Time) {
	if now != nil {
		j.now = now
	}
}
