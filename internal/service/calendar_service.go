package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/scheduling"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type CalendarService interface {
	GenerateCalendar(ctx context.Context, userID int64, req *transfer.CalendarRequest) ([]*models.Post, error)
	CalendarEvents(ctx context.Context, userID int64, from, to *time.Time) ([]scheduling.CalendarEvent, error)
}

type calendarService struct {
	pr  repository.PostRepository
	sr  repository.SettingsRepository
	gen TextGenerator
	loc *time.Location
	hub *events.Hub

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCalendarService(pr repository.PostRepository, sr repository.SettingsRepository, gen TextGenerator, loc *time.Location, hub *events.Hub, rnd *rand.Rand) CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	return &calendarService{pr: pr, sr: sr, gen: gen, loc: loc, hub: hub, rnd: rnd}
}

// GenerateCalendar spreads draft posts across the requested range and fills
// them with generated content. With Persist set the drafts are stored.
func (s *calendarService) GenerateCalendar(ctx context.Context, userID int64, req *transfer.CalendarRequest) ([]*models.Post, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if req == nil || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperror.New(apperror.InvalidArgument, "start_date and end_date are required")
	}

	start, end := req.StartDate.In(s.loc), req.EndDate.In(s.loc)
	n, err := scheduling.PlanCalendar(start, end, req.Frequency)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrTooManyPosts):
			return nil, apperror.Wrap(apperror.InvalidArgument, "too many posts requested: at most 30 posts can be generated at once", err)
		default:
			return nil, apperror.New(apperror.InvalidArgument, err.Error())
		}
	}

	settings, err := s.settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	industry := settings.IndustryOr(models.DefaultIndustry)

	s.mu.Lock()
	times := scheduling.DistributeTimes(start, end, n, s.rnd)
	s.mu.Unlock()

	text, err := s.gen.Generate(ctx, calendarRequest(n, req.Platforms, req.Topics, industry, settings.Tone()))
	if err != nil {
		return nil, internalError("Error generating content calendar", err)
	}

	blocks, err := scheduling.ParseContentBlocks(text)
	if err != nil {
		return nil, internalError("Error processing AI response", err)
	}
	if len(blocks) != len(times) {
		slog.Info("calendar content count mismatch", "user_id", userID, "requested", len(times), "received", len(blocks))
	}

	platforms := models.ValidPlatforms(req.Platforms)
	if len(platforms) == 0 {
		platforms = []models.Platform{models.PlatformTwitter}
	}

	count := min(len(times), len(blocks))
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, &models.Post{
			UserID:        userID,
			Content:       blocks[i].Content,
			Platforms:     append([]models.Platform(nil), platforms...),
			ScheduledTime: times[i],
			Status:        models.PostStatusDraft,
			Hashtags:      blocks[i].Hashtags,
			MediaURLs:     []string{},
			AIGenerated:   true,
		})
	}

	if req.Persist && len(posts) > 0 {
		if err := s.pr.CreateBatch(ctx, posts); err != nil {
			return nil, internalError("Error saving content calendar", err)
		}
		if s.hub != nil {
			s.hub.Notify(userID)
		}
	}

	return posts, nil
}

func (s *calendarService) CalendarEvents(ctx context.Context, userID int64, from, to *time.Time) ([]scheduling.CalendarEvent, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, apperror.New(apperror.InvalidArgument, "start must not be after end")
	}

	posts, err := s.pr.List(ctx, models.PostFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, internalError("Error listing posts", err)
	}
	return scheduling.ToCalendarEvents(posts), nil
}

func (s *calendarService) settings(ctx context.Context, userID int64) (*models.Settings, error) {
	if s.sr == nil {
		return models.DefaultSettings(userID), nil
	}
	settings, ok, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Error getting user settings", err)
	}
	if !ok {
		return models.DefaultSettings(userID), nil
	}
	return settings, nil
}
