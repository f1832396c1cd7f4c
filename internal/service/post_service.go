package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/events"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error)
	Get(ctx context.Context, userID, postID int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) (*models.Post, error)
	Reschedule(ctx context.Context, userID, postID int64, at time.Time) (*models.Post, error)
	UpdateEngagement(ctx context.Context, userID, postID int64, e models.Engagement) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
	Subscribe(ctx context.Context, filter models.PostFilter) (<-chan []*models.Post, error)
}

type postService struct {
	pr        repository.PostRepository
	media     MediaService
	scheduler PublishScheduler
	hub       *events.Hub
}

// NewPostService wires the post store. media and scheduler may be nil, in
// which case attached media is left in storage and scheduled posts rely on
// the sweep alone.
func NewPostService(pr repository.PostRepository, media MediaService, scheduler PublishScheduler, hub *events.Hub) PostService {
	if hub == nil {
		hub = events.NewHub()
	}
	return &postService{
		pr:        pr,
		media:     media,
		scheduler: scheduler,
		hub:       hub,
	}
}

func (s *postService) Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if pc == nil {
		return nil, apperror.New(apperror.InvalidArgument, "post data is required")
	}
	if strings.TrimSpace(pc.Content) == "" {
		return nil, apperror.New(apperror.InvalidArgument, "content cannot be empty")
	}
	platforms := models.ValidPlatforms(pc.Platforms)
	if len(platforms) == 0 {
		return nil, apperror.New(apperror.InvalidArgument, "at least one supported platform is required")
	}
	if pc.ScheduledTime.IsZero() {
		return nil, apperror.New(apperror.InvalidArgument, "scheduled_time is required")
	}
	status := pc.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !status.Valid() {
		return nil, apperror.New(apperror.InvalidArgument, "unknown status "+string(status))
	}

	post := &models.Post{
		UserID:        userID,
		Content:       pc.Content,
		Platforms:     platforms,
		ScheduledTime: pc.ScheduledTime,
		Status:        status,
		Hashtags:      normalizeHashtags(pc.Hashtags),
		MediaURLs:     nonEmptyStrings(pc.MediaURLs),
		AIGenerated:   pc.AIGenerated,
	}

	if _, err := s.pr.Create(ctx, post); err != nil {
		return nil, internalError("Error creating post", err)
	}

	s.schedule(ctx, post)
	s.hub.Notify(userID)
	return post, nil
}

func (s *postService) Get(ctx context.Context, userID, postID int64) (*models.Post, error) {
	return ownedPost(ctx, s.pr, userID, postID)
}

// List applies status and date range in the store, then filters platform
// membership here.
func (s *postService) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	if filter.UserID == 0 {
		return nil, errUnauthenticated
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperror.New(apperror.InvalidArgument, "start must not be after end")
	}
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, apperror.New(apperror.InvalidArgument, "unknown status "+string(st))
		}
	}

	posts, err := s.pr.List(ctx, filter)
	if err != nil {
		return nil, internalError("Error listing posts", err)
	}

	filtered := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if filter.MatchesPlatforms(post) {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}

func (s *postService) Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) (*models.Post, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if pu == nil {
		return nil, apperror.New(apperror.InvalidArgument, "update data is required")
	}
	post, err := ownedPost(ctx, s.pr, userID, postID)
	if err != nil {
		return nil, err
	}
	previous := post.Status
	if previous.Finished() && (pu.Content != nil || pu.Platforms != nil || pu.ScheduledTime != nil) {
		return nil, apperror.New(apperror.FailedPrecondition, "a "+string(previous)+" post cannot be edited")
	}

	if pu.Content != nil {
		if strings.TrimSpace(*pu.Content) == "" {
			return nil, apperror.New(apperror.InvalidArgument, "content cannot be empty")
		}
		post.Content = *pu.Content
	}
	if pu.Platforms != nil {
		platforms := models.ValidPlatforms(*pu.Platforms)
		if len(platforms) == 0 {
			return nil, apperror.New(apperror.InvalidArgument, "at least one supported platform is required")
		}
		post.Platforms = platforms
	}
	if pu.ScheduledTime != nil {
		if pu.ScheduledTime.IsZero() {
			return nil, apperror.New(apperror.InvalidArgument, "scheduled_time is required")
		}
		post.ScheduledTime = *pu.ScheduledTime
	}
	if pu.Status != nil {
		if !pu.Status.Valid() {
			return nil, apperror.New(apperror.InvalidArgument, "unknown status "+string(*pu.Status))
		}
		if !post.Status.CanTransition(*pu.Status) {
			return nil, apperror.New(apperror.FailedPrecondition, "cannot move post from "+string(post.Status)+" to "+string(*pu.Status))
		}
		post.Status = *pu.Status
	}
	if pu.Hashtags != nil {
		post.Hashtags = normalizeHashtags(*pu.Hashtags)
	}
	if pu.MediaURLs != nil {
		post.MediaURLs = nonEmptyStrings(*pu.MediaURLs)
	}

	ok, err := s.pr.Update(ctx, post, previous)
	if err != nil {
		return nil, internalError("Error updating post", err)
	}
	if !ok {
		return nil, errConcurrentChange
	}

	if post.Status == models.PostStatusScheduled && (previous != models.PostStatusScheduled || pu.ScheduledTime != nil) {
		s.schedule(ctx, post)
	}
	s.hub.Notify(userID)
	return post, nil
}

// Reschedule sets a new time and marks the post scheduled. Repeating the
// call with the same time leaves the post unchanged.
func (s *postService) Reschedule(ctx context.Context, userID, postID int64, at time.Time) (*models.Post, error) {
	if at.IsZero() {
		return nil, apperror.New(apperror.InvalidArgument, "scheduled_time is required")
	}
	post, err := ownedPost(ctx, s.pr, userID, postID)
	if err != nil {
		return nil, err
	}
	if !post.Status.CanTransition(models.PostStatusScheduled) {
		return nil, apperror.New(apperror.FailedPrecondition, "a "+string(post.Status)+" post cannot be rescheduled")
	}

	previous := post.Status
	post.ScheduledTime = at
	post.Status = models.PostStatusScheduled
	ok, err := s.pr.Update(ctx, post, previous)
	if err != nil {
		return nil, internalError("Error rescheduling post", err)
	}
	if !ok {
		return nil, errConcurrentChange
	}

	s.schedule(ctx, post)
	s.hub.Notify(userID)
	return post, nil
}

// UpdateEngagement stores measured engagement for a published post.
func (s *postService) UpdateEngagement(ctx context.Context, userID, postID int64, e models.Engagement) (*models.Post, error) {
	if !e.Valid() {
		return nil, apperror.New(apperror.InvalidArgument, "engagement counts must not be negative")
	}
	post, err := ownedPost(ctx, s.pr, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPublished {
		return nil, apperror.New(apperror.FailedPrecondition, "engagement can only be recorded for published posts")
	}

	post.Engagement = &e
	ok, err := s.pr.Update(ctx, post, models.PostStatusPublished)
	if err != nil {
		return nil, internalError("Error updating engagement", err)
	}
	if !ok {
		return nil, errConcurrentChange
	}

	s.hub.Notify(userID)
	return post, nil
}

// Remove deletes the post and then its media. Media deletion failures are
// logged and do not undo the removal.
func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	post, err := ownedPost(ctx, s.pr, userID, postID)
	if err != nil {
		return err
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return internalError("Error removing post", err)
	}

	if s.media != nil {
		for _, url := range post.MediaURLs {
			if err := s.media.Delete(ctx, userID, url); err != nil {
				slog.Info("removing post media", "post_id", postID, "url", url, "error", err.Error())
			}
		}
	}

	s.hub.Notify(userID)
	return nil
}

// Subscribe sends the current listing for filter, then a fresh listing
// after every change to the user's posts, until ctx is done.
func (s *postService) Subscribe(ctx context.Context, filter models.PostFilter) (<-chan []*models.Post, error) {
	sub := s.hub.Subscribe(filter.UserID)

	initial, err := s.List(ctx, filter)
	if err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan []*models.Post, 1)
	out <- initial

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C():
				if !ok {
					return
				}
				posts, err := s.List(ctx, filter)
				if err != nil {
					slog.Info("refreshing post snapshot", "user_id", filter.UserID, "error", err.Error())
					continue
				}
				select {
				case out <- posts:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *postService) schedule(ctx context.Context, post *models.Post) {
	if s.scheduler == nil || post.Status != models.PostStatusScheduled {
		return
	}
	if err := s.scheduler.SchedulePublish(ctx, post.ID, post.ScheduledTime); err != nil {
		slog.Info("enqueueing post", "post_id", post.ID, "error", err.Error())
	}
}

func nonEmptyStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
