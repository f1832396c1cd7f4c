package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

// MemoryPostRepository is a PostRepository kept in process memory. It
// stores copies so callers never share state with the store.
type MemoryPostRepository struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.Post
	now    func() time.Time
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts: make(map[int64]*models.Post),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryPostRepository) Create(_ context.Context, post *models.Post) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(post), nil
}

func (r *MemoryPostRepository) CreateBatch(_ context.Context, posts []*models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, post := range posts {
		r.insert(post)
	}
	return nil
}

func (r *MemoryPostRepository) insert(post *models.Post) int64 {
	r.nextID++
	now := r.now()
	post.ID = r.nextID
	post.CreatedAt = now
	post.UpdatedAt = now
	stored := post.Clone()
	stored.Hashtags = nonNil(stored.Hashtags)
	stored.MediaURLs = nonNil(stored.MediaURLs)
	r.posts[post.ID] = stored
	return post.ID
}

func (r *MemoryPostRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return post.Clone(), nil
}

// List mirrors the SQL listing: platforms in the filter are ignored.
func (r *MemoryPostRepository) List(_ context.Context, filter models.PostFilter) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := []*models.Post{}
	for _, post := range r.posts {
		if post.UserID != filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, post.Status) {
			continue
		}
		if filter.From != nil && post.ScheduledTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && post.ScheduledTime.After(*filter.To) {
			continue
		}
		posts = append(posts, post.Clone())
	}
	sortByScheduledTime(posts)
	return posts, nil
}

func (r *MemoryPostRepository) ListDue(_ context.Context, from, to time.Time) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := []*models.Post{}
	for _, post := range r.posts {
		if post.Status != models.PostStatusScheduled {
			continue
		}
		if post.ScheduledTime.Before(from) || post.ScheduledTime.After(to) {
			continue
		}
		posts = append(posts, post.Clone())
	}
	sortByScheduledTime(posts)
	return posts, nil
}

func (r *MemoryPostRepository) Update(_ context.Context, post *models.Post, expected models.PostStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[post.ID]
	if !ok || existing.Status != expected {
		return false, nil
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = r.now()
	r.posts[post.ID] = post.Clone()
	return true, nil
}

func (r *MemoryPostRepository) TransitionStatus(_ context.Context, id int64, from, to models.PostStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Status != from {
		return false, nil
	}
	post.Status = to
	post.UpdatedAt = r.now()
	return true, nil
}

func (r *MemoryPostRepository) Remove(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func containsStatus(statuses []models.PostStatus, s models.PostStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

func sortByScheduledTime(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].ScheduledTime.Equal(posts[j].ScheduledTime) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].ScheduledTime.Before(posts[j].ScheduledTime)
	})
}
