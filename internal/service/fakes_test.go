package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
)

type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []GenerateRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.text, g.err
}

func (g *fakeGenerator) last() GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

func missingKeyGenerator() *fakeGenerator {
	return &fakeGenerator{err: apperror.Wrap(apperror.FailedPrecondition, "API configuration error", ErrMissingAPIKey)}
}

type fakeSettingsRepo struct {
	settings map[int64]*models.Settings
	err      error
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID int64) (*models.Settings, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	s, ok := r.settings[userID]
	return s, ok, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *models.Settings) error {
	if r.err != nil {
		return r.err
	}
	if r.settings == nil {
		r.settings = map[int64]*models.Settings{}
	}
	r.settings[s.UserID] = s
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*models.PostingHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, ph *models.PostingHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, ph)
	return int64(len(r.entries)), nil
}

func (r *fakeHistoryRepo) GetByPostID(_ context.Context, postID int64) ([]*models.PostingHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PostingHistory
	for _, ph := range r.entries {
		if ph.PostID == postID {
			out = append(out, ph)
		}
	}
	return out, nil
}

type fakeStorage struct {
	objects map[string][]byte
	err     error
}

func (s *fakeStorage) Upload(_ context.Context, key string, file []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = file
	return "https://media.example.com/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.objects, key)
	return nil
}

type fakeAssetRepo struct {
	nextID int64
	assets map[int64]*models.MediaAsset
}

func (r *fakeAssetRepo) Create(_ context.Context, ma *models.MediaAsset) (int64, error) {
	if r.assets == nil {
		r.assets = map[int64]*models.MediaAsset{}
	}
	r.nextID++
	ma.ID = r.nextID
	ma.CreatedAt = time.Now()
	r.assets[ma.ID] = ma
	return ma.ID, nil
}

func (r *fakeAssetRepo) GetByURL(_ context.Context, url string) (*models.MediaAsset, error) {
	for _, a := range r.assets {
		if a.FileURL == url {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) Remove(_ context.Context, id int64) error {
	delete(r.assets, id)
	return nil
}

type fakeMedia struct {
	deleted []string
}

func (m *fakeMedia) Upload(context.Context, int64, []byte) (*models.MediaAsset, error) {
	return nil, errors.New("not implemented")
}

func (m *fakeMedia) Delete(_ context.Context, _ int64, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

type scheduledCall struct {
	postID int64
	at     time.Time
}

type fakeScheduler struct {
	calls []scheduledCall
}

func (s *fakeScheduler) SchedulePublish(_ context.Context, postID int64, at time.Time) error {
	s.calls = append(s.calls, scheduledCall{postID: postID, at: at})
	return nil
}

type fakePublisher struct {
	failFor map[int64]error
}

func (p *fakePublisher) Publish(_ context.Context, post *models.Post) error {
	return p.failFor[post.ID]
}
