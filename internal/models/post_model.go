package models

import (
	"slices"
	"time"
)

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
)

// Platforms lists every supported platform in enumeration order.
var Platforms = []Platform{PlatformTwitter, PlatformInstagram, PlatformFacebook, PlatformLinkedIn}

func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ValidPlatforms keeps the known platforms of in, in order, without duplicates.
func ValidPlatforms(in []Platform) []Platform {
	var out []Platform
	seen := make(map[Platform]struct{}, len(in))
	for _, p := range in {
		if !p.Valid() {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether a post may move from s to next.
// The lifecycle is draft -> scheduled -> (published | failed); staying in
// the same state is allowed so repeated writes are idempotent.
func (s PostStatus) CanTransition(next PostStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case PostStatusDraft:
		return next == PostStatusScheduled
	case PostStatusScheduled:
		return next == PostStatusPublished || next == PostStatusFailed
	}
	return false
}

// Finished reports whether the post has left the schedule for good.
func (s PostStatus) Finished() bool {
	return s == PostStatusPublished || s == PostStatusFailed
}

type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Clicks   int `json:"clicks"`
}

func (e Engagement) Valid() bool {
	return e.Likes >= 0 && e.Shares >= 0 && e.Comments >= 0 && e.Clicks >= 0
}

type Post struct {
	ID            int64       `db:"id" json:"id"`
	UserID        int64       `db:"user_id" json:"user_id"`
	Content       string      `db:"content" json:"content"`
	Platforms     []Platform  `db:"platforms" json:"platforms"`
	ScheduledTime time.Time   `db:"scheduled_time" json:"scheduled_time"`
	Status        PostStatus  `db:"status" json:"status"` // draft, scheduled, published, failed
	Hashtags      []string    `db:"hashtags" json:"hashtags"`
	MediaURLs     []string    `db:"media_urls" json:"media_urls"`
	Engagement    *Engagement `db:"engagement" json:"engagement"`
	AIGenerated   bool        `db:"ai_generated" json:"ai_generated"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Platforms = slices.Clone(p.Platforms)
	c.Hashtags = slices.Clone(p.Hashtags)
	c.MediaURLs = slices.Clone(p.MediaURLs)
	if p.Engagement != nil {
		e := *p.Engagement
		c.Engagement = &e
	}
	return &c
}

func (p *Post) HasPlatform(platform Platform) bool {
	for _, pl := range p.Platforms {
		if pl == platform {
			return true
		}
	}
	return false
}

// PostFilter scopes a listing. UserID is mandatory; zero values of the
// other fields mean "no constraint".
type PostFilter struct {
	UserID    int64
	Statuses  []PostStatus
	Platforms []Platform
	From      *time.Time
	To        *time.Time
}

// MatchesPlatforms reports whether the post targets any of the filter's
// platforms. An empty platform filter matches every post.
func (f PostFilter) MatchesPlatforms(p *Post) bool {
	if len(f.Platforms) == 0 {
		return true
	}
	for _, want := range f.Platforms {
		if p.HasPlatform(want) {
			return true
		}
	}
	return false
}

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
