package transfer

import (
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

type PostCreation struct {
	Content       string            `json:"content"`
	Platforms     []models.Platform `json:"platforms"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Status        models.PostStatus `json:"status"`
	Hashtags      []string          `json:"hashtags"`
	MediaURLs     []string          `json:"media_urls"`
	AIGenerated   bool              `json:"ai_generated"`
}

// PostUpdate is a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Content       *string            `json:"content"`
	Platforms     *[]models.Platform `json:"platforms"`
	ScheduledTime *time.Time         `json:"scheduled_time"`
	Status        *models.PostStatus `json:"status"`
	Hashtags      *[]string          `json:"hashtags"`
	MediaURLs     *[]string          `json:"media_urls"`
}

type Reschedule struct {
	ScheduledTime time.Time `json:"scheduled_time"`
}

type PostList struct {
	Posts []*models.Post `json:"posts"`
}
