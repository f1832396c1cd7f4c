package transfer

import (
	"time"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/scheduling"
)

type CalendarRequest struct {
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Frequency float64           `json:"frequency"`
	Platforms []models.Platform `json:"platforms"`
	Topics    []string          `json:"topics"`
	Persist   bool              `json:"persist"`
}

type SuggestionsRequest struct {
	Prompt        string            `json:"prompt"`
	Platforms     []models.Platform `json:"platforms"`
	PreviousPosts []string          `json:"previous_posts"`
}

type PostScore struct {
	Score            int                   `json:"score"`
	Improvements     []string              `json:"improvements"`
	BestTimeToRepost scheduling.RepostTime `json:"best_time_to_repost"`
}
