package scheduling

import (
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

const (
	eventTitleLength = 30
	eventDuration    = 30 * time.Minute
)

var platformColors = map[models.Platform]string{
	models.PlatformTwitter:   "#1DA1F2",
	models.PlatformInstagram: "#E1306C",
	models.PlatformFacebook:  "#4267B2",
	models.PlatformLinkedIn:  "#0077B5",
}

type CalendarEvent struct {
	ID            int64             `json:"id"`
	PostID        int64             `json:"post_id"`
	UserID        int64             `json:"user_id"`
	Title         string            `json:"title"`
	Start         time.Time         `json:"start"`
	End           time.Time         `json:"end"`
	AllDay        bool              `json:"all_day"`
	PlatformColor string            `json:"platform_color"`
	Status        models.PostStatus `json:"status"`
}

// ToCalendarEvents projects posts onto 30 minute calendar slots coloured by
// their first platform.
func ToCalendarEvents(posts []*models.Post) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(posts))
	for _, post := range posts {
		primary := models.PlatformTwitter
		if len(post.Platforms) > 0 {
			primary = post.Platforms[0]
		}
		color, ok := platformColors[primary]
		if !ok {
			color = platformColors[models.PlatformTwitter]
		}

		events = append(events, CalendarEvent{
			ID:            post.ID,
			PostID:        post.ID,
			UserID:        post.UserID,
			Title:         eventTitle(post.Content),
			Start:         post.ScheduledTime,
			End:           post.ScheduledTime.Add(eventDuration),
			PlatformColor: color,
			Status:        post.Status,
		})
	}
	return events
}

func eventTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= eventTitleLength {
		return content
	}
	return string(runes[:eventTitleLength]) + "..."
}
