// Package scheduling holds the pure posting-time, scoring and calendar
// computations. Nothing here touches storage or the network.
package scheduling

import (
	"fmt"
	"math"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

// MinPublishedPosts is the history needed before engagement data is trusted.
const MinPublishedPosts = 6

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type PostingTime struct {
	Platform        models.Platform `json:"platform"`
	Day             string          `json:"day"`
	Time            string          `json:"time"`
	EngagementScore *int            `json:"engagement_score,omitempty"`
}

var fallbackPostingTimes = []PostingTime{
	{Platform: models.PlatformTwitter, Day: "Wednesday", Time: "12:00 PM"},
	{Platform: models.PlatformInstagram, Day: "Saturday", Time: "9:00 AM"},
	{Platform: models.PlatformFacebook, Day: "Sunday", Time: "3:00 PM"},
	{Platform: models.PlatformLinkedIn, Day: "Tuesday", Time: "8:00 AM"},
}

// FallbackPostingTimes returns the general best-practice times, one per
// platform in enumeration order.
func FallbackPostingTimes() []PostingTime {
	out := make([]PostingTime, len(fallbackPostingTimes))
	copy(out, fallbackPostingTimes)
	return out
}

// EngagementScore weighs interactions by effort: a comment counts three
// times a like, a share twice.
func EngagementScore(e models.Engagement) float64 {
	return float64(e.Likes) + float64(e.Shares)*2 + float64(e.Comments)*3 + float64(e.Clicks)
}

type bucket struct {
	sum   float64
	count int
}

type weekGrid [7][24]bucket

// BestPostingTimes proposes the send time with the highest mean engagement
// for every platform that has measured history. Weekday and hour are taken
// in loc. With too little history the fallback table is returned.
func BestPostingTimes(posts []*models.Post, loc *time.Location) []PostingTime {
	if loc == nil {
		loc = time.UTC
	}

	published := 0
	grids := make(map[models.Platform]*weekGrid)
	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}
		published++
		if post.Engagement == nil {
			continue
		}

		at := post.ScheduledTime.In(loc)
		day, hour := int(at.Weekday()), at.Hour()
		score := EngagementScore(*post.Engagement)

		for _, platform := range post.Platforms {
			if !platform.Valid() {
				continue
			}
			grid, ok := grids[platform]
			if !ok {
				grid = &weekGrid{}
				grids[platform] = grid
			}
			grid[day][hour].sum += score
			grid[day][hour].count++
		}
	}

	if published < MinPublishedPosts || len(grids) == 0 {
		return FallbackPostingTimes()
	}

	var out []PostingTime
	for _, platform := range models.Platforms {
		grid, ok := grids[platform]
		if !ok {
			continue
		}
		out = append(out, bestInGrid(platform, grid))
	}
	return out
}

func bestInGrid(platform models.Platform, grid *weekGrid) PostingTime {
	bestDay, bestHour, bestScore := 0, 9, 0.0

	// Strict comparison keeps the earliest bucket on ties.
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			b := grid[day][hour]
			if b.count == 0 {
				continue
			}
			if avg := b.sum / float64(b.count); avg > bestScore {
				bestDay, bestHour, bestScore = day, hour, avg
			}
		}
	}

	score := int(math.Round(bestScore))
	return PostingTime{
		Platform:        platform,
		Day:             weekdayNames[bestDay],
		Time:            formatClock(bestHour, 0),
		EngagementScore: &score,
	}
}

// formatClock renders a 24h hour and minute as "h:mm AM".
func formatClock(hour, minute int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, suffix)
}
