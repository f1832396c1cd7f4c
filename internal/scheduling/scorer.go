package scheduling

import (
	"math"
	"math/rand/v2"

	"github.com/maheshrc27/postcal/internal/models"
)

// Weights is a platform's weighted-sum-then-divide scoring formula.
type Weights struct {
	Likes    float64
	Shares   float64
	Comments float64
	Clicks   float64
	Divisor  float64
}

func (w Weights) Apply(e models.Engagement) float64 {
	sum := float64(e.Likes)*w.Likes +
		float64(e.Shares)*w.Shares +
		float64(e.Comments)*w.Comments +
		float64(e.Clicks)*w.Clicks
	return sum / w.Divisor
}

type platformWeights struct {
	platform models.Platform
	weights  Weights
}

// Checked in order; the first platform the post targets wins.
var scoreTable = []platformWeights{
	{models.PlatformTwitter, Weights{Likes: 1, Shares: 2, Comments: 3, Clicks: 0.5, Divisor: 2}},
	{models.PlatformInstagram, Weights{Likes: 1, Shares: 5, Comments: 3, Clicks: 0, Divisor: 3}},
	{models.PlatformLinkedIn, Weights{Likes: 1, Shares: 4, Comments: 3, Clicks: 2, Divisor: 2.5}},
}

var defaultWeights = Weights{Likes: 1, Shares: 2, Comments: 2, Clicks: 1, Divisor: 2}

// WeightsFor picks the scoring formula for a set of target platforms.
func WeightsFor(platforms []models.Platform) Weights {
	for _, entry := range scoreTable {
		for _, p := range platforms {
			if p == entry.platform {
				return entry.weights
			}
		}
	}
	return defaultWeights
}

// PerformanceScore normalizes a post's engagement into 0..100. A post
// without measurements scores as if every count were zero.
func PerformanceScore(platforms []models.Platform, e *models.Engagement) int {
	var counts models.Engagement
	if e != nil {
		counts = *e
	}
	score := WeightsFor(platforms).Apply(counts)
	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

type RepostTime struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

var repostDays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SuggestRepostTime picks a random weekday and a business-hours time
// (8 AM to 7 PM, 5 minute steps). It is a placeholder until repost timing is
// derived from history.
func SuggestRepostTime(r *rand.Rand) RepostTime {
	day := repostDays[r.IntN(len(repostDays))]
	hour := 8 + r.IntN(12)
	minute := r.IntN(12) * 5
	return RepostTime{Day: day, Time: formatClock(hour, minute)}
}
