package scheduling

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/models"
)

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name       string
		platforms  []models.Platform
		engagement *models.Engagement
		want       int
	}{
		{
			name:       "twitter",
			platforms:  []models.Platform{models.PlatformTwitter},
			engagement: &models.Engagement{Likes: 10, Shares: 5, Comments: 2, Clicks: 0},
			want:       13,
		},
		{
			name:       "instagram ignores clicks",
			platforms:  []models.Platform{models.PlatformInstagram},
			engagement: &models.Engagement{Likes: 10, Shares: 2, Comments: 3, Clicks: 100},
			want:       10, // 29 / 3
		},
		{
			name:       "linkedin",
			platforms:  []models.Platform{models.PlatformLinkedIn},
			engagement: &models.Engagement{Likes: 10, Shares: 5, Comments: 2, Clicks: 5},
			want:       18, // 46 / 2.5
		},
		{
			name:       "facebook uses default weights",
			platforms:  []models.Platform{models.PlatformFacebook},
			engagement: &models.Engagement{Likes: 10, Shares: 5, Comments: 2, Clicks: 4},
			want:       14,
		},
		{
			name:       "twitter outranks instagram regardless of order",
			platforms:  []models.Platform{models.PlatformInstagram, models.PlatformTwitter},
			engagement: &models.Engagement{Likes: 10, Shares: 5, Comments: 2},
			want:       13,
		},
		{
			name:       "instagram outranks linkedin",
			platforms:  []models.Platform{models.PlatformLinkedIn, models.PlatformInstagram},
			engagement: &models.Engagement{Comments: 5},
			want:       5, // linkedin weights would give 6
		},
		{
			name:       "clamped to 100",
			platforms:  []models.Platform{models.PlatformTwitter},
			engagement: &models.Engagement{Likes: 1000},
			want:       100,
		},
		{
			name:      "missing engagement scores zero",
			platforms: []models.Platform{models.PlatformTwitter},
			want:      0,
		},
		{
			name:       "half rounds up",
			platforms:  []models.Platform{models.PlatformTwitter},
			engagement: &models.Engagement{Likes: 3},
			want:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerformanceScore(tt.platforms, tt.engagement))
		})
	}
}

func TestWeightsFor(t *testing.T) {
	assert.Equal(t, 2.0, WeightsFor([]models.Platform{models.PlatformTwitter}).Divisor)
	assert.Equal(t, 3.0, WeightsFor([]models.Platform{models.PlatformInstagram}).Divisor)
	assert.Equal(t, 2.5, WeightsFor([]models.Platform{models.PlatformLinkedIn}).Divisor)
	assert.Equal(t, defaultWeights, WeightsFor([]models.Platform{models.PlatformFacebook}))
	assert.Equal(t, defaultWeights, WeightsFor(nil))
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)

func TestSuggestRepostTime_BusinessHours(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	days := map[string]bool{}

	for i := 0; i < 500; i++ {
		rt := SuggestRepostTime(r)
		days[rt.Day] = true

		m := clockPattern.FindStringSubmatch(rt.Time)
		require.NotNil(t, m, rt.Time)
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if m[3] == "PM" && hour != 12 {
			hour += 12
		}
		if m[3] == "AM" && hour == 12 {
			hour = 0
		}

		assert.GreaterOrEqual(t, hour, 8)
		assert.LessOrEqual(t, hour, 19)
		assert.Zero(t, minute%5)
		assert.Less(t, minute, 60)
	}

	assert.Len(t, days, 7)
}

func TestSuggestRepostTime_DeterministicWithSeed(t *testing.T) {
	a := SuggestRepostTime(rand.New(rand.NewPCG(1, 2)))
	b := SuggestRepostTime(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a, b)
}
