package service

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/maheshrc27/postcal/internal/models"
)

func TestPromptGolden(t *testing.T) {
	g := goldie.New(t)

	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{
			name: "suggestions_full",
			req: suggestionsRequest("spring sale", []models.Platform{models.PlatformTwitter, models.PlatformLinkedIn}, "retail", "casual",
				[]string{"First post", "Second post", "Third post", "Fourth post"}),
		},
		{
			name: "calendar_topics",
			req:  calendarRequest(4, []models.Platform{models.PlatformInstagram}, []string{"recipes", "kitchen tips"}, "food", "warm"),
		},
		{
			name: "improvements",
			req: improvementsRequest(&models.Post{
				Content:    "Try our new roast",
				Platforms:  []models.Platform{models.PlatformTwitter},
				Engagement: &models.Engagement{Likes: 5, Shares: 1, Comments: 2, Clicks: 3},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.req.System+"\n---\n"+tt.req.Prompt))
		})
	}
}

func TestPromptParameters(t *testing.T) {
	assert.Equal(t, 1500, suggestionsRequest("", nil, "", "professional", nil).MaxTokens)
	assert.Equal(t, 200, hashtagsRequest("x").MaxTokens)
	assert.Equal(t, 300, improvementsRequest(&models.Post{}).MaxTokens)

	cal := calendarRequest(2, nil, nil, "digital marketing", "professional")
	assert.Equal(t, 0.8, cal.Temperature)
	assert.Equal(t, "You are a social media content calendar generator who creates engaging posts for social media. You create content with a professional tone.", cal.System)
	assert.Contains(t, cal.Prompt, "The content should be relevant to the digital marketing industry.")
}
