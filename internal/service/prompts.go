package service

import (
	"fmt"
	"strings"

	"github.com/maheshrc27/postcal/internal/models"
)

const (
	suggestionsSystem  = "You are a social media marketing expert who creates engaging, professional content."
	hashtagsSystem     = "You are a social media marketing expert who knows trending hashtags."
	improvementsSystem = "You are a social media marketing expert who analyzes post performance and provides concise, actionable suggestions."

	maxExamplePosts = 3
)

func suggestionsRequest(prompt string, platforms []models.Platform, industry, tone string, previous []string) GenerateRequest {
	var b strings.Builder
	b.WriteString("Generate 3 social media post ideas")
	if len(platforms) > 0 {
		fmt.Fprintf(&b, " for %s", joinPlatforms(platforms))
	}
	if industry != "" {
		fmt.Fprintf(&b, " in the %s industry", industry)
	}
	fmt.Fprintf(&b, " with a %s tone", tone)
	if prompt != "" {
		fmt.Fprintf(&b, " about %s", prompt)
	}
	b.WriteString(". Each post should be engaging and optimized for social media.")

	if len(previous) > 0 {
		b.WriteString("\n\nHere are examples of previous successful posts for reference:")
		for i := 0; i < len(previous) && i < maxExamplePosts; i++ {
			fmt.Fprintf(&b, "\n- %s", previous[i])
		}
	}

	return GenerateRequest{
		System:      suggestionsSystem,
		Prompt:      b.String(),
		MaxTokens:   1500,
		Temperature: 0.7,
	}
}

func hashtagsRequest(industry string) GenerateRequest {
	return GenerateRequest{
		System:      hashtagsSystem,
		Prompt:      fmt.Sprintf("Generate 10 popular and trending hashtags for the %s industry. Return only the hashtags without '#' symbol, separated by commas.", industry),
		MaxTokens:   200,
		Temperature: 0.7,
	}
}

func improvementsRequest(post *models.Post) GenerateRequest {
	var e models.Engagement
	if post.Engagement != nil {
		e = *post.Engagement
	}
	prompt := fmt.Sprintf(
		"Analyze this social media post and provide 3 brief suggestions for improving engagement. "+
			"The post was published on %s and received %d likes, %d shares, %d comments, and %d clicks."+
			"\n\nPost content: \"%s\"\n\nProvide only 3 short, actionable suggestions, each on a new line.",
		joinPlatforms(post.Platforms), e.Likes, e.Shares, e.Comments, e.Clicks, post.Content,
	)
	return GenerateRequest{
		System:      improvementsSystem,
		Prompt:      prompt,
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

func calendarRequest(n int, platforms []models.Platform, topics []string, industry, tone string) GenerateRequest {
	audience := "social media"
	if len(platforms) > 0 {
		audience = joinPlatforms(platforms)
	}

	focus := fmt.Sprintf("The content should be relevant to the %s industry.", industry)
	if len(topics) > 0 {
		focus = fmt.Sprintf("The content should focus on these topics: %s.", strings.Join(topics, ", "))
	}

	return GenerateRequest{
		System: fmt.Sprintf("You are a social media content calendar generator who creates engaging posts for %s. You create content with a %s tone.", audience, tone),
		Prompt: fmt.Sprintf(
			"Generate %d unique social media posts for a content calendar. %s "+
				"Each post should include the main content and suggested hashtags (maximum 5 hashtags). "+
				`Format each post as: "CONTENT: [the post content] HASHTAGS: [hashtag1, hashtag2, etc.]"`,
			n, focus,
		),
		MaxTokens:   1500,
		Temperature: 0.8,
	}
}

func joinPlatforms(platforms []models.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
