package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/transfer"
)

func TestSuggestions(t *testing.T) {
	gen := &fakeGenerator{text: "1. First idea\n2. Second idea\n3. Third idea"}
	settings := &fakeSettingsRepo{settings: map[int64]*models.Settings{1: {UserID: 1, Industry: "coffee", TonePreference: "friendly"}}}
	s := NewAssistantService(settings, gen)

	got, err := s.Suggestions(context.Background(), 1, &transfer.SuggestionsRequest{
		Prompt:        " autumn menu ",
		Platforms:     []models.Platform{models.PlatformInstagram, "myspace"},
		PreviousPosts: []string{"Latte art Monday", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First idea", "Second idea", "Third idea"}, got)

	prompt := gen.last().Prompt
	assert.Contains(t, prompt, "for instagram in the coffee industry with a friendly tone about autumn menu.")
	assert.Contains(t, prompt, "\n- Latte art Monday")
	assert.NotContains(t, prompt, "myspace")
}

func TestSuggestionsWithoutSettings(t *testing.T) {
	gen := &fakeGenerator{text: "Only one paragraph"}
	s := NewAssistantService(&fakeSettingsRepo{}, gen)

	got, err := s.Suggestions(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only one paragraph"}, got)
	assert.Equal(t, "Generate 3 social media post ideas with a professional tone. Each post should be engaging and optimized for social media.", gen.last().Prompt)
}

func TestSuggestionsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewAssistantService(nil, &fakeGenerator{}).Suggestions(ctx, 0, nil)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))

	_, err = NewAssistantService(nil, missingKeyGenerator()).Suggestions(ctx, 1, nil)
	assert.Equal(t, apperror.FailedPrecondition, apperror.KindOf(err))

	_, err = NewAssistantService(&fakeSettingsRepo{err: errors.New("db down")}, &fakeGenerator{}).Suggestions(ctx, 1, nil)
	assert.Equal(t, apperror.Internal, apperror.KindOf(err))
}

func TestPopularHashtags(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{text: "#marketing, growth hacking, seo, content, a, b, c, d, e, f, g, h"}
	settings := &fakeSettingsRepo{settings: map[int64]*models.Settings{2: {UserID: 2, Industry: "travel"}}}
	s := NewAssistantService(settings, gen)

	got, err := s.PopularHashtags(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"marketing", "seo", "content", "a", "b", "c", "d", "e", "f", "g"}, got)
	assert.Contains(t, gen.last().Prompt, "for the digital marketing industry")

	_, err = s.PopularHashtags(ctx, 2, "")
	require.NoError(t, err)
	assert.Contains(t, gen.last().Prompt, "for the travel industry")

	_, err = s.PopularHashtags(ctx, 2, "gaming")
	require.NoError(t, err)
	assert.Contains(t, gen.last().Prompt, "for the gaming industry")

	_, err = NewAssistantService(nil, missingKeyGenerator()).PopularHashtags(ctx, 1, "x")
	assert.Equal(t, apperror.FailedPrecondition, apperror.KindOf(err))
}
