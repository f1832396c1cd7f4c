package service

import (
	"context"
	"strings"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/scheduling"
	"github.com/maheshrc27/postcal/internal/transfer"
)

const maxHashtags = 10

type AssistantService interface {
	Suggestions(ctx context.Context, userID int64, req *transfer.SuggestionsRequest) ([]string, error)
	PopularHashtags(ctx context.Context, userID int64, niche string) ([]string, error)
}

type assistantService struct {
	sr  repository.SettingsRepository
	gen TextGenerator
}

func NewAssistantService(sr repository.SettingsRepository, gen TextGenerator) AssistantService {
	return &assistantService{sr: sr, gen: gen}
}

func (s *assistantService) Suggestions(ctx context.Context, userID int64, req *transfer.SuggestionsRequest) ([]string, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if req == nil {
		req = &transfer.SuggestionsRequest{}
	}

	settings, err := s.settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := nonEmptyStrings(req.PreviousPosts)
	text, err := s.gen.Generate(ctx, suggestionsRequest(
		strings.TrimSpace(req.Prompt),
		models.ValidPlatforms(req.Platforms),
		settings.IndustryOr(""),
		settings.Tone(),
		previous,
	))
	if err != nil {
		return nil, internalError("Error generating content suggestions", err)
	}

	suggestions := scheduling.ParseSuggestions(text)
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions, nil
}

// PopularHashtags falls back to the user's industry, then to the default
// industry, when niche is empty.
func (s *assistantService) PopularHashtags(ctx context.Context, userID int64, niche string) ([]string, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}

	industry := strings.TrimSpace(niche)
	if industry == "" {
		settings, err := s.settings(ctx, userID)
		if err != nil {
			return nil, err
		}
		industry = settings.IndustryOr(models.DefaultIndustry)
	}

	text, err := s.gen.Generate(ctx, hashtagsRequest(industry))
	if err != nil {
		return nil, internalError("Error fetching popular hashtags", err)
	}

	hashtags := scheduling.ParseHashtagResponse(text, maxHashtags)
	if hashtags == nil {
		hashtags = []string{}
	}
	return hashtags, nil
}

func (s *assistantService) settings(ctx context.Context, userID int64) (*models.Settings, error) {
	if s.sr == nil {
		return models.DefaultSettings(userID), nil
	}
	settings, ok, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Error getting user settings", err)
	}
	if !ok {
		return models.DefaultSettings(userID), nil
	}
	return settings, nil
}
