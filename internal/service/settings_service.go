package service

import (
	"context"
	"strings"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

const maxSettingLength = 255

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID int64, industry, tone string) (*models.Settings, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

// GetSettingsInfo returns the saved preferences, or the defaults when the
// user never saved any.
func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}

	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Error getting user settings", err)
	}

	if !isExist {
		return models.DefaultSettings(userID), nil
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, industry, tone string) (*models.Settings, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}

	industry = strings.TrimSpace(industry)
	tone = strings.TrimSpace(tone)
	if len(industry) > maxSettingLength || len(tone) > maxSettingLength {
		return nil, apperror.New(apperror.InvalidArgument, "settings values are too long")
	}

	settings := &models.Settings{
		UserID:         userID,
		Industry:       industry,
		TonePreference: tone,
	}
	if err := s.sr.Upsert(ctx, settings); err != nil {
		return nil, internalError("Error updating settings", err)
	}
	return settings, nil
}
