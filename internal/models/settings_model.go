package models

import "time"

const (
	DefaultIndustry = "digital marketing"
	DefaultTone     = "professional"
)

// Settings holds a user's content preferences used when prompting the
// text generator.
type Settings struct {
	UserID         int64     `db:"user_id" json:"user_id"`
	Industry       string    `db:"industry" json:"industry"`
	TonePreference string    `db:"tone_preference" json:"tone_preference"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings is used for users who never saved preferences.
func DefaultSettings(userID int64) *Settings {
	return &Settings{UserID: userID, TonePreference: DefaultTone}
}

func (s *Settings) IndustryOr(fallback string) string {
	if s == nil || s.Industry == "" {
		return fallback
	}
	return s.Industry
}

func (s *Settings) Tone() string {
	if s == nil || s.TonePreference == "" {
		return DefaultTone
	}
	return s.TonePreference
}
