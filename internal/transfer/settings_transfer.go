package transfer

type SettingsUpdate struct {
	Industry       string `json:"industry"`
	TonePreference string `json:"tone_preference"`
}
