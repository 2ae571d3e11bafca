package models

const (
	TipsDaily  = "daily"
	TipsWeekly = "weekly"
)

// Settings are per-user display preferences.
type Settings struct {
	DarkMode      bool   `json:"isDarkMode"`
	TipsFrequency string `json:"tipsFrequency" binding:"omitempty,oneof=daily weekly"`
	StudyGoal     string `json:"studyGoal" binding:"max=200"`
}

func DefaultSettings() Settings {
	return Settings{TipsFrequency: TipsDaily}
}
