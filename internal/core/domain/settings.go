package domain

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings is the single persisted state row: goals plus UI theme.
type Settings struct {
	Goals Goals  `json:"goals"`
	Theme string `json:"theme"`
}

func NormalizeTheme(theme string) string {
	if theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}
