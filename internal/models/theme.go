package models

// Theme задает цветовую тему оформления
type Theme string

// Допустимые темы. ThemeDefault применяется при отсутствии
// сохраненного значения.
const (
	ThemeDefault Theme = "default"
	ThemePink    Theme = "pink"
	ThemeBlue    Theme = "blue"
	ThemeGreen   Theme = "green"
	ThemePurple  Theme = "purple"
	ThemeWhite   Theme = "white"
)

// Themes перечисляет все допустимые темы в порядке отображения.
var Themes = []Theme{ThemeDefault, ThemePink, ThemeBlue, ThemeGreen, ThemePurple, ThemeWhite}

// ValidTheme проверяет, что имя темы входит в список допустимых.
func ValidTheme(t Theme) bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}
