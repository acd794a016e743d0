package weathercode

import (
	"testing"

	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestThemeFor(t *testing.T) {
	tests := []struct {
		code int
		want model.Theme
	}{
		{0, model.ThemeSunny},
		{1, model.ThemeSunny},
		{2, model.ThemeCloudy},
		{3, model.ThemeCloudy},
		{45, model.ThemeFoggy},
		{48, model.ThemeFoggy},
		{51, model.ThemeRainy},
		{61, model.ThemeRainy},
		{82, model.ThemeRainy},
		{71, model.ThemeSnowy},
		{86, model.ThemeSnowy},
		{95, model.ThemeStormy},
		{99, model.ThemeStormy},
		{56, model.ThemeDefault},
		{66, model.ThemeDefault},
		{999, model.ThemeDefault},
		{-1, model.ThemeDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThemeFor(tt.code), "code %d", tt.code)
	}
}

func TestThemeSetsAreDisjoint(t *testing.T) {
	// 28 described codes minus 4 freezing codes that map to the default theme
	assert.Len(t, themes, 24)
	for code := range themes {
		_, described := descriptions[code]
		assert.True(t, described, "themed code %d has no description", code)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "☀️ Clear sky", Describe(0))
	assert.Equal(t, "🌧️ Slight rain", Describe(61))
	assert.Equal(t, "🌩️ Severe thunderstorm with hail", Describe(99))
	assert.Equal(t, UnknownDescription, Describe(4))
	assert.Equal(t, UnknownDescription, Describe(999))
	assert.Len(t, descriptions, 28)
}
