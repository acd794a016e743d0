package weathercode

import "github.com/fakhrymubarak/cropcast/internal/model"

// themes holds the disjoint code sets for each theme.
var themes = func() map[int]model.Theme {
	sets := []struct {
		theme model.Theme
		codes []int
	}{
		{model.ThemeSunny, []int{0, 1}},
		{model.ThemeCloudy, []int{2, 3}},
		{model.ThemeFoggy, []int{45, 48}},
		{model.ThemeRainy, []int{51, 53, 55, 61, 63, 65, 80, 81, 82}},
		{model.ThemeSnowy, []int{71, 73, 75, 77, 85, 86}},
		{model.ThemeStormy, []int{95, 96, 99}},
	}
	m := make(map[int]model.Theme)
	for _, s := range sets {
		for _, c := range s.codes {
			m[c] = s.theme
		}
	}
	return m
}()

// ThemeFor returns the display theme for a weather code. Codes outside every set,
// including the freezing drizzle and freezing rain codes, get model.ThemeDefault.
func ThemeFor(code int) model.Theme {
	if t, ok := themes[code]; ok {
		return t
	}
	return model.ThemeDefault
}
