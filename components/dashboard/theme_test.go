package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThemesSelect(t *testing.T) {
	themes := DefaultThemes("", "")
	assert.Equal(t, "chalk", themes.Select(true).ChartTheme)
	assert.Equal(t, "westeros", themes.Select(false).ChartTheme)

	custom := DefaultThemes("dark", "vintage")
	assert.Equal(t, "vintage", custom.Light.ChartTheme)
}

func TestThemeSetWithDefaults(t *testing.T) {
	set := ThemeSet{Light: Theme{Name: "paper"}}.withDefaults()
	assert.Equal(t, "dark", set.Dark.Name)
	assert.Equal(t, "paper", set.Light.Name)
}

func TestCSSVariablesInline(t *testing.T) {
	theme := Theme{Tokens: map[string]string{
		"foreground":   "#fff",
		"--background": "#000",
		" ":            "ignored",
		"muted":        "",
	}}
	assert.Equal(t, "--background: #000; --foreground: #fff;", theme.CSSVariablesInline())
	assert.Empty(t, Theme{}.CSSVariablesInline())
}
