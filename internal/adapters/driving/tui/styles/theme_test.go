package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.Equal(t, lipgloss.Color("#2563EB"), theme.Primary)
	assert.NotEmpty(t, theme.Success)
	assert.NotEmpty(t, theme.Error)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestNewStyles_AppliesTheme(t *testing.T) {
	theme := &Theme{
		Primary:    lipgloss.Color("#FF0000"),
		Foreground: lipgloss.Color("#FFFFFF"),
	}

	s := NewStyles(theme)

	assert.Equal(t, theme, s.Theme())
	assert.True(t, s.Title.GetBold())
	assert.True(t, s.User.GetBold())
	assert.True(t, s.Citation.GetItalic())
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()

	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}
