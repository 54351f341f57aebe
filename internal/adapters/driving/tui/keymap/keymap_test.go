package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"enter"}, km.Send.Keys())
	assert.Equal(t, []string{"ctrl+u"}, km.Upload.Keys())
	assert.Equal(t, []string{"ctrl+d"}, km.Documents.Keys())
	assert.Equal(t, []string{"up", "k"}, km.Up.Keys())
	assert.Equal(t, []string{"down", "j"}, km.Down.Keys())
	assert.Equal(t, []string{"r"}, km.Refresh.Keys())
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+u", km.Upload))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("ctrl+u", km.Quit))
	assert.False(t, Matches("x", km.Refresh))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, "send", bindings[0].Help().Desc)
	assert.Equal(t, "quit", bindings[3].Help().Desc)
}

func TestDocumentsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.DocumentsHelp()

	require.Len(t, bindings, 3)
	assert.Equal(t, "refresh", bindings[1].Help().Desc)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	for _, group := range groups {
		assert.NotEmpty(t, group)
	}
}
