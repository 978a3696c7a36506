package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Sort.Keys(), "s")
	assert.Contains(t, km.Filter.Keys(), "/")
	assert.Contains(t, km.NextView.Keys(), "tab")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.NotEmpty(t, km.ShortHelp())
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	rows := km.FullHelp()
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.NotEmpty(t, row)
	}
}
