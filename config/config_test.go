package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, ".menukit"),
		"config dir should end with .menukit, got %s", dir)
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state := DefaultStateIn(dir)
	state.SetGroupCollapsed("editor-context", "9_cutcopypaste", true)
	state.TouchRecentCommand("edit.copy")
	state.TouchRecentCommand("file.new")
	require.NoError(t, SaveState(state))

	loaded := LoadStateIn(dir)
	assert.True(t, loaded.IsGroupCollapsed("editor-context", "9_cutcopypaste"))
	assert.False(t, loaded.IsGroupCollapsed("editor-context", "navigation"))
	assert.Equal(t, []string{"file.new", "edit.copy"}, loaded.RecentCommands)
}

func TestLoadStateMissingFile(t *testing.T) {
	loaded := LoadStateIn(t.TempDir())
	assert.NotNil(t, loaded.CollapsedGroups)
	assert.Empty(t, loaded.RecentCommands)
}

func TestLoadStateCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("{not json"), 0644))

	// a corrupt file falls back to defaults rather than failing the host
	loaded := LoadStateIn(dir)
	assert.NotNil(t, loaded.CollapsedGroups)
	assert.Empty(t, loaded.RecentCommands)
}

func TestSetGroupCollapsed(t *testing.T) {
	state := DefaultStateIn(t.TempDir())

	state.SetGroupCollapsed("palette", "hello", true)
	state.SetGroupCollapsed("palette", "hello", true) // no duplicate entry
	assert.Equal(t, []string{"hello"}, state.CollapsedGroups["palette"])

	state.SetGroupCollapsed("palette", "hello", false)
	assert.False(t, state.IsGroupCollapsed("palette", "hello"))

	// clearing an uncollapsed group is a no-op
	state.SetGroupCollapsed("palette", "other", false)
	assert.False(t, state.IsGroupCollapsed("palette", "other"))
}

func TestTouchRecentCommand(t *testing.T) {
	state := DefaultStateIn(t.TempDir())

	state.TouchRecentCommand("a")
	state.TouchRecentCommand("b")
	state.TouchRecentCommand("a")
	assert.Equal(t, []string{"a", "b"}, state.RecentCommands, "re-touch moves to front without duplicating")

	for i := 0; i < DefaultRecentLimit+10; i++ {
		state.TouchRecentCommand(fmt.Sprintf("cmd.%d", i))
	}
	assert.Len(t, state.RecentCommands, DefaultRecentLimit)
	assert.Equal(t, fmt.Sprintf("cmd.%d", DefaultRecentLimit+9), state.RecentCommands[0])
}
