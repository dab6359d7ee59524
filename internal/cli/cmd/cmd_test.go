package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	n, err := parseSlot("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, arg := range []string{"0", "5", "-1", "two", ""} {
		_, err := parseSlot(arg)
		assert.Error(t, err, arg)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"slots", "list"},
		{"slots", "remove"},
		{"slots", "clear"},
		{"sessions", "list"},
		{"sessions", "show"},
		{"sessions", "delete"},
		{"sessions", "rename"},
		{"config", "path"},
		{"config", "show"},
		{"config", "schema"},
		{"version"},
	} {
		found, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestRenameRequiresTwoArgs(t *testing.T) {
	assert.Error(t, sessionsRenameCmd.Args(sessionsRenameCmd, []string{"only"}))
	assert.NoError(t, sessionsRenameCmd.Args(sessionsRenameCmd, []string{"old", "new"}))
}
