package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	output, err := executeCommand(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "daytrack keeps a to-do list per day") // Long desc
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, name := range []string{"add", "list", "done", "edit", "delete", "prune", "ui", "config"} {
		assert.Contains(t, output, name)
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.3.0", GetVersion())

	setupDataDir(t)
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "daytrack 0.3.0")

	out, err = executeCommand(t, "version", "--json")
	require.NoError(t, err)
	var v map[string]string
	decodeJSON(t, out, &v)
	assert.Equal(t, "0.3.0", v["version"])
}
