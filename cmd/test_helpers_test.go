package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setupDataDir points the data directory at a fresh temp dir for one test.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Set("data.dir", dir)
	t.Cleanup(func() { viper.Set("data.dir", "") })
	return dir
}

// executeCommand runs the root command with args and returns what it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	addTime, addImportant = "", false
	listDate, doneDate, editDate, deleteDate = "", "", "", ""
	deleteYes = false
	configInitForce, configInitGlobal = false, false
	for _, name := range []string{"json", "quiet", "verbose"} {
		require.NoError(t, rootCmd.PersistentFlags().Set(name, "false"))
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}
