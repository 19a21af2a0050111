package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and the error.
// JSON responses get trace IDs trace-1, trace-2, ...
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{TraceIDs: NewFixedGenerator("trace-1", "trace-2", "trace-3")}
	cmd := NewRootCommandWithOptions(opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeFile writes content to name under a per-test temp directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "boostcard", cmd.Use)
	assert.Contains(t, cmd.Long, "first match wins")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"validate"},
		{"apply"},
		{"test"},
		{"catalog"},
		{"catalog", "put"},
		{"catalog", "get"},
		{"catalog", "list"},
		{"catalog", "delete"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestApplyCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	applyCmd, _, err := cmd.Find([]string{"apply"})
	require.NoError(t, err)

	for _, name := range []string{"values", "input", "fallback"} {
		require.NotNil(t, applyCmd.Flags().Lookup(name), name)
	}
	workers := applyCmd.Flags().Lookup("workers")
	require.NotNil(t, workers)
	assert.Equal(t, "1", workers.DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	require.NotNil(t, testCmd.Flags().Lookup("filter"))
	require.NotNil(t, testCmd.Flags().Lookup("golden"))
}

func TestCatalogCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	catalogCmd, _, err := cmd.Find([]string{"catalog"})
	require.NoError(t, err)

	dbFlag := catalogCmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)
	assert.Equal(t, []string{"true"}, dbFlag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, err := execute(t, "--format", "invalid", "validate", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootOptionsDefaults(t *testing.T) {
	opts := &RootOptions{}
	NewRootCommandWithOptions(opts)
	assert.Equal(t, DefaultTableWidths, opts.Widths)
	assert.IsType(t, UUIDv7Generator{}, opts.TraceIDs)
}
