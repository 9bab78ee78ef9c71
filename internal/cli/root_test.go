package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "viewdb", cmd.Use)
	assert.Contains(t, cmd.Long, "views")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"select", "filter-two", "mutate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestMutateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"mutate"})
	require.NoError(t, err)

	add := sub.Flags().Lookup("add")
	require.NotNil(t, add)
	assert.Equal(t, "1", add.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "json", "select", "--data=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "json"`)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestVerbose(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "select", "--data=-1,5,0", "--where", "positive")
	require.NoError(t, err)

	assert.Equal(t, "selected 1 of 3 where positive: [5]\n", stdout)
	assert.Contains(t, stderr, "select completed")
	assert.Contains(t, stderr, "step 1 (positive): 3 -> 1")
	assert.Contains(t, stderr, "store closed")
}
