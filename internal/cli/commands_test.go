package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCommands_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "select_positive", args: []string{"select", "--data=-1,5,0", "--where", "positive"}},
		{name: "select_chain", args: []string{"select", "--data=6,-4,3,8,0", "--where", "positive", "--where", "even"}},
		{name: "select_all", args: []string{"select", "--data=3,1,2"}},
		{name: "select_empty", args: []string{"select", "--where", "odd"}},
		{name: "select_negated", args: []string{"select", "--data=6,-4,3", "--where", "!negative"}},
		{name: "filter_two", args: []string{"filter-two", "--a=0,5,0,0", "--b=6,-5,-7,3,-1", "--where", "positive"}},
		{name: "filter_two_close_a", args: []string{"filter-two", "--a=0,5,0,0", "--b=6,-5,-7,3,-1", "--where", "positive", "--close", "a"}},
		{name: "filter_two_close_b", args: []string{"filter-two", "--a=0,5,0,0", "--b=6,-5,-7,3,-1", "--where", "positive", "--close", "b"}},
		{name: "mutate_even", args: []string{"mutate", "--data=1,2,3,4,5,6", "--where", "even", "--add", "10"}},
		{name: "mutate_double", args: []string{"mutate", "--data=1,2,3,4,5,6,7,8", "--where", "even", "--where", "positive"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestCommands_UnknownPredicate(t *testing.T) {
	stdout, _, err := execute(t, "select", "--data=1", "--where", "big")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "unknown_predicate", []byte(stdout))
}

func TestCommands_InvalidClose(t *testing.T) {
	stdout, _, err := execute(t, "filter-two", "--close", "c")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [E001]: invalid --close \"c\": must be a or b\n", stdout)
}

func TestCommands_YAML(t *testing.T) {
	t.Run("select", func(t *testing.T) {
		stdout, _, err := execute(t, "--format", "yaml", "select", "--data=-1,5,0", "--where", "positive")
		require.NoError(t, err)

		var resp struct {
			Status string       `yaml:"status"`
			Data   SelectResult `yaml:"data"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, []int{-1, 5, 0}, resp.Data.Data)
		assert.Equal(t, []string{"positive"}, resp.Data.Where)
		assert.Equal(t, []int{5}, resp.Data.Selected)
	})

	t.Run("filter-two", func(t *testing.T) {
		stdout, _, err := execute(t, "--format", "yaml", "filter-two", "--a=0,5,0,0", "--b=6,-5,-7,3,-1", "--where", "positive", "--close", "a")
		require.NoError(t, err)

		var resp struct {
			Status string          `yaml:"status"`
			Data   FilterTwoResult `yaml:"data"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, "a", resp.Data.Closed)
		assert.True(t, resp.Data.A.Stale)
		assert.False(t, resp.Data.B.Stale)
		assert.Equal(t, []int{6, 3}, resp.Data.B.Selected)
	})

	t.Run("mutate", func(t *testing.T) {
		stdout, _, err := execute(t, "--format", "yaml", "mutate", "--data=1,2,3", "--where", "odd")
		require.NoError(t, err)

		var resp struct {
			Status string       `yaml:"status"`
			Data   MutateResult `yaml:"data"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, 2, resp.Data.Changed)
		assert.Equal(t, []int{2, 2, 4}, resp.Data.After)
	})

	t.Run("error", func(t *testing.T) {
		stdout, _, err := execute(t, "--format", "yaml", "mutate", "--where", "nope")
		require.Error(t, err)

		var resp CLIResponse
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodePredicate, resp.Error.Code)
	})
}

func TestLookupPredicate(t *testing.T) {
	p, err := lookupPredicate("!even")
	require.NoError(t, err)
	assert.True(t, p(3))
	assert.False(t, p(4))

	_, err = lookupPredicate("!")
	require.Error(t, err)
}
