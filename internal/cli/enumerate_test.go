package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permute/pkg/buildinfo"
	"github.com/matzehuels/permute/pkg/cache"
	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/observability"
	"github.com/matzehuels/permute/pkg/permute"
	"github.com/matzehuels/permute/pkg/prefixtree"
)

// runCLI executes the root command with args and returns stdout and stderr.
// The config directory points at an empty temp dir so user config is ignored.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func runCLIWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestEnumerateCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "perm",
			args: []string{"perm", "a", "b", "c"},
			want: "a b c\na c b\nb a c\nb c a\nc a b\nc b a\n",
		},
		{
			name: "perm comma separated",
			args: []string{"perm", "a,b", "c"},
			want: "a b c\na c b\nb a c\nb c a\nc a b\nc b a\n",
		},
		{
			name: "perm single element",
			args: []string{"permutations", "x"},
			want: "x\n",
		},
		{
			name: "comb",
			args: []string{"comb", "a", "b", "c", "d", "-k", "2"},
			want: "a b\na c\na d\nb c\nb d\nc d\n",
		},
		{
			name: "comb size zero",
			args: []string{"comb", "a", "b", "-k", "0"},
			want: "\n",
		},
		{
			name: "comb size larger than input",
			args: []string{"comb", "a", "b", "-k", "3"},
			want: "",
		},
		{
			name: "arrange",
			args: []string{"arrange", "a", "b", "c", "-k", "2"},
			want: "a b\nb a\na c\nc a\nb c\nc b\n",
		},
		{
			name: "separator",
			args: []string{"perm", "a", "b", "--separator", ","},
			want: "a,b\nb,a\n",
		},
		{
			name: "number and limit",
			args: []string{"perm", "a", "b", "c", "--number", "-n", "2"},
			want: "1\ta b c\n2\ta c b\n",
		},
		{
			name: "json",
			args: []string{"comb", "a", "b", "c", "-k", "2", "--format", "json"},
			want: "[\"a\",\"b\"]\n[\"a\",\"c\"]\n[\"b\",\"c\"]\n",
		},
		{
			name: "json numbered",
			args: []string{"kperm", "a", "b", "-k", "1", "--format", "json", "--number"},
			want: "{\"n\":1,\"item\":[\"a\"]}\n{\"n\":2,\"item\":[\"b\"]}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEnumerateFromStdin(t *testing.T) {
	out, _, err := runCLIWithInput(t, "x\n# comment\n\n  y  \n", "perm", "--file", "-")
	require.NoError(t, err)
	assert.Equal(t, "x y\ny x\n", out)
}

func TestEnumerateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("red\ngreen\nblue\n"), 0o644))

	out, _, err := runCLI(t, "comb", "-f", path, "-k", "2")
	require.NoError(t, err)
	assert.Equal(t, "red green\nred blue\ngreen blue\n", out)
}

func TestEnumerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code perrors.Code
	}{
		{"no elements", []string{"perm"}, perrors.ErrCodeInvalidInput},
		{"missing size", []string{"comb", "a", "b"}, perrors.ErrCodeInvalidArgument},
		{"negative size", []string{"arrange", "a", "b", "-k", "-1"}, perrors.ErrCodeInvalidArgument},
		{"unknown format", []string{"perm", "a", "--format", "xml"}, perrors.ErrCodeInvalidFormat},
		{"missing file", []string{"perm", "--file", "/nonexistent/items.txt"}, perrors.ErrCodeFileNotFound},
		{"args and file", []string{"perm", "a", "--file", "items.txt"}, perrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.True(t, perrors.Is(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestEnumerateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	opts := outputOptions{format: FormatText, separator: " "}
	count, err := enumerate(ctx, &buf, permute.KindPermutations, []string{"a", "b", "c"}, 0, opts)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEnumerateWriteError(t *testing.T) {
	opts := outputOptions{format: FormatText, separator: " "}
	_, err := enumerate(context.Background(), failingWriter{}, permute.KindPermutations, []string{"a", "b"}, 0, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestCountCommand(t *testing.T) {
	out, _, err := runCLI(t, "count", "a", "b", "c", "d", "-k", "2")
	require.NoError(t, err)
	for _, want := range []string{"permutations", "24", "combinations", "6", "arrangements", "12"} {
		assert.Contains(t, out, want)
	}

	out, _, err = runCLI(t, "count", "-n", "52", "-k", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "2598960")
	assert.Contains(t, out, "311875200")

	_, _, err = runCLI(t, "count", "-n", "3", "a")
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))

	_, _, err = runCLI(t, "count", "-n", "-2")
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidArgument))
}

func TestTreeCommand(t *testing.T) {
	out, _, err := runCLI(t, "tree", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, "a\n  b\n    c\n  c\n    b\nb\n  a\n    c\n  c\n    a\nc\n  a\n    b\n  b\n    a\n", out)

	out, _, err = runCLI(t, "tree", "a", "b", "c", "--kind", "comb", "-k", "2", "--format", "dot")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph PrefixTree {"))
	assert.Contains(t, out, `label="c", shape=box`)

	path := filepath.Join(t.TempDir(), "tree.txt")
	_, stderr, err := runCLI(t, "tree", "a", "b", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n  b\nb\n  a\n", string(data))
	assert.Contains(t, stderr, path)

	_, _, err = runCLI(t, "tree", "a", "--format", "png")
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidFormat))
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "permute")
}

func TestTreeSVGFromCache(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	seq, err := permute.Enumerate(permute.KindPermutations, []string{"a", "b"}, 0)
	require.NoError(t, err)
	dot := prefixtree.Build(seq, defaultTreeLimit).ToDOT()

	store, err := cache.NewFileCache(filepath.Join(cacheHome, appName, "svg"))
	require.NoError(t, err)
	key := cache.Key("svg", buildinfo.Version, dot)
	require.NoError(t, store.Set(context.Background(), key, []byte("<svg>cached</svg>"), 0))

	out, _, err := runCLI(t, "tree", "a", "b", "--format", "svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg>cached</svg>", out)
}
