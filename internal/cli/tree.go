package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permute/pkg/buildinfo"
	"github.com/matzehuels/permute/pkg/cache"
	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/permute"
	"github.com/matzehuels/permute/pkg/prefixtree"
)

// Tree output formats.
const (
	treeFormatText = "text"
	treeFormatDOT  = "dot"
	treeFormatSVG  = "svg"
)

// defaultTreeLimit caps the items folded into a tree unless --limit is given.
const defaultTreeLimit = 1000

const svgCacheTTL = 30 * 24 * time.Hour

// treeCommand creates the tree command for rendering the prefix tree of an
// enumeration.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		kindName string
		size     int
		file     string
		format   string
		output   string
		limit    int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "tree [elements...]",
		Short: "Render the prefix tree of an enumeration",
		Long: `Render the items of an enumeration as a prefix tree.

Items sharing a leading run of elements share a branch, so the tree of the
permutations of n elements has n branches at the root, each with n-1 below
it. Output is an indented outline, Graphviz DOT, or an SVG rendered with
Graphviz.`,
		Example: `  # Outline of the 6 permutations of three elements
  permute tree a b c

  # SVG of the arrangements of 2 out of 4 elements
  permute tree a b c d --kind arrange -k 2 --format svg -o arrange.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := permute.ParseKind(kindName)
			if err != nil {
				return err
			}
			if kind.UsesSize() && !cmd.Flags().Changed("size") {
				return perrors.New(perrors.ErrCodeInvalidArgument, "%s needs a size; pass -k", kind)
			}
			if err := validateTreeFormat(format); err != nil {
				return err
			}
			elems, err := readElements(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			seq, err := permute.Enumerate(kind, elems, size)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			tree := prefixtree.Build(seq, limit)
			logger.Debug("Built prefix tree", "items", tree.Items(), "nodes", tree.Nodes(), "depth", tree.Depth())

			data, err := c.renderTree(cmd, tree, format, noCache)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeFile(output, data); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d items", tree.Items()))
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", string(permute.KindPermutations), "enumeration: permutations, combinations or arrangements")
	cmd.Flags().IntVarP(&size, "size", "k", 0, "number of elements per item (combinations and arrangements)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read elements from a file, one per line (- for stdin)")
	cmd.Flags().StringVar(&format, "format", treeFormatText, "output format: text, dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultTreeLimit, "fold at most this many items into the tree (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always re-render SVG output")

	return cmd
}

func validateTreeFormat(format string) error {
	switch format {
	case treeFormatText, treeFormatDOT, treeFormatSVG:
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidFormat, "unknown tree format %q (want text, dot or svg)", format)
}

func (c *CLI) renderTree(cmd *cobra.Command, tree *prefixtree.Tree, format string, noCache bool) ([]byte, error) {
	switch format {
	case treeFormatDOT:
		return []byte(tree.ToDOT()), nil
	case treeFormatSVG:
		return c.renderSVG(cmd, tree, noCache)
	default:
		return []byte(tree.String()), nil
	}
}

// renderSVG lays out tree with Graphviz, reusing a cached SVG of identical
// DOT source when one exists.
func (c *CLI) renderSVG(cmd *cobra.Command, tree *prefixtree.Tree, noCache bool) ([]byte, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store := c.svgCache(noCache)
	defer store.Close()

	key := cache.Key("svg", buildinfo.Version, tree.ToDOT())
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		logger.Debug("SVG cache hit", "nodes", tree.Nodes())
		return data, nil
	}

	sp := startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Laying out %d nodes", tree.Nodes()))
	svg, err := tree.RenderSVG(ctx)
	if err != nil {
		sp.stop()
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "render svg")
	}
	sp.stopWithSuccess(fmt.Sprintf("Laid out %d nodes", tree.Nodes()))

	if err := store.Set(ctx, key, svg, svgCacheTTL); err != nil {
		logger.Warn("Could not cache SVG", "error", err)
	}
	return svg, nil
}

// svgCache returns the on-disk SVG cache, or a null cache when caching is
// disabled or the cache directory is unavailable.
func (c *CLI) svgCache(disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(filepath.Join(dir, "svg"))
	if err != nil {
		c.Logger.Debug("SVG cache unavailable", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// writeFile writes data to path, creating or truncating it.
func writeFile(path string, data []byte) error {
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
