package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/observability"
	"github.com/matzehuels/permute/pkg/permute"
)

// enumerateFlags holds the flags shared by perm, comb and arrange.
type enumerateFlags struct {
	size      int
	file      string
	format    string
	separator string
	limit     int
	number    bool
}

// permCommand creates the perm command.
func (c *CLI) permCommand() *cobra.Command {
	return c.enumerateCommand(permute.KindPermutations, &cobra.Command{
		Use:     "perm [elements...]",
		Aliases: []string{"permutations"},
		Short:   "Print every ordering of the elements",
		Long: `Print every ordering of the elements, one per line.

Orderings follow the lexicographic order of element positions, starting with
the input order and ending with its reversal. n elements produce n! lines.`,
		Example: `  # All 6 orderings
  permute perm a b c

  # Comma-separated input, JSON lines
  permute perm a,b,c --format json

  # First 10 of 10! orderings, numbered
  permute perm --file items.txt --limit 10 --number`,
	})
}

// combCommand creates the comb command.
func (c *CLI) combCommand() *cobra.Command {
	return c.enumerateCommand(permute.KindCombinations, &cobra.Command{
		Use:     "comb [elements...] -k SIZE",
		Aliases: []string{"combinations"},
		Short:   "Print every size-k subset of the elements",
		Long: `Print every size-k subset of the elements, one per line.

Elements keep their input order inside each subset, and subsets follow the
lexicographic order of element positions. A size larger than the number of
elements prints nothing.`,
		Example: `  # The 6 pairs of 4 elements
  permute comb a b c d -k 2

  # Read one element per line from stdin
  seq 11 | permute comb --file - -k 4`,
	})
}

// arrangeCommand creates the arrange command.
func (c *CLI) arrangeCommand() *cobra.Command {
	return c.enumerateCommand(permute.KindArrangements, &cobra.Command{
		Use:     "arrange [elements...] -k SIZE",
		Aliases: []string{"arrangements", "kperm"},
		Short:   "Print every ordering of every size-k subset",
		Long: `Print every ordering of every size-k subset of the elements.

Subsets are taken in the order of the comb command; all orderings of a
subset are printed, in the order of the perm command, before the next subset.`,
		Example: `  # a b, b a, a c, c a, b c, c b
  permute arrange a b c -k 2`,
	})
}

// enumerateCommand attaches the shared flags and run logic for kind to cmd.
func (c *CLI) enumerateCommand(kind permute.Kind, cmd *cobra.Command) *cobra.Command {
	var flags enumerateFlags

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		elems, err := readElements(args, flags.file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if kind.UsesSize() && !cmd.Flags().Changed("size") {
			return perrors.New(perrors.ErrCodeInvalidArgument, "%s needs a size; pass -k", kind)
		}

		opts := c.outputOptions(cmd, flags)
		prog := newProgress(loggerFromContext(cmd.Context()))
		count, err := enumerate(cmd.Context(), cmd.OutOrStdout(), kind, elems, flags.size, opts)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Enumerated %d %s", count, kind))
		return nil
	}

	if kind.UsesSize() {
		cmd.Flags().IntVarP(&flags.size, "size", "k", 0, "number of elements per item")
	}
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read elements from a file, one per line (- for stdin)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text or json (default from config)")
	cmd.Flags().StringVar(&flags.separator, "separator", "", "separator between elements in text output (default from config)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "print at most this many items (0 = all)")
	cmd.Flags().BoolVar(&flags.number, "number", false, "prefix every item with its 1-based position")

	return cmd
}

// outputOptions merges flags over the loaded config.
func (c *CLI) outputOptions(cmd *cobra.Command, flags enumerateFlags) outputOptions {
	opts := outputOptions{
		format:    c.Config.Format,
		separator: c.Config.Separator,
		limit:     c.Config.Limit,
		number:    flags.number,
	}
	if cmd.Flags().Changed("format") {
		opts.format = flags.format
	}
	if cmd.Flags().Changed("separator") {
		opts.separator = flags.separator
	}
	if cmd.Flags().Changed("limit") {
		opts.limit = flags.limit
	}
	return opts
}

// enumerate streams the kind enumeration of elems to w and returns the
// number of items written. It stops early when ctx is cancelled.
func enumerate(ctx context.Context, w io.Writer, kind permute.Kind, elems []string, k int, opts outputOptions) (int64, error) {
	logger := loggerFromContext(ctx)

	seq, err := permute.Enumerate(kind, elems, k)
	if err != nil {
		return 0, err
	}
	iw, err := newItemWriter(w, opts)
	if err != nil {
		return 0, err
	}

	if total, err := permute.Count(kind, len(elems), k); err == nil {
		logger.Debug("Enumerating", "kind", kind, "n", len(elems), "k", k, "total", total.String(), "limit", opts.limit)
	}

	hooks := observability.Enumeration()
	hooks.OnEnumerateStart(ctx, string(kind), len(elems), k)
	start := time.Now()

	var count int64
	for item := range permute.Take(seq, opts.limit) {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = iw.Write(count+1, item); err != nil {
			break
		}
		count++
	}
	if ferr := iw.Flush(); err == nil {
		err = ferr
	}

	hooks.OnEnumerateComplete(ctx, string(kind), count, time.Since(start), err)
	return count, err
}
