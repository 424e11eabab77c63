package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/permute"
)

// countCommand creates the count command for sizing enumerations.
func (c *CLI) countCommand() *cobra.Command {
	var n, k int
	var file string

	cmd := &cobra.Command{
		Use:   "count [elements...]",
		Short: "Print the number of items each enumeration produces",
		Long: `Print the exact number of permutations, size-k combinations and size-k
arrangements, without enumerating anything.

The element count comes from the elements given, or from -n when no
elements are passed.`,
		Example: `  # Sizes for 4 elements taken 2 at a time
  permute count a b c d -k 2

  # Sizes for 52 elements taken 5 at a time
  permute count -n 52 -k 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("elements") {
				elems, err := readElements(args, file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				n = len(elems)
			} else if len(args) > 0 || file != "" {
				return perrors.New(perrors.ErrCodeInvalidInput, "pass either elements or -n, not both")
			}

			rows, err := countRows(n, k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printKeyValue(out, "Elements", fmt.Sprintf("%d", n))
			printKeyValue(out, "Size", fmt.Sprintf("%d", k))
			for _, r := range rows {
				printKeyValue(out, string(r.kind), StyleNumber.Render(r.count.String()))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "elements", "n", 0, "number of elements (instead of listing them)")
	cmd.Flags().IntVarP(&k, "size", "k", 0, "subset size for combinations and arrangements")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read elements from a file, one per line (- for stdin)")

	return cmd
}

type countRow struct {
	kind  permute.Kind
	count *big.Int
}

// countRows returns the size of every kind of enumeration over n elements.
func countRows(n, k int) ([]countRow, error) {
	rows := make([]countRow, 0, len(permute.Kinds))
	for _, kind := range permute.Kinds {
		count, err := permute.Count(kind, n, k)
		if err != nil {
			return nil, err
		}
		rows = append(rows, countRow{kind: kind, count: count})
	}
	return rows, nil
}
