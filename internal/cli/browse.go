package cli

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/permute"
)

const (
	defaultBrowseHeight = 15
	browseFastForward   = 10
)

var (
	browseHintStyle   = lipgloss.NewStyle().Foreground(colorDim)
	browseHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	browseLatestStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// browseCommand creates the browse command, which steps through an
// enumeration interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		kindName string
		size     int
		file     string
	)

	cmd := &cobra.Command{
		Use:   "browse [elements...]",
		Short: "Step through an enumeration interactively",
		Long: `Step through an enumeration one item at a time.

Items are produced on demand, so browsing the permutations of a large set
starts immediately. Press n, space or enter for the next item, f to skip
ahead by ten, and q to quit.`,
		Example: `  permute browse a b c d
  permute browse a b c d e --kind comb -k 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := permute.ParseKind(kindName)
			if err != nil {
				return err
			}
			if kind.UsesSize() && !cmd.Flags().Changed("size") {
				return perrors.New(perrors.ErrCodeInvalidArgument, "%s needs a size; pass -k", kind)
			}
			elems, err := readElements(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			m, err := newBrowseModel(kind, elems, size)
			if err != nil {
				return err
			}
			defer m.stop()

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", string(permute.KindPermutations), "enumeration: permutations, combinations or arrangements")
	cmd.Flags().IntVarP(&size, "size", "k", 0, "number of elements per item (combinations and arrangements)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read elements from a file, one per line (- for stdin)")

	return cmd
}

// browseRow is one item shown in the history table.
type browseRow struct {
	ordinal int64
	item    []string
}

// browseModel is the bubbletea model for stepping through an enumeration.
// It pulls one item per step, so only the visible history is held in memory.
type browseModel struct {
	kind   permute.Kind
	total  string
	next   func() ([]string, bool)
	stop   func()
	rows   []browseRow
	count  int64
	done   bool
	height int
}

func newBrowseModel(kind permute.Kind, elems []string, k int) (*browseModel, error) {
	seq, err := permute.Enumerate(kind, elems, k)
	if err != nil {
		return nil, err
	}
	total, err := permute.Count(kind, len(elems), k)
	if err != nil {
		return nil, err
	}
	next, stop := iter.Pull(seq)
	m := &browseModel{
		kind:   kind,
		total:  total.String(),
		next:   next,
		stop:   stop,
		height: defaultBrowseHeight,
	}
	m.advance(1)
	return m, nil
}

// advance pulls up to n more items, keeping the last height of them.
func (m *browseModel) advance(n int) {
	for range n {
		if m.done {
			return
		}
		item, ok := m.next()
		if !ok {
			m.done = true
			return
		}
		m.count++
		m.rows = append(m.rows, browseRow{ordinal: m.count, item: item})
		if len(m.rows) > m.height {
			m.rows = m.rows[len(m.rows)-m.height:]
		}
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", " ", "enter", "down", "j":
			m.advance(1)
		case "f", "pgdown":
			m.advance(browseFastForward)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)
		if len(m.rows) > m.height {
			m.rows = m.rows[len(m.rows)-m.height:]
		}
	}
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + string(m.kind)))
	b.WriteString("\n")
	b.WriteString(browseHintStyle.Render("n/space next  f skip 10  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.rows))
	for i, r := range m.rows {
		rows[i] = []string{strconv.FormatInt(r.ordinal, 10), strings.Join(r.item, " ")}
	}
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Item").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return browseHeaderStyle
			case row == last:
				return browseLatestStyle
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d/%s]", m.count, m.total)
	if m.done {
		status += " " + StyleSuccess.Render("done")
	}
	b.WriteString(browseHintStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}
