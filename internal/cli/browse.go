package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/pkg/design"
	"github.com/matzehuels/boardtree/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <design>",
		Short: "Inspect placements interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Load(args[0])
			if err != nil {
				return err
			}
			res, err := runner.Place(ctx, d, pipeline.Options{Input: args[0], Logger: loggerFromContext(ctx)})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewPlacementListModel(res.Report), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the placement cache")
	cmd.ValidArgsFunction = completeDesign
	return cmd
}

// placementRow is one line of the browser: a placement or a failure.
type placementRow struct {
	placement *design.Placement
	failure   *design.Failure
}

func (r placementRow) key() string {
	if r.placement != nil {
		return r.placement.Key
	}
	return r.failure.Key
}

// PlacementListModel is the bubbletea model for browsing a placement report.
type PlacementListModel struct {
	Title    string
	Rows     []placementRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// NewPlacementListModel lists placements first, then failures.
func NewPlacementListModel(rep *design.Report) PlacementListModel {
	return PlacementListModel{Title: rep.Design, Rows: reportRows(rep), Height: 15}
}

func reportRows(rep *design.Report) []placementRow {
	rows := make([]placementRow, 0, len(rep.Placements)+len(rep.Failures))
	for i := range rep.Placements {
		rows = append(rows, placementRow{placement: &rep.Placements[i]})
	}
	for i := range rep.Failures {
		rows = append(rows, placementRow{failure: &rep.Failures[i]})
	}
	return rows
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlacementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placements: " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no placeable nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(m.table(m.Offset, end))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	if m.Expanded {
		b.WriteString("\n\n")
		b.WriteString(m.detail(m.Rows[m.Cursor]))
	}
	return b.String()
}

func (m PlacementListModel) table(start, end int) string {
	lead := func(i int) string {
		if start+i == m.Cursor {
			return "▸ "
		}
		return "  "
	}
	return placementTable(m.Rows[start:end], m.Cursor-start, lead).Render()
}

func rowCells(r placementRow) []string {
	if r.failure != nil {
		return []string{r.failure.Key, "", "—", "—", "—", string(r.failure.Code)}
	}
	p := r.placement
	return []string{
		p.Key,
		p.Designator,
		formatCoord(p.X),
		formatCoord(p.Y),
		formatCoord(p.Rotation) + "°",
		p.Layer,
	}
}

func (m PlacementListModel) detail(r placementRow) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(listDimStyle.Width(12).Render(k))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(v))
		b.WriteString("\n")
	}
	line("key", r.key())
	if r.failure != nil {
		line("path", r.failure.Path)
		line("code", string(r.failure.Code))
		line("error", r.failure.Message)
		return b.String()
	}
	p := r.placement
	line("path", p.Path)
	line("position", p.Position().String())
	if p.Anchor {
		line("anchor", "yes")
	}
	return b.String()
}

// formatCoord trims trailing zeros: 2.50 -> "2.5", 10 -> "10".
func formatCoord(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
