package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/boardtree/pkg/design"
)

// stdout receives all status output. Reports and diagrams bypass it and go
// to the command's own writer so they can be piped.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, anchors
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, unresolved nodes
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleAnchor   = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(stdout, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints placement statistics on a single line:
// "12 nodes · 5 placed · 1 unresolved · fresh".
func printStats(nodeCount, placed, failed int, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodeCount))
	}
	parts = append(parts, fmt.Sprintf("%d placed", placed))
	if failed > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unresolved", failed)))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}

	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// Placement Tables
// =============================================================================

var placementHeaders = []string{"Key", "Ref", "X", "Y", "Rot", "Layer"}

// placementTable lays out rows as a rounded lipgloss table. highlight is
// the row index drawn selected, or -1.
func placementTable(rows []placementRow, highlight int, lead func(i int) string) *table.Table {
	cells := make([][]string, len(rows))
	headers := placementHeaders
	if lead != nil {
		headers = append([]string{""}, placementHeaders...)
	}
	for i, r := range rows {
		cells[i] = rowCells(r)
		if lead != nil {
			cells[i] = append([]string{lead(i)}, cells[i]...)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case row == highlight:
				return listSelectedStyle
			case rows[row].failure != nil:
				return styleFailed
			case rows[row].placement.Anchor:
				return styleAnchor
			}
			return StyleValue
		})
}

// printPlacements prints every placement and failure of rep as a table.
func printPlacements(rep *design.Report) {
	fmt.Fprintln(stdout, placementTable(reportRows(rep), -1, nil).Render())
}
