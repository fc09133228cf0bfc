// Package tui renders CLI output for terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

// DisplayRow is one line of the displays listing.
type DisplayRow struct {
	Display platform.Display `json:"display"`
	Primary bool             `json:"primary"`
	DPI     float64          `json:"dpi,omitempty"`
	Zoom    zoom.Factor      `json:"zoom"`
	HiDPI   bool             `json:"hidpi"`
}

var displayHeaders = []string{"ID", "NAME", "PRIMARY", "POSITION", "SIZE", "DPI", "ZOOM"}

func displayCells(r DisplayRow) []string {
	b := r.Display.Bounds
	dpi := "-"
	if r.DPI > 0 {
		dpi = fmt.Sprintf("%.0f", r.DPI)
	}
	primary := "no"
	if r.Primary {
		primary = "yes"
	}
	zoomCell := r.Zoom.String()
	if r.HiDPI {
		zoomCell += " (hidpi)"
	}
	return []string{
		r.Display.ID,
		r.Display.Name,
		primary,
		fmt.Sprintf("%d,%d", b.X, b.Y),
		fmt.Sprintf("%dx%d", b.Width, b.Height),
		dpi,
		zoomCell,
	}
}

// RenderDisplays renders rows as a bordered, colored table.
func RenderDisplays(rows []DisplayRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Padding(0, 1)
	hidpiStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, displayCells(r))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers(displayHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && rows[row].HiDPI && col == len(displayHeaders)-1 {
				return hidpiStyle
			}
			return cellStyle
		})
	return t.String()
}

// PlainDisplays renders rows as space-aligned text for pipes.
func PlainDisplays(rows []DisplayRow) string {
	all := [][]string{displayHeaders}
	for _, r := range rows {
		all = append(all, displayCells(r))
	}

	widths := make([]int, len(displayHeaders))
	for _, line := range all {
		for i, cell := range line {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for _, line := range all {
		for i, cell := range line {
			if i == len(line)-1 {
				b.WriteString(cell)
				break
			}
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
