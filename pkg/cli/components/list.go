package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/blockfs/pkg/cli/styles"
)

type ListItem struct {
	Key   string
	Value string
}

// TabularList renders key/value pairs with the keys aligned in a column.
func TabularList(items []ListItem) string {
	width := 0

	for _, item := range items {
		width = max(width, lipgloss.Width(item.Key))
	}

	lines := make([]string, 0, len(items))

	for _, item := range items {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			styles.KeyStyle.Width(width+2).Render(item.Key),
			styles.ValueStyle.Render(item.Value),
		))
	}

	return strings.Join(lines, "\n")
}

// Table renders rows under a header, each column as wide as its widest cell.
func Table(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))

	for i, column := range columns {
		widths[i] = lipgloss.Width(column)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	header := make([]string, len(columns))

	for i, column := range columns {
		header[i] = styles.HeaderStyle.Width(widths[i] + 2).Render(column)
	}

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			style := styles.CellStyle

			if i < len(widths) {
				style = style.Width(widths[i] + 2)
			}

			cells[i] = style.Render(cell)
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(lines, "\n")
}
