package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is a column's justification.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Header   string
	Align    Align
	MaxWidth int // 0 = unlimited
}

// Table is a plain-text table sized by display width.
type Table struct {
	Title   string
	Columns []Column
	rows    [][]string
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c.Header)
	}
	for _, row := range t.rows {
		for i := range t.Columns {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}
	for i, c := range t.Columns {
		if c.MaxWidth > 0 && widths[i] > c.MaxWidth {
			widths[i] = c.MaxWidth
		}
	}

	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}

	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = align(c.Header, widths[i], c.Align)
		rule[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " "))
	fmt.Fprintln(w, strings.Join(rule, "  "))

	for _, row := range t.rows {
		cells := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = align(cell, widths[i], c.Align)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func align(text string, width int, a Align) string {
	if a == AlignRight && runewidth.StringWidth(text) < width {
		return strings.Repeat(" ", width-runewidth.StringWidth(text)) + text
	}
	return padToWidth(text, width)
}

// padToWidth pads or truncates text to a fixed display width.
// Text longer than width is cut and ends in "...".
// If width <= 0, returns text unchanged.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes can leave the result a column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
