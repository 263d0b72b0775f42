package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps table columns; longer cells are truncated with "...".
const maxCellWidth = 40

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

func writeTable(w io.Writer, header []string, records []record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.cells()
	}

	numCols := colCount(header, rows)
	widths := computeWidths(numCols, header, rows)
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}
	aligns := columnAligns(numCols, records[0])

	if len(header) > 0 {
		if err := writeTableRow(w, header, widths, aligns); err != nil {
			return err
		}
		if err := writeTableSep(w, widths); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writeTableRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// columnAligns right-aligns numeric columns, judged by the first record.
func columnAligns(numCols int, first record) []Alignment {
	aligns := make([]Alignment, numCols)
	for i, v := range first.values {
		switch v.(type) {
		case int64, uint64, float64, int, uint, float32:
			aligns[i] = AlignRight
		}
	}
	return aligns
}

func writeTableSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writeTableRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = formatTableCell(cell, width, aligns[i])
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
