package mdmath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"

	"pkt.systems/mdmath/texmath"
)

const (
	// TableMinWidth is the narrowest column of a Markdown table.
	TableMinWidth = 8
	// MatrixMinWidth is the narrowest column of a matrix.
	MatrixMinWidth = 1
	// ColumnGap is the number of spaces between adjacent columns.
	ColumnGap = 2
)

// ErrNoColumns reports a table whose header and rows yield no cells.
var ErrNoColumns = errors.New("table has no columns")

// Grid holds computed column widths. Each width is the largest display
// width of any cell in the column, never less than the floor the grid was
// built with.
type Grid struct {
	Widths []int
	Aligns []Align
	Gap    int
}

// NewGrid computes column widths over rows. Rows may be ragged; the grid has
// as many columns as the longest row. NewGrid panics if floor is negative.
func NewGrid(floor int, rows ...[]string) Grid {
	if floor < 0 {
		panic(fmt.Sprintf("mdmath: negative column floor %d", floor))
	}
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = floor
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return Grid{Widths: widths, Gap: ColumnGap}
}

// LayoutTable computes the grid of a Markdown table with the table floor.
// It returns ErrNoColumns when no header or row has a non-empty cell.
func LayoutTable(headers []string, rows [][]string, aligns []Align) (Grid, error) {
	if !hasContent(headers) {
		empty := true
		for _, row := range rows {
			if hasContent(row) {
				empty = false
				break
			}
		}
		if empty {
			return Grid{}, ErrNoColumns
		}
	}
	all := make([][]string, 0, len(rows)+1)
	all = append(all, headers)
	all = append(all, rows...)
	g := NewGrid(TableMinWidth, all...)
	g.Aligns = aligns
	return g, nil
}

// LayoutMatrix renders matrix rows as aligned lines wrapped in the bracket
// glyphs of kind.
func LayoutMatrix(kind texmath.MatrixKind, rows [][]string) []string {
	g := NewGrid(MatrixMinWidth, rows...)
	left, right := kind.Delimiters()
	if left == "" {
		left, right = "  ", "  "
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = left + g.FormatRow(row) + right
	}
	return lines
}

// FormatRow pads each cell to its column width and joins the cells with the
// gap. Missing cells render as blanks.
func (g Grid) FormatRow(cells []string) string {
	var b strings.Builder
	gap := strings.Repeat(" ", g.Gap)
	for i, w := range g.Widths {
		if i > 0 {
			b.WriteString(gap)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(pad(cell, w, g.align(i)))
	}
	return b.String()
}

// Rule returns a separator line drawing glyph across every column.
func (g Grid) Rule(glyph string) string {
	parts := make([]string, len(g.Widths))
	for i, w := range g.Widths {
		parts[i] = strings.Repeat(glyph, w)
	}
	return strings.Join(parts, strings.Repeat(" ", g.Gap))
}

// Width returns the display width of a formatted row.
func (g Grid) Width() int {
	if len(g.Widths) == 0 {
		return 0
	}
	total := g.Gap * (len(g.Widths) - 1)
	for _, w := range g.Widths {
		total += w
	}
	return total
}

func (g Grid) align(i int) Align {
	if i < len(g.Aligns) {
		return g.Aligns[i]
	}
	return AlignNone
}

func pad(cell string, width int, align Align) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

// displayWidth returns the terminal cell width of s, ignoring ANSI escape
// sequences.
func displayWidth(s string) int {
	if strings.IndexByte(s, '\x1b') >= 0 {
		return ansi.PrintableRuneWidth(s)
	}
	return runewidth.StringWidth(s)
}

func hasContent(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}
