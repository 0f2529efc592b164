package flattable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// textLayout is everything a text table needs once the cells are known.
type textLayout struct {
	title  string
	header []string
	rows   [][]string
	widths []int
	wrap   int
}

func writeText(w io.Writer, t *Table, env Env) error {
	header := t.Header()
	rows := make([][]string, len(t.Records))
	for i, r := range t.Records {
		rows[i] = t.Row(r)
	}

	l := textLayout{
		title:  strings.TrimSpace(t.Options.Header),
		header: header,
		rows:   rows,
		widths: computeWidths(len(header), header, rows),
		wrap:   env.Wrap,
	}
	if l.wrap > 0 {
		for i := range l.widths {
			if l.widths[i] > l.wrap {
				l.widths[i] = l.wrap
			}
		}
	}

	if env.Border == BorderNone {
		return l.renderPlain(w)
	}
	bc, ok := borderSets[env.Border]
	if !ok {
		bc = borderSets[BorderRounded]
	}
	return l.renderBordered(w, bc)
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

// --- Cell wrapping ---

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// Advance at least one rune when it is wider than width.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

// wrapRow splits every cell to the column width and returns the visual
// lines of the row, padded so each has one entry per column.
func (l textLayout) wrapRow(cells []string) [][]string {
	wrapped := make([][]string, len(l.widths))
	n := 1
	for i, width := range l.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if l.wrap > 0 {
			wrapped[i] = wrapCell(cell, width)
		} else {
			wrapped[i] = []string{cell}
		}
		if len(wrapped[i]) > n {
			n = len(wrapped[i])
		}
	}
	lines := make([][]string, n)
	for line := range n {
		lines[line] = make([]string, len(l.widths))
		for i := range l.widths {
			if line < len(wrapped[i]) {
				lines[line][i] = wrapped[i][line]
			}
		}
	}
	return lines
}

// --- Plain table (BorderNone) ---

func (l textLayout) renderPlain(w io.Writer) error {
	if l.title != "" {
		if _, err := fmt.Fprintln(w, l.title); err != nil {
			return err
		}
	}
	if err := l.writePlainRow(w, l.header); err != nil {
		return err
	}
	if err := l.writePlainSep(w); err != nil {
		return err
	}
	for _, row := range l.rows {
		if err := l.writePlainRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func (l textLayout) writePlainSep(w io.Writer) error {
	sep := make([]string, len(l.widths))
	for i, width := range l.widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func (l textLayout) writePlainRow(w io.Writer, cells []string) error {
	for _, line := range l.wrapRow(cells) {
		parts := make([]string, len(l.widths))
		for i, width := range l.widths {
			parts[i] = formatTextCell(line[i], width)
		}
		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

// --- Bordered table ---

func (l textLayout) renderBordered(w io.Writer, bc borderChars) error {
	if l.title != "" {
		// Full-width top border (no column separators).
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(l.widths) - 2 // subtract 1-space padding on each side
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, centerCell(l.title, inner), bc.vertical); err != nil {
			return err
		}
		// Transition to columns.
		if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := l.drawBorderedRow(w, l.header, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range l.rows {
		if err := l.drawBorderedRow(w, row, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, l.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func (l textLayout) drawBorderedRow(w io.Writer, cells []string, vert string) error {
	for _, line := range l.wrapRow(cells) {
		var sb strings.Builder
		sb.WriteString(vert)
		for i, width := range l.widths {
			sb.WriteString(" ")
			sb.WriteString(formatTextCell(line[i], width))
			sb.WriteString(" ")
			if i < len(l.widths)-1 {
				sb.WriteString(vert)
			}
		}
		sb.WriteString(vert)
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func formatTextCell(s string, width int) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return padRight(s, width)
}

func centerCell(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
