package flattable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownCellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func writeMarkdown(w io.Writer, t *Table) error {
	header := escapeMarkdownCells(t.Header())
	numCols := len(header)

	rows := make([][]string, len(t.Records))
	for i, r := range t.Records {
		rows[i] = escapeMarkdownCells(t.Row(r))
	}

	// Calculate column widths (minimum 3 for the separator dashes).
	widths := computeWidths(numCols, header, rows)
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	if caption := strings.TrimSpace(t.Options.Header); caption != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", caption); err != nil {
			return err
		}
	}
	if t.Options.WidthSet {
		if _, err := fmt.Fprintln(w, WidthMarker(t.Options.Width)); err != nil {
			return err
		}
	}

	if err := writeMarkdownRow(w, header, widths); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = markdownCellEscaper.Replace(strings.TrimSpace(c))
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = padRight(cell, width)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
