package flattable

import (
	"fmt"
	"io"
	"strings"
)

var tsvCellEscaper = strings.NewReplacer("\t", " ", "\n", " ")

func writeTSV(w io.Writer, t *Table) error {
	if err := writeTSVRow(w, t.Header()); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := writeTSVRow(w, t.Row(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, row []string) error {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = tsvCellEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(cells, "\t"))
	return err
}
