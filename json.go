package flattable

import (
	"encoding/json"
	"io"
)

// Document is the JSON and YAML form of a table.
type Document struct {
	Header  string      `json:"header,omitempty" yaml:"header,omitempty"`
	Key     string      `json:"key" yaml:"key"`
	Width   string      `json:"width,omitempty" yaml:"width,omitempty"`
	Columns []DocColumn `json:"columns" yaml:"columns"`
	Rows    []DocRow    `json:"rows" yaml:"rows"`
}

// DocColumn describes one declared column.
type DocColumn struct {
	Name    string  `json:"name" yaml:"name"`
	Heading string  `json:"heading" yaml:"heading"`
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// DocRow is one record with its cells resolved in column order.
type DocRow struct {
	Key   string   `json:"key" yaml:"key"`
	Cells []string `json:"cells" yaml:"cells"`
}

// Document returns the exported form of t.
func (t *Table) Document() Document {
	doc := Document{
		Header:  t.Options.Header,
		Key:     t.Options.Key,
		Width:   t.Options.Width,
		Columns: make([]DocColumn, 0, len(t.Options.Columns)),
		Rows:    make([]DocRow, 0, len(t.Records)),
	}
	for _, col := range t.Options.Columns {
		c := DocColumn{Name: col, Heading: t.Options.Heading(col)}
		if d, ok := t.Options.Defaults[col]; ok {
			c.Default = &d
		}
		doc.Columns = append(doc.Columns, c)
	}
	for _, r := range t.Records {
		doc.Rows = append(doc.Rows, t.exportRow(r))
	}
	return doc
}

func (t *Table) exportRow(r Record) DocRow {
	cells := make([]string, len(t.Options.Columns))
	for i, col := range t.Options.Columns {
		cells[i] = t.Options.Cell(r, col)
	}
	return DocRow{Key: r.Key, Cells: cells}
}

func writeJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Document())
}
