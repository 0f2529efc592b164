package flattable

import (
	"fmt"
	"io"
	"text/template"
)

// TemplateRow is the data a go-template format is executed against.
type TemplateRow struct {
	Key    string
	Cells  []string
	Fields map[string]string
}

func (t *Table) templateRow(r Record) TemplateRow {
	row := t.exportRow(r)
	fields := make(map[string]string, len(t.Options.Columns))
	for i, col := range t.Options.Columns {
		fields[col] = row.Cells[i]
	}
	return TemplateRow{Key: r.Key, Cells: row.Cells, Fields: fields}
}

func parseTemplate(tmplStr string) (*template.Template, error) {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return tmpl, nil
}

func writeTemplateRow(w io.Writer, tmpl *template.Template, row TemplateRow) error {
	if err := tmpl.Execute(w, row); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeGoTemplate(w io.Writer, tmplStr string, t *Table) error {
	tmpl, err := parseTemplate(tmplStr)
	if err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := writeTemplateRow(w, tmpl, t.templateRow(r)); err != nil {
			return err
		}
	}
	return nil
}
