package flattable

import (
	"fmt"
	"strings"
)

// Table is one parsed flat table: its resolved options and its records.
type Table struct {
	Options Options
	Records []Record
}

// Parse builds the table of one tag occurrence from its opening tag and its
// body. It never fails; lines that match no grammar rule are dropped.
func Parse(tag, body string) *Table {
	opts := Resolve(ParseTag(tag))
	return &Table{
		Options: opts,
		Records: Scan(NewScanner(&opts), body),
	}
}

// Header returns the key heading followed by one heading per column.
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.Options.Columns)+1)
	header = append(header, t.Options.Key)
	for _, col := range t.Options.Columns {
		header = append(header, t.Options.Heading(col))
	}
	return header
}

// Row returns the key of r followed by one cell per column.
func (t *Table) Row(r Record) []string {
	row := make([]string, 0, len(t.Options.Columns)+1)
	row = append(row, r.Key)
	for _, col := range t.Options.Columns {
		row = append(row, t.Options.Cell(r, col))
	}
	return row
}

// Markup assembles the table as wiki markup.
func (t *Table) Markup() string {
	var sb strings.Builder
	if strings.TrimSpace(t.Options.Header) != "" {
		sb.WriteString("^" + t.Options.Header + strings.Repeat("^", len(t.Options.Columns)+1) + "\n")
	}
	sb.WriteString("^ " + strings.Join(t.Header(), " ^ ") + " ^\n")
	for _, r := range t.Records {
		t.writeRow(&sb, r)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, r Record) {
	sb.WriteString("| " + r.Key + " ")
	for _, col := range t.Options.Columns {
		sb.WriteString("| ")
		if v, ok := r.Fields[col]; ok {
			sb.WriteString(v + " ")
		} else if v, ok := t.Options.Defaults[col]; ok {
			sb.WriteString(v + " ")
		}
	}
	sb.WriteString("|\n")
}

// Prepare returns the markup after the source-display escape or the
// sortable wrapper has been applied.
func (t *Table) Prepare(env Env) string {
	markup := t.Markup()
	switch {
	case t.Options.NoRender:
		return indentLines(markup, "  ")
	case env.Sortable:
		sort := ""
		if t.Options.Sort != "" {
			sort = " " + t.Options.Sort
		}
		return "<sortable" + sort + ">\n" + markup + "</sortable>"
	default:
		return markup
	}
}

// Render prepares the markup, hands it to r and prepends the width marker
// when a width is set. A nil r renders with [HTMLRenderer].
func (t *Table) Render(env Env, r Renderer) (string, error) {
	if r == nil {
		r = HTMLRenderer{}
	}
	out, err := r.Render(t.Prepare(env))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	if t.Options.WidthSet {
		out = WidthMarker(t.Options.Width) + "\n" + out
	}
	return out, nil
}

// indentLines prefixes every line of s, leaving a trailing newline alone.
func indentLines(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		sb.WriteString(prefix + l)
	}
	return sb.String()
}

// Renderer converts wiki markup into a presentation format.
type Renderer interface {
	Render(markup string) (string, error)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(markup string) (string, error)

// Render calls f.
func (f RendererFunc) Render(markup string) (string, error) { return f(markup) }
