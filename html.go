package flattable

import (
	"fmt"
	"html"
	"io"
	"strings"
)

func writeHTML(w io.Writer, t *Table, env Env) error {
	out, err := t.Render(env, env.Renderer)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, PatchWidth(out))
	return err
}

// HTMLRenderer renders the wiki markup produced by [Table.Prepare] as XHTML:
// table rows, the sortable wrapper, indented source blocks and plain
// paragraphs. Other wiki syntax is written as escaped text.
type HTMLRenderer struct{}

type htmlCell struct {
	head bool
	text string
	span int
}

// Render implements [Renderer].
func (HTMLRenderer) Render(markup string) (string, error) {
	var sb strings.Builder
	inTable, inPre := false, false
	closeBlocks := func() {
		if inTable {
			sb.WriteString("</table></div>\n")
			inTable = false
		}
		if inPre {
			sb.WriteString("</pre>\n")
			inPre = false
		}
	}
	for _, l := range splitLines(strings.TrimSuffix(markup, "\n")) {
		switch {
		case strings.HasPrefix(l, "  "):
			if !inPre {
				closeBlocks()
				sb.WriteString(`<pre class="code">`)
				inPre = true
			}
			sb.WriteString(html.EscapeString(l[2:]) + "\n")
		case strings.HasPrefix(l, "^") || strings.HasPrefix(l, "|"):
			if !inTable {
				closeBlocks()
				sb.WriteString(`<div class="table"><table class="inline">` + "\n")
				inTable = true
			}
			writeHTMLRow(&sb, parseRow(l))
		case strings.HasPrefix(l, "<sortable") && strings.HasSuffix(l, ">"):
			closeBlocks()
			opts := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(l, "<sortable"), ">"))
			if opts == "" {
				sb.WriteString(`<div class="sortable">` + "\n")
			} else {
				fmt.Fprintf(&sb, "<div class=\"sortable\" data-sort=\"%s\">\n", html.EscapeString(opts))
			}
		case l == "</sortable>":
			closeBlocks()
			sb.WriteString("</div>\n")
		case strings.TrimSpace(l) == "":
			closeBlocks()
		default:
			closeBlocks()
			sb.WriteString("<p>" + html.EscapeString(strings.TrimSpace(l)) + "</p>\n")
		}
	}
	closeBlocks()
	return sb.String(), nil
}

// parseRow splits a markup row into cells. The delimiter opening a cell
// decides its kind; an empty cell widens the cell before it.
func parseRow(l string) []htmlCell {
	var cells []htmlCell
	for i := 0; i < len(l); {
		j := i + 1
		for j < len(l) && l[j] != '^' && l[j] != '|' {
			j++
		}
		if j == len(l) {
			break
		}
		content := l[i+1 : j]
		if content == "" && len(cells) > 0 {
			cells[len(cells)-1].span++
		} else {
			cells = append(cells, htmlCell{head: l[i] == '^', text: strings.TrimSpace(content), span: 1})
		}
		i = j
	}
	return cells
}

func writeHTMLRow(sb *strings.Builder, cells []htmlCell) {
	sb.WriteString("  <tr>\n")
	for _, c := range cells {
		tag := "td"
		if c.head {
			tag = "th"
		}
		span := ""
		if c.span > 1 {
			span = fmt.Sprintf(` colspan="%d"`, c.span)
		}
		fmt.Fprintf(sb, "    <%s%s>%s</%s>\n", tag, span, html.EscapeString(c.text), tag)
	}
	sb.WriteString("  </tr>\n")
}
