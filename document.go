package flattable

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	openTag  = "<" + TagName
	closeTag = "</" + TagName + ">"
)

// Processor expands every flat table block of a document.
// The zero value writes wiki markup without a sortable wrapper.
type Processor struct {
	Format Format
	Env    Env

	// Logger receives debug records about expanded and skipped blocks.
	// Nil discards them.
	Logger *slog.Logger
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// Expand replaces each <flattable ...>body</flattable> block of doc with the
// table in p.Format. An opening tag without a later closing tag is left as
// it is. Width markers in HTML output are patched once over the whole result.
func (p *Processor) Expand(doc string) (string, error) {
	format := p.Format
	if format == "" {
		format = Wiki
	}
	log := p.logger()

	var sb strings.Builder
	rest, offset := doc, 0
	for {
		start := indexOpenTag(rest)
		if start == -1 {
			break
		}
		end := openTagEnd(rest, start+len(openTag))
		if end == -1 {
			log.Debug("skipping unclosed opening tag", slog.Int("offset", offset+start))
			break
		}
		n := strings.Index(rest[end:], closeTag)
		if n == -1 {
			log.Debug("skipping table without closing tag", slog.Int("offset", offset+start))
			break
		}

		t := Parse(rest[start:end], rest[end:end+n])
		out, err := p.format(format, t)
		if err != nil {
			return "", fmt.Errorf("table at offset %d: %w", offset+start, err)
		}
		log.Debug("expanded table",
			slog.Int("offset", offset+start),
			slog.String("mode", t.Options.Mode().String()),
			slog.Int("columns", len(t.Options.Columns)),
			slog.Int("rows", len(t.Records)))

		sb.WriteString(rest[:start])
		sb.WriteString(out)
		consumed := end + n + len(closeTag)
		rest, offset = rest[consumed:], offset+consumed
	}
	sb.WriteString(rest)

	if format == HTML {
		return PatchWidth(sb.String()), nil
	}
	return sb.String(), nil
}

func (p *Processor) format(f Format, t *Table) (string, error) {
	if f == HTML {
		return t.Render(p.Env, p.Env.Renderer)
	}
	out, err := Marshal(f, t, p.Env)
	return string(out), err
}

// indexOpenTag returns the index of the first opening tag in s, or -1.
func indexOpenTag(s string) int {
	for i := 0; ; {
		j := strings.Index(s[i:], openTag)
		if j == -1 {
			return -1
		}
		i += j
		next := i + len(openTag)
		if next == len(s) {
			return -1
		}
		switch s[next] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return i
		}
		i = next
	}
}

// openTagEnd returns the index just past the '>' closing an opening tag whose
// attributes start at from, or -1. A '>' inside a quoted value does not
// close the tag.
func openTagEnd(s string, from int) int {
	inQuote := false
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\':
			i++
		case inQuote && c == '"':
			inQuote = false
		case !inQuote && c == '"' && i > 0 && s[i-1] == '=':
			inQuote = true
		case !inQuote && c == '>':
			return i + 1
		}
	}
	return -1
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// MarkdownToHTML renders a Markdown document, such as one expanded in the
// Markdown format, to HTML and patches the width markers of its tables.
func MarkdownToHTML(doc string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(doc), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return PatchWidth(buf.String()), nil
}
