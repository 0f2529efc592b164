package flattable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrRender            = errors.New("render failed")
)

// Format represents an output dialect.
type Format string

const (
	Wiki     Format = "wiki"
	HTML     Format = "html"
	Markdown Format = "markdown"
	Text     Format = "text"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
)

const goTemplatePrefix = "go-template="

var formats = []Format{Wiki, HTML, Markdown, Text, CSV, TSV, JSON, JSONL, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go text/template.
// The template is executed against a [TemplateRow].
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Env describes what the hosting environment provides to a writer.
type Env struct {
	// Sortable reports that an interactive sortable-table behavior is
	// available. Wiki and HTML output is then wrapped for it.
	Sortable bool

	// Renderer turns wiki markup into HTML. Nil means [HTMLRenderer].
	Renderer Renderer

	// Border and Wrap control the Text format.
	Border BorderStyle
	Wrap   int
}

// BorderStyle controls text table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border style name such as "rounded" or "ascii".
// The empty string is BorderRounded.
func ParseBorder(s string) (BorderStyle, error) {
	if s == "" {
		return BorderRounded, nil
	}
	if b, ok := borderNames[s]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown border style %q", s)
}

// Write formats t and writes it to w.
func Write(w io.Writer, f Format, t *Table, env Env) error {
	switch f {
	case Wiki:
		_, err := io.WriteString(w, t.Prepare(env))
		return err
	case HTML:
		return writeHTML(w, t, env)
	case Markdown:
		return writeMarkdown(w, t)
	case Text:
		return writeText(w, t, env)
	case CSV:
		return writeCSV(w, t)
	case TSV:
		return writeTSV(w, t)
	case JSON:
		return writeJSON(w, t)
	case JSONL:
		return writeJSONL(w, t)
	case YAML:
		return writeYAML(w, t)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, t)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal formats t and returns the bytes.
func Marshal(f Format, t *Table, env Env) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t, env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
