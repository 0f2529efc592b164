package flattable

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteStream parses one tag occurrence and writes it to w as records are
// scanned. For formats where rows are independent (CSV, TSV, JSONL,
// GoTemplate), each row is written as soon as its record is complete. Formats
// that need the whole table for layout collect the records first.
func WriteStream(w io.Writer, f Format, tag, body string, env Env) error {
	opts := Resolve(ParseTag(tag))
	t := &Table{Options: opts}
	records := NewScanner(&opts).Records(body)

	var writeRow func(Record) error
	switch f {
	case CSV:
		if err := writeCSVRow(w, t.Header()); err != nil {
			return err
		}
		writeRow = func(r Record) error { return writeCSVRow(w, t.Row(r)) }
	case TSV:
		if err := writeTSVRow(w, t.Header()); err != nil {
			return err
		}
		writeRow = func(r Record) error { return writeTSVRow(w, t.Row(r)) }
	case JSONL:
		enc := json.NewEncoder(w)
		writeRow = func(r Record) error { return enc.Encode(t.exportRow(r)) }
	default:
		tmplStr, ok := strings.CutPrefix(string(f), goTemplatePrefix)
		if !ok {
			for r := range records {
				t.Records = append(t.Records, r)
			}
			return Write(w, f, t, env)
		}
		tmpl, err := parseTemplate(tmplStr)
		if err != nil {
			return err
		}
		writeRow = func(r Record) error { return writeTemplateRow(w, tmpl, t.templateRow(r)) }
	}

	var streamErr error
	records(func(r Record) bool {
		if err := writeRow(r); err != nil {
			streamErr = fmt.Errorf("row %q: %w", r.Key, err)
			return false
		}
		return true
	})
	return streamErr
}
