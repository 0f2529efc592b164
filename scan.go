package flattable

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Mode selects the body grammar.
type Mode int

const (
	// ModeLegacy is the item-table grammar: "_Key" lines and field=value lines.
	ModeLegacy Mode = iota
	// ModeFlat is the flat-table grammar: "Key:" lines and "@field: value" lines.
	ModeFlat
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "legacy"
}

// Record is one table row: its key and the raw field values by name.
type Record struct {
	Key    string
	Fields map[string]string
}

// Scanner turns a table body into records.
type Scanner interface {
	Records(body string) iter.Seq[Record]
}

// NewScanner returns the scanner for the grammar selected by o.
func NewScanner(o *Options) Scanner {
	if o.Mode() == ModeFlat {
		return flatScanner{}
	}
	return legacyScanner{
		cellOn:  o.CellOn,
		cellOff: o.CellOff,
		delim:   o.FieldDelim,
		marker:  o.RowMarker,
	}
}

// Scan collects all records of body.
func Scan(s Scanner, body string) []Record {
	return slices.Collect(s.Records(body))
}

type lineKind int

const (
	lineIgnore lineKind = iota
	lineKey
	lineField
	lineContinue
)

// line is the classification of one body line.
type line struct {
	kind   lineKind
	key    string // lineKey
	name   string // lineField
	value  string // lineField, lineContinue
	indent string // lineField in flat mode
	open   bool   // lineField in legacy mode: capture continues on the next lines
	close  bool   // lineContinue in legacy mode: capture ends with this line
}

func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// accumulator tracks the current record. A new key flushes the current
// record, if any; flush emits it once more at the end of input.
type accumulator struct {
	yield   func(Record) bool
	current *Record
	stopped bool
}

func (a *accumulator) key(k string) {
	a.flush()
	a.current = &Record{Key: k, Fields: map[string]string{}}
}

func (a *accumulator) set(name, value string) {
	if a.current != nil {
		a.current.Fields[name] = value
	}
}

func (a *accumulator) extend(name, text string) {
	if a.current != nil {
		a.current.Fields[name] += " " + text
	}
}

func (a *accumulator) flush() {
	if a.current == nil || a.stopped {
		return
	}
	if !a.yield(*a.current) {
		a.stopped = true
	}
	a.current = nil
}

// --- Flat grammar ---

var (
	flatKeyPattern   = regexp.MustCompile(`^(\S+.*):\s*$`)
	flatFieldPattern = regexp.MustCompile(`^(\s*)@([^@\s]+?):\s*(.+)?$`)
)

type flatScanner struct{}

// flatState is the continuation state: the field being extended and the
// indent its lines must start with.
type flatState struct {
	field  string
	indent string
	active bool
}

func (flatScanner) classify(text string, st flatState) line {
	if m := flatKeyPattern.FindStringSubmatch(text); m != nil {
		return line{kind: lineKey, key: m[1]}
	}
	if m := flatFieldPattern.FindStringSubmatch(text); m != nil {
		return line{kind: lineField, indent: m[1], name: m[2], value: m[3]}
	}
	if st.active && strings.HasPrefix(text, st.indent) {
		return line{kind: lineContinue, value: text[len(st.indent):]}
	}
	return line{kind: lineIgnore}
}

func (s flatScanner) Records(body string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		acc := &accumulator{yield: yield}
		var st flatState
		for _, text := range splitLines(body) {
			if acc.stopped {
				return
			}
			if text == "" || text[0] == '#' {
				continue
			}
			l := s.classify(text, st)
			switch l.kind {
			case lineKey:
				acc.key(l.key)
				st = flatState{}
			case lineField:
				acc.set(l.name, l.value)
				st = flatState{field: l.name, indent: l.indent, active: acc.current != nil}
			case lineContinue:
				acc.extend(st.field, l.value)
			default:
				st = flatState{}
			}
		}
		acc.flush()
	}
}

// --- Legacy grammar ---

type legacyScanner struct {
	cellOn, cellOff string
	delim           string
	marker          string
}

// classify matches a trimmed line. capturing reports whether a cell_on span
// is still open from an earlier line.
func (s legacyScanner) classify(text string, capturing bool) line {
	if capturing {
		if i := s.index(text, s.cellOff); i != -1 {
			return line{kind: lineContinue, value: text[:i], close: true}
		}
		return line{kind: lineContinue, value: text}
	}
	if s.marker != "" && strings.HasPrefix(text, s.marker) {
		return line{kind: lineKey, key: text[len(s.marker):]}
	}
	if s.delim == "" {
		return line{kind: lineIgnore}
	}
	name, value, ok := strings.Cut(text, s.delim)
	if !ok {
		return line{kind: lineIgnore}
	}
	l := line{kind: lineField, name: name, value: value}
	if i := s.index(value, s.cellOn); i != -1 {
		value = value[i+len(s.cellOn):]
		if j := s.index(value, s.cellOff); j != -1 {
			value = value[:j]
		} else {
			l.open = true
		}
		l.value = value
	}
	return l
}

func (legacyScanner) index(s, marker string) int {
	if marker == "" {
		return -1
	}
	return strings.Index(s, marker)
}

func (s legacyScanner) Records(body string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		acc := &accumulator{yield: yield}
		capture := ""
		capturing := false
		for _, text := range splitLines(body) {
			if acc.stopped {
				return
			}
			l := s.classify(strings.TrimSpace(text), capturing)
			switch l.kind {
			case lineKey:
				acc.key(l.key)
			case lineField:
				acc.set(l.name, l.value)
				capture, capturing = l.name, l.open
			case lineContinue:
				acc.extend(capture, l.value)
				if l.close {
					capturing = false
				}
			}
		}
		acc.flush()
	}
}
