package flattable

import (
	"slices"
	"strings"
)

// Reserved option names. Attributes with these keys set rendering options
// and never declare a column.
const (
	OptHeader   = "header"
	OptKey      = "key"
	OptCellOn   = "cell_on"
	OptCellOff  = "cell_off"
	OptFDelim   = "fdelim"
	OptTHead    = "thead"
	OptTWidth   = "twidth"
	OptNoRender = "norender"
	OptSort     = "sort"

	// legacyColumns is the item-table shorthand c=a,b,c.
	legacyColumns = "c"
)

// Options is the resolved option set of one table.
type Options struct {
	Header string

	// Key is the heading of the key column. Setting it, even to an empty
	// string, switches the body to the flat grammar.
	Key    string
	KeySet bool

	CellOn     string
	CellOff    string
	FieldDelim string
	RowMarker  string

	Width    string
	WidthSet bool

	NoRender bool
	Sort     string

	Columns  []string
	Headings map[string]string
	Defaults map[string]string
}

// DefaultOptions returns the option set every table starts from.
func DefaultOptions() Options {
	return Options{
		CellOn:     "<tablecell>",
		CellOff:    "</tablecell>",
		FieldDelim: "=",
		RowMarker:  "_",
		Headings:   map[string]string{},
		Defaults:   map[string]string{},
	}
}

// IsReserved reports whether name is a reserved option name.
func IsReserved(name string) bool {
	switch name {
	case OptHeader, OptKey, OptCellOn, OptCellOff, OptFDelim, OptTHead, OptTWidth, OptNoRender, OptSort:
		return true
	}
	return false
}

// Resolve folds attrs, left to right, into a fresh option set.
func Resolve(attrs []Attr) Options {
	o := DefaultOptions()
	for _, a := range attrs {
		switch {
		case a.Key == legacyColumns:
			for _, col := range strings.Split(a.Value, ",") {
				o.addColumn(col)
			}
		case IsReserved(a.Key):
			o.set(a.Key, a.Value)
		default:
			o.addColumn(a.Key)
			o.Headings[a.Key] = a.Value
			if a.HasDefault {
				o.Defaults[a.Key] = a.Default
			}
		}
	}
	return o
}

func (o *Options) set(name, value string) {
	switch name {
	case OptHeader:
		o.Header = value
	case OptKey:
		o.Key, o.KeySet = value, true
	case OptCellOn:
		o.CellOn = value
	case OptCellOff:
		o.CellOff = value
	case OptFDelim:
		o.FieldDelim = value
	case OptTHead:
		o.RowMarker = value
	case OptTWidth:
		o.Width, o.WidthSet = value, true
	case OptNoRender:
		o.NoRender = value != ""
	case OptSort:
		o.Sort = value
	}
}

func (o *Options) addColumn(col string) {
	if !slices.Contains(o.Columns, col) {
		o.Columns = append(o.Columns, col)
	}
}

// Mode returns the body grammar selected by the options.
func (o *Options) Mode() Mode {
	if o.KeySet {
		return ModeFlat
	}
	return ModeLegacy
}

// Heading returns the display label of col.
func (o *Options) Heading(col string) string {
	if h, ok := o.Headings[col]; ok {
		return h
	}
	return col
}

// Cell returns the value of col for r, falling back to the declared default.
func (o *Options) Cell(r Record, col string) string {
	if v, ok := r.Fields[col]; ok {
		return v
	}
	return o.Defaults[col]
}
