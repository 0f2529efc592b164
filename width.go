package flattable

import (
	"regexp"
)

var widthMarkerPattern = regexp.MustCompile(`<!-- table-width ([^\n ]+) -->\n([^\n]*?<table\b)`)

// WidthMarker returns the comment line that carries a requested table
// width until [PatchWidth] consumes it.
func WidthMarker(width string) string {
	return "<!-- table-width width='" + width + "' -->"
}

// PatchWidth moves every width marker onto the first <table tag of the line
// that follows it. Markers without such a table are left in place.
func PatchWidth(doc string) string {
	return widthMarkerPattern.ReplaceAllString(doc, "$2 $1")
}
