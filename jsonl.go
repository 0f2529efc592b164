package flattable

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	for _, r := range t.Records {
		if err := enc.Encode(t.exportRow(r)); err != nil {
			return err
		}
	}
	return nil
}
