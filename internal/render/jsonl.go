package render

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, records []record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
