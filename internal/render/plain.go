package render

import (
	"fmt"
	"io"
	"strings"
)

func writePlain(w io.Writer, records []record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(r.cells(), " ")); err != nil {
			return err
		}
	}
	return nil
}
