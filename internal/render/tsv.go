package render

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV(w io.Writer, header []string, records []record) error {
	if len(header) > 0 {
		if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
			return err
		}
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(r.cells(), "\t")); err != nil {
			return err
		}
	}
	return nil
}
