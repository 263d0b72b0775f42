package render

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, records []record) error {
	if len(records) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if len(records) == 1 {
		if err := enc.Encode(records[0]); err != nil {
			return err
		}
	} else {
		if err := enc.Encode(records); err != nil {
			return err
		}
	}
	return enc.Close()
}
