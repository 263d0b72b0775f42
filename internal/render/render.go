// Package render writes scanned records in a choice of output formats.
//
// A record is a row of typed values (integers, floats, strings) with a shared
// header naming each column. JSON and YAML emit one object per record with
// keys in header order; the text formats stringify each value.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format represents an output format.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	TSV   Format = "tsv"
	Table Format = "table"
	Plain Format = "plain"
)

var formats = []Format{JSON, JSONL, YAML, CSV, TSV, Table, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write renders rows under header in format f.
func Write(w io.Writer, f Format, header []string, rows [][]any) error {
	records := make([]record, len(rows))
	for i, row := range rows {
		records[i] = record{header: header, values: row}
	}
	switch f {
	case JSON:
		return writeJSON(w, records)
	case JSONL:
		return writeJSONL(w, records)
	case YAML:
		return writeYAML(w, records)
	case CSV:
		return writeCSV(w, header, records)
	case TSV:
		return writeTSV(w, header, records)
	case Table:
		return writeTable(w, header, records)
	case Plain:
		return writePlain(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// record is one row of values. It marshals as a mapping whose keys follow
// the header order.
type record struct {
	header []string
	values []any
}

func (r record) key(i int) string {
	if i < len(r.header) && r.header[i] != "" {
		return r.header[i]
	}
	return "field" + strconv.Itoa(i+1)
}

// cells stringifies the values for the text formats.
func (r record) cells() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = cell(v)
	}
	return out
}

func cell(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case byte:
		return string(rune(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.key(i))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if b, ok := v.(byte); ok {
			v = string(rune(b))
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r record) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, v := range r.values {
		k := &yaml.Node{}
		k.SetString(r.key(i))
		if b, ok := v.(byte); ok {
			v = string(rune(b))
		}
		val := &yaml.Node{}
		if err := val.Encode(v); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, k, val)
	}
	return n, nil
}
