package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/bjaus/cfmt"
	"github.com/bjaus/cfmt/internal/render"
)

func scanfCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "scanf",
		Usage:     "scan each line of standard input with FORMAT",
		UsageText: "cfmt [--output FORMAT] scanf FORMAT",
		Description: `Every line of standard input is scanned with FORMAT. The assigned
values of each line become one record, written in the --output format.
Lines that assign nothing are skipped.`,
		SkipFlagParsing: true,
		Action:          r.scanf,
	}
}

// slot holds the value of one assigning directive between lines.
type slot struct {
	kind cfmt.Kind
	i    int64
	u    uint64
	f    float64
	c    byte
	s    string
}

func (s *slot) target() cfmt.Target {
	switch s.kind {
	case cfmt.KindSigned:
		return cfmt.IntoInt(&s.i)
	case cfmt.KindUnsigned, cfmt.KindOctal, cfmt.KindHex:
		return cfmt.IntoUint(&s.u)
	case cfmt.KindFloat:
		return cfmt.IntoFloat(&s.f)
	case cfmt.KindChar:
		return cfmt.IntoByte(&s.c)
	default:
		return cfmt.IntoString(&s.s)
	}
}

func (s *slot) value() any {
	switch s.kind {
	case cfmt.KindSigned:
		return s.i
	case cfmt.KindUnsigned, cfmt.KindOctal, cfmt.KindHex:
		return s.u
	case cfmt.KindFloat:
		return s.f
	case cfmt.KindChar:
		return s.c
	default:
		return s.s
	}
}

// scanSlots builds one slot per assigning directive of format, with a
// column name made of the kind and its position.
func scanSlots(format string) ([]*slot, []string, error) {
	dirs, err := cfmt.ParseScan(format)
	if err != nil {
		return nil, nil, err
	}
	var slots []*slot
	var header []string
	for _, d := range dirs {
		if d.Kind == cfmt.KindLiteral || d.Kind == cfmt.KindPercent || d.Suppress {
			continue
		}
		slots = append(slots, &slot{kind: d.Kind})
		header = append(header, d.Kind.String()+strconv.Itoa(len(slots)))
	}
	return slots, header, nil
}

func (r *runner) scanf(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("scanf: missing FORMAT")
	}
	format := unescape(c.Args().First())
	slots, header, err := scanSlots(format)
	if err != nil {
		return fmt.Errorf("scanf: %w", err)
	}
	targets := make([]cfmt.Target, len(slots))
	for i, s := range slots {
		targets[i] = s.target()
	}

	sc := cfmt.Scanner{Strict: r.cfg.Strict}
	var rows [][]any
	line := 0
	for n, err := range cfmt.ScanLinesWith(sc, c.App.Reader, format, targets...) {
		line++
		if err != nil {
			return fmt.Errorf("scanf: line %d: %w", line, err)
		}
		if n < len(slots) {
			r.log.Debug().Int("line", line).Int("assigned", n).Int("want", len(slots)).Msg("partial match")
		}
		if n == 0 {
			continue
		}
		row := make([]any, n)
		for i := range n {
			row[i] = slots[i].value()
		}
		rows = append(rows, row)
	}
	r.log.Info().Int("lines", line).Int("records", len(rows)).Msg("scan complete")
	return render.Write(c.App.Writer, render.Format(r.cfg.Output), header, rows)
}
