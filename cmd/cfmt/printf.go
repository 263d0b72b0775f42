package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bjaus/cfmt"
)

func printfCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "printf",
		Usage:     "render FORMAT with the given arguments",
		UsageText: "cfmt printf FORMAT [ARG...]",
		Description: `Arguments are converted to the type each directive needs: integers
for %d %i %u %o %x %X %p (a 0x prefix reads hex), floats for %f, the first
byte for %c. A * width or precision takes an integer argument. FORMAT
understands the escapes \n \t \\ and \".`,
		SkipFlagParsing: true,
		Action:          r.printf,
	}
}

func (r *runner) printf(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("printf: missing FORMAT")
	}
	format := unescape(c.Args().First())
	args, err := convertArgs(format, c.Args().Tail())
	if err != nil {
		return fmt.Errorf("printf: %w", err)
	}
	out, err := cfmt.Marshal(r.cfg.Capacity, format, args...)
	if err != nil {
		if errors.Is(err, cfmt.ErrOverflow) {
			r.log.Warn().Int("capacity", r.cfg.Capacity).Msg("output exceeds capacity")
		}
		return fmt.Errorf("printf: %w", err)
	}
	r.log.Debug().Int("bytes", len(out)).Int("args", len(args)).Msg("rendered")
	_, err = c.App.Writer.Write(out)
	return err
}

// convertArgs turns command-line strings into the typed arguments the
// directives of format will pull. Surplus strings are ignored; missing ones
// are left for the formatter to report.
func convertArgs(format string, raw []string) ([]cfmt.Arg, error) {
	dirs, err := cfmt.Parse(format)
	if err != nil {
		return nil, err
	}
	var args []cfmt.Arg
	next := func() (string, bool) {
		if len(args) >= len(raw) {
			return "", false
		}
		return raw[len(args)], true
	}
	for _, d := range dirs {
		if d.Kind == cfmt.KindLiteral || d.Kind == cfmt.KindPercent {
			continue
		}
		for _, star := range []bool{d.WidthArg, d.PrecisionArg} {
			if !star {
				continue
			}
			s, ok := next()
			if !ok {
				return args, nil
			}
			n, err := cfmt.ParseInt(s, 10)
			if err != nil {
				return nil, fmt.Errorf("%s: width or precision: %w", d, err)
			}
			args = append(args, cfmt.Int(n))
		}
		s, ok := next()
		if !ok {
			return args, nil
		}
		a, err := convertArg(d, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d, err)
		}
		args = append(args, a)
	}
	return args, nil
}

func convertArg(d cfmt.Directive, s string) (cfmt.Arg, error) {
	switch d.Kind {
	case cfmt.KindSigned:
		v, err := parseSigned(s)
		return cfmt.Int(v), err
	case cfmt.KindUnsigned, cfmt.KindOctal, cfmt.KindHex, cfmt.KindPointer:
		if strings.HasPrefix(s, "-") {
			v, err := parseSigned(s)
			return cfmt.Int(v), err
		}
		u, err := parseUnsigned(s)
		if d.Kind == cfmt.KindPointer {
			return cfmt.Ptr(uintptr(u)), err
		}
		return cfmt.Uint(u), err
	case cfmt.KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfmt.Arg{}, fmt.Errorf("%w: %q", cfmt.ErrSyntax, s)
		}
		return cfmt.Float(v), nil
	case cfmt.KindChar:
		if s == "" {
			return cfmt.Char(0), nil
		}
		return cfmt.Char(s[0]), nil
	default:
		return cfmt.Str(s), nil
	}
}

func parseSigned(s string) (int64, error) {
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if hex, ok := cutHex(body); ok {
		u, err := cfmt.ParseUint(hex, 16)
		if neg {
			return -int64(u), err
		}
		return int64(u), err
	}
	return cfmt.ParseInt(s, 10)
}

func parseUnsigned(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "+")
	if hex, ok := cutHex(s); ok {
		return cfmt.ParseUint(hex, 16)
	}
	return cfmt.ParseUint(s, 10)
}

func cutHex(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(s, "0X")
}

// unescape expands the backslash escapes printf(1) users expect in FORMAT.
// Unknown escapes are kept as written.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
