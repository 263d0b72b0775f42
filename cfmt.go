package cfmt

import (
	"errors"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrOverflow           = errors.New("destination overflow")
	ErrMissingArgument    = errors.New("missing argument")
	ErrArgumentType       = errors.New("argument type mismatch")
	ErrMalformedDirective = errors.New("malformed directive")
	ErrMissingTarget      = errors.New("missing target")
	ErrTargetType         = errors.New("target type mismatch")
	ErrSyntax             = errors.New("invalid syntax")
	ErrRange              = errors.New("value out of range")
)

// Kind identifies what a directive converts.
type Kind int

const (
	KindLiteral Kind = iota
	KindSigned
	KindUnsigned
	KindOctal
	KindHex
	KindPointer
	KindChar
	KindString
	KindFloat
	KindPercent
)

var kindNames = [...]string{
	KindLiteral:  "literal",
	KindSigned:   "signed",
	KindUnsigned: "unsigned",
	KindOctal:    "octal",
	KindHex:      "hex",
	KindPointer:  "pointer",
	KindChar:     "char",
	KindString:   "string",
	KindFloat:    "float",
	KindPercent:  "percent",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Base returns the numeric base of the kind. Non-numeric kinds report 10.
func (k Kind) Base() int {
	switch k {
	case KindOctal:
		return 8
	case KindHex, KindPointer:
		return 16
	default:
		return 10
	}
}

// Flag is a directive modifier. Flags are independent bits.
type Flag uint8

const (
	FlagLeft  Flag = 1 << iota // -
	FlagPlus                   // +
	FlagSpace                  // (space)
	FlagAlt                    // #
	FlagZero                   // 0
)

var flagChars = []struct {
	flag Flag
	char byte
}{
	{FlagLeft, '-'},
	{FlagPlus, '+'},
	{FlagSpace, ' '},
	{FlagAlt, '#'},
	{FlagZero, '0'},
}

// Has reports whether all bits of f2 are set in f.
func (f Flag) Has(f2 Flag) bool { return f&f2 == f2 }

// String returns the flag characters in canonical order.
func (f Flag) String() string {
	var b []byte
	for _, fc := range flagChars {
		if f.Has(fc.flag) {
			b = append(b, fc.char)
		}
	}
	return string(b)
}

func flagOf(c byte) (Flag, bool) {
	for _, fc := range flagChars {
		if fc.char == c {
			return fc.flag, true
		}
	}
	return 0, false
}

// Length is the argument size modifier of a directive. It selects which
// integer width is pulled from the argument stream; it never changes the
// conversion itself.
type Length int

const (
	LengthNone       Length = iota
	LengthShort             // h
	LengthLong              // l
	LengthLongDouble        // L
)

// String returns the modifier as written in a format string.
func (l Length) String() string {
	switch l {
	case LengthShort:
		return "h"
	case LengthLong:
		return "l"
	case LengthLongDouble:
		return "L"
	default:
		return ""
	}
}

// Write renders format against args and writes the result to w. The rendered
// output may not exceed capacity bytes.
func Write(w io.Writer, capacity int, format string, args ...Arg) error {
	out, err := Marshal(capacity, format, args...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Marshal renders format against args and returns the rendered bytes. The
// output may not exceed capacity bytes. Only the rendered output is
// allocated.
func Marshal(capacity int, format string, args ...Arg) ([]byte, error) {
	out, err := render(max(capacity, 0), format, args)
	if err != nil {
		return nil, err
	}
	return out.buf, nil
}
