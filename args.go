package cfmt

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

type argType uint8

const (
	argInt argType = iota + 1
	argUint
	argFloat
	argChar
	argString
	argPointer
)

var argTypeNames = [...]string{
	argInt:     "int",
	argUint:    "uint",
	argFloat:   "float",
	argChar:    "char",
	argString:  "string",
	argPointer: "pointer",
}

// Arg is one value of the argument stream consumed by Format. Build it with
// Int, Uint, Float, Char, Str or Ptr.
type Arg struct {
	typ argType
	i   int64
	u   uint64
	f   float64
	s   string
}

// Int returns a signed integer argument.
func Int[T constraints.Signed](v T) Arg { return Arg{typ: argInt, i: int64(v)} }

// Uint returns an unsigned integer argument.
func Uint[T constraints.Unsigned](v T) Arg { return Arg{typ: argUint, u: uint64(v)} }

// Float returns a floating-point argument.
func Float[T constraints.Float](v T) Arg { return Arg{typ: argFloat, f: float64(v)} }

// Char returns a single-byte argument.
func Char(c byte) Arg { return Arg{typ: argChar, u: uint64(c)} }

// Str returns a string argument.
func Str(s string) Arg { return Arg{typ: argString, s: s} }

// Ptr returns a pointer argument rendered by %p.
func Ptr(p uintptr) Arg { return Arg{typ: argPointer, u: uint64(p)} }

// String describes the argument for error messages.
func (a Arg) String() string {
	if a.typ == 0 {
		return "invalid"
	}
	return argTypeNames[a.typ]
}

// argStream hands out arguments strictly left to right.
type argStream struct {
	args []Arg
	next int
}

func (s *argStream) pull(d Directive, what string) (Arg, error) {
	if s.next >= len(s.args) {
		return Arg{}, fmt.Errorf("%w: %s for %s (argument %d)", ErrMissingArgument, what, d, s.next+1)
	}
	a := s.args[s.next]
	s.next++
	return a, nil
}

func mismatch(d Directive, a Arg, what string) error {
	return fmt.Errorf("%w: %s needs %s, got %s", ErrArgumentType, d, what, a)
}

// star pulls a * width or precision.
func (s *argStream) star(d Directive, what string) (int, error) {
	a, err := s.pull(d, what)
	if err != nil {
		return 0, err
	}
	switch a.typ {
	case argInt:
		return int(max(min(a.i, math.MaxInt32), math.MinInt32)), nil
	case argUint:
		return int(min(a.u, math.MaxInt32)), nil
	default:
		return 0, mismatch(d, a, "an integer "+what)
	}
}

// signed reduces the argument to the integer width selected by the
// directive's length modifier.
func (a Arg) signed(d Directive) (int64, error) {
	var v int64
	switch a.typ {
	case argInt:
		v = a.i
	case argUint, argChar, argPointer:
		v = int64(a.u)
	default:
		return 0, mismatch(d, a, "an integer")
	}
	switch d.Length {
	case LengthShort:
		return int64(int16(v)), nil
	case LengthLong, LengthLongDouble:
		return v, nil
	default:
		return int64(int32(v)), nil
	}
}

func (a Arg) unsigned(d Directive) (uint64, error) {
	var u uint64
	switch a.typ {
	case argInt:
		u = uint64(a.i)
	case argUint, argChar, argPointer:
		u = a.u
	default:
		return 0, mismatch(d, a, "an integer")
	}
	if d.Kind == KindPointer {
		return u, nil
	}
	switch d.Length {
	case LengthShort:
		return uint64(uint16(u)), nil
	case LengthLong, LengthLongDouble:
		return u, nil
	default:
		return uint64(uint32(u)), nil
	}
}

func (a Arg) float(d Directive) (float64, error) {
	if a.typ != argFloat {
		return 0, mismatch(d, a, "a float")
	}
	return a.f, nil
}

func (a Arg) char(d Directive) (byte, error) {
	switch a.typ {
	case argChar, argUint:
		return byte(a.u), nil
	case argInt:
		return byte(a.i), nil
	default:
		return 0, mismatch(d, a, "a char")
	}
}

func (a Arg) str(d Directive) (string, error) {
	if a.typ != argString {
		return "", mismatch(d, a, "a string")
	}
	return a.s, nil
}
