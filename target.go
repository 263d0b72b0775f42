package cfmt

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type targetType uint8

const (
	targetInt targetType = iota + 1
	targetUint
	targetFloat
	targetByte
	targetString
)

var targetTypeNames = [...]string{
	targetInt:    "IntoInt",
	targetUint:   "IntoUint",
	targetFloat:  "IntoFloat",
	targetByte:   "IntoByte",
	targetString: "IntoString",
}

// token is a recognized input value on its way to a target.
type token struct {
	i int64
	u uint64
	f float64
	s string
}

// Target is a typed write slot filled by Scan. Build it with IntoInt,
// IntoUint, IntoFloat, IntoByte or IntoString. A target stores through its
// pointer with Go's conversion rules, so it never writes more than the
// pointee's width.
type Target struct {
	typ   targetType
	store func(token)
}

// IntoInt returns a target for %d and %i.
func IntoInt[T constraints.Signed](p *T) Target {
	return Target{typ: targetInt, store: func(t token) { *p = T(t.i) }}
}

// IntoUint returns a target for %u, %o, %x and %X.
func IntoUint[T constraints.Unsigned](p *T) Target {
	return Target{typ: targetUint, store: func(t token) { *p = T(t.u) }}
}

// IntoFloat returns a target for %f.
func IntoFloat[T constraints.Float](p *T) Target {
	return Target{typ: targetFloat, store: func(t token) { *p = T(t.f) }}
}

// IntoByte returns a target for %c.
func IntoByte(p *byte) Target {
	return Target{typ: targetByte, store: func(t token) { *p = byte(t.u) }}
}

// IntoString returns a target for %s.
func IntoString(p *string) Target {
	return Target{typ: targetString, store: func(t token) { *p = t.s }}
}

// String names the constructor the target was built with.
func (t Target) String() string {
	if t.typ == 0 {
		return "invalid target"
	}
	return targetTypeNames[t.typ]
}

func wantTarget(k Kind) targetType {
	switch k {
	case KindSigned:
		return targetInt
	case KindUnsigned, KindOctal, KindHex:
		return targetUint
	case KindFloat:
		return targetFloat
	case KindChar:
		return targetByte
	case KindString:
		return targetString
	default:
		return 0
	}
}

// targetStream hands out targets strictly left to right.
type targetStream struct {
	targets []Target
	next    int
}

func (s *targetStream) pull(d Directive) (Target, error) {
	if s.next >= len(s.targets) {
		return Target{}, fmt.Errorf("%w: %s (target %d)", ErrMissingTarget, d, s.next+1)
	}
	t := s.targets[s.next]
	s.next++
	if want := wantTarget(d.Kind); t.typ != want {
		return Target{}, fmt.Errorf("%w: %s needs %s, got %s", ErrTargetType, d, targetTypeNames[want], t)
	}
	return t, nil
}
