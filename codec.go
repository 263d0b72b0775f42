package cfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const digits = "0123456789abcdef"

const (
	// MaxPrecision is the largest number of fractional digits FormatFloat
	// produces. Larger requests are clamped.
	MaxPrecision = 10

	// DefaultPrecision is the fractional digit count used by %f when the
	// directive carries no precision.
	DefaultPrecision = 6
)

// rounders[p] is the half-up increment for p fractional digits.
var rounders = [MaxPrecision + 1]float64{
	0.5, 0.05, 0.005, 0.0005, 0.00005, 0.000005,
	0.0000005, 0.00000005, 0.000000005, 0.0000000005, 0.00000000005,
}

func checkBase(base int) {
	if base < 2 || base > len(digits) {
		panic("cfmt: illegal base " + strconv.Itoa(base))
	}
}

// reverse reverses b in place.
func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// AppendUint appends the text of u in the given base (2 to 16) to dst.
func AppendUint(dst []byte, u uint64, base int) []byte {
	checkBase(base)
	var a [64]byte
	n := 0
	b := uint64(base)
	for {
		a[n] = digits[u%b]
		n++
		u /= b
		if u == 0 {
			break
		}
	}
	reverse(a[:n])
	return append(dst, a[:n]...)
}

// AppendInt appends the text of v in the given base (2 to 16) to dst.
// Negative values carry a leading minus sign; no other sign is written.
func AppendInt(dst []byte, v int64, base int) []byte {
	checkBase(base)
	var a [65]byte // 64 binary digits plus sign
	n := 0
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	b := uint64(base)
	for {
		a[n] = digits[u%b]
		n++
		u /= b
		if u == 0 {
			break
		}
	}
	if v < 0 {
		a[n] = '-'
		n++
	}
	reverse(a[:n])
	return append(dst, a[:n]...)
}

// FormatUint returns the text of u in the given base.
func FormatUint(u uint64, base int) string { return string(AppendUint(nil, u, base)) }

// FormatInt returns the text of v in the given base.
func FormatInt(v int64, base int) string { return string(AppendInt(nil, v, base)) }

func clampPrecision(prec int) int {
	if prec < 0 {
		return 0
	}
	return min(prec, MaxPrecision)
}

// AppendFloat appends v in fixed-point notation with prec fractional digits.
//
// Rounding is half-up at the requested precision: the increment
// 0.5×10^-prec is added to the magnitude before the integer and fractional
// parts are split and truncated. A precision of zero writes no decimal
// point. Precision is clamped to [0, MaxPrecision]. Negative zero keeps its
// sign.
func AppendFloat(dst []byte, v float64, prec int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	prec = clampPrecision(prec)
	if math.Signbit(v) {
		dst = append(dst, '-')
		v = -v
	}
	v += rounders[prec]

	ip := math.Trunc(v)
	frac := v - ip
	if ip < 1<<64 {
		dst = AppendUint(dst, uint64(ip), 10)
	} else {
		dst = strconv.AppendFloat(dst, ip, 'f', 0, 64)
	}
	if prec == 0 {
		return dst
	}
	dst = append(dst, '.')
	for range prec {
		frac *= 10
		d := min(int(frac), 9)
		dst = append(dst, digits[d])
		frac -= float64(d)
	}
	return dst
}

// FormatFloat returns v in fixed-point notation with prec fractional digits.
func FormatFloat(v float64, prec int) string { return string(AppendFloat(nil, v, prec)) }

func digitVal(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	default:
		return 16
	}
}

// ParseUint parses s, a run of digits in the given base, as produced by
// FormatUint. No sign or prefix is accepted.
func ParseUint(s string, base int) (uint64, error) {
	checkBase(base)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	b := uint64(base)
	var u uint64
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i])
		if d >= base {
			return 0, fmt.Errorf("%w: %q in base %d", ErrSyntax, s, base)
		}
		if u > (math.MaxUint64-uint64(d))/b {
			return 0, fmt.Errorf("%w: %q", ErrRange, s)
		}
		u = u*b + uint64(d)
	}
	return u, nil
}

// ParseInt parses s as produced by FormatInt: an optional sign followed by
// digits in the given base.
func ParseInt(s string, base int) (int64, error) {
	neg := false
	body := s
	if body != "" && (body[0] == '-' || body[0] == '+') {
		neg = body[0] == '-'
		body = body[1:]
	}
	u, err := ParseUint(body, base)
	if err != nil {
		if errors.Is(err, ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrRange, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	if neg {
		if u > 1<<63 {
			return 0, fmt.Errorf("%w: %q", ErrRange, s)
		}
		return -int64(u), nil
	}
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrRange, s)
	}
	return int64(u), nil
}
