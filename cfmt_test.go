package cfmt_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bjaus/cfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// --- Fixtures ---

type fixtureArg struct {
	Int   *int64   `yaml:"int"`
	Uint  *uint64  `yaml:"uint"`
	Float *float64 `yaml:"float"`
	Char  *string  `yaml:"char"`
	Str   *string  `yaml:"str"`
	Ptr   *uint64  `yaml:"ptr"`
}

func (a fixtureArg) arg(t *testing.T) cfmt.Arg {
	t.Helper()
	switch {
	case a.Int != nil:
		return cfmt.Int(*a.Int)
	case a.Uint != nil:
		return cfmt.Uint(*a.Uint)
	case a.Float != nil:
		return cfmt.Float(*a.Float)
	case a.Char != nil:
		require.Len(t, *a.Char, 1)
		return cfmt.Char((*a.Char)[0])
	case a.Str != nil:
		return cfmt.Str(*a.Str)
	case a.Ptr != nil:
		return cfmt.Ptr(uintptr(*a.Ptr))
	}
	t.Fatalf("empty fixture argument")
	return cfmt.Arg{}
}

type formatCase struct {
	Name   string       `yaml:"name"`
	Format string       `yaml:"format"`
	Args   []fixtureArg `yaml:"args"`
	Want   string       `yaml:"want"`
}

type scanCase struct {
	Name    string   `yaml:"name"`
	Source  string   `yaml:"source"`
	Format  string   `yaml:"format"`
	Strict  bool     `yaml:"strict"`
	Targets []string `yaml:"targets"`
	Want    []string `yaml:"want"`
}

func loadFixture[T any](t *testing.T, path string) []T {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cases []T
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

// scanSlot builds a target by name and reports what it holds.
func scanSlot(t *testing.T, name string) (cfmt.Target, func() string) {
	t.Helper()
	switch name {
	case "int":
		v := new(int64)
		return cfmt.IntoInt(v), func() string { return fmt.Sprint(*v) }
	case "uint":
		v := new(uint64)
		return cfmt.IntoUint(v), func() string { return fmt.Sprint(*v) }
	case "float":
		v := new(float64)
		return cfmt.IntoFloat(v), func() string { return fmt.Sprint(*v) }
	case "byte":
		v := new(byte)
		return cfmt.IntoByte(v), func() string { return string(*v) }
	case "string":
		v := new(string)
		return cfmt.IntoString(v), func() string { return *v }
	}
	t.Fatalf("unknown target %q", name)
	return cfmt.Target{}, nil
}

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

// ============================================================
// Format
// ============================================================

func TestFormatFixtures(t *testing.T) {
	t.Parallel()
	for _, tc := range loadFixture[formatCase](t, "testdata/format.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			args := make([]cfmt.Arg, len(tc.Args))
			for i, a := range tc.Args {
				args[i] = a.arg(t)
			}
			buf := make([]byte, 64)
			n, err := cfmt.Format(buf, tc.Format, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.Want, string(buf[:n]))
		})
	}
}

func TestFormatExactFit(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 5)
	n, err := cfmt.Format(buf, "%s", cfmt.Str("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
}

func TestFormatOverflowLeavesDestination(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []cfmt.Arg
	}{
		"literal":   {format: "hello world"},
		"string":    {format: "%s", args: []cfmt.Arg{cfmt.Str("hello world")}},
		"padding":   {format: "%20d", args: []cfmt.Arg{cfmt.Int(1)}},
		"zero pad":  {format: "%020d", args: []cfmt.Arg{cfmt.Int(1)}},
		"float":     {format: "%.10f", args: []cfmt.Arg{cfmt.Float(1.0)}},
		"percent":   {format: "12345%%"},
		"late fail": {format: "ok %d %s", args: []cfmt.Arg{cfmt.Int(1), cfmt.Str("too long")}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			buf := bytes.Repeat([]byte{'z'}, 5)
			n, err := cfmt.Format(buf, tt.format, tt.args...)
			require.ErrorIs(t, err, cfmt.ErrOverflow)
			assert.Zero(t, n)
			assert.Equal(t, "zzzzz", string(buf))
		})
	}
}

func TestFormatEmptyDestination(t *testing.T) {
	t.Parallel()
	n, err := cfmt.Format(nil, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = cfmt.Format(nil, "x")
	require.ErrorIs(t, err, cfmt.ErrOverflow)
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []cfmt.Arg
		want   error
	}{
		"missing value":      {format: "%d %d", args: []cfmt.Arg{cfmt.Int(1)}, want: cfmt.ErrMissingArgument},
		"missing star width": {format: "%*d", want: cfmt.ErrMissingArgument},
		"missing after star": {format: "%*d", args: []cfmt.Arg{cfmt.Int(3)}, want: cfmt.ErrMissingArgument},
		"int for string":     {format: "%s", args: []cfmt.Arg{cfmt.Int(1)}, want: cfmt.ErrArgumentType},
		"string for int":     {format: "%d", args: []cfmt.Arg{cfmt.Str("1")}, want: cfmt.ErrArgumentType},
		"int for float":      {format: "%f", args: []cfmt.Arg{cfmt.Int(1)}, want: cfmt.ErrArgumentType},
		"float for char":     {format: "%c", args: []cfmt.Arg{cfmt.Float(1.0)}, want: cfmt.ErrArgumentType},
		"string for star":    {format: "%*d", args: []cfmt.Arg{cfmt.Str("3"), cfmt.Int(1)}, want: cfmt.ErrArgumentType},
		"zero value arg":     {format: "%d", args: []cfmt.Arg{{}}, want: cfmt.ErrArgumentType},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			buf := []byte("untouched")
			_, err := cfmt.Format(buf, tt.format, tt.args...)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, "untouched", string(buf))
		})
	}
}

func TestFormatGenericArgs(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 64)
	n, err := cfmt.Format(buf, "%d %u %.1f %c",
		cfmt.Int(int8(-3)), cfmt.Uint(uint16(9)), cfmt.Float(float32(0.5)), cfmt.Uint(uint8('z')))
	require.NoError(t, err)
	assert.Equal(t, "-3 9 0.5 z", string(buf[:n]))
}

func TestArgString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "int", cfmt.Int(1).String())
	assert.Equal(t, "pointer", cfmt.Ptr(1).String())
	assert.Equal(t, "invalid", cfmt.Arg{}.String())
}

func TestMarshal(t *testing.T) {
	t.Parallel()
	out, err := cfmt.Marshal(16, "%s=%d", cfmt.Str("n"), cfmt.Int(7))
	require.NoError(t, err)
	assert.Equal(t, "n=7", string(out))

	_, err = cfmt.Marshal(2, "%s=%d", cfmt.Str("n"), cfmt.Int(7))
	require.ErrorIs(t, err, cfmt.ErrOverflow)

	_, err = cfmt.Marshal(-1, "x")
	require.ErrorIs(t, err, cfmt.ErrOverflow)
}

func TestMarshalAllocatesOutputOnly(t *testing.T) {
	t.Parallel()
	out, err := cfmt.Marshal(1<<40, "%d", cfmt.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "5", string(out))
	assert.LessOrEqual(t, cap(out), 256)
}

func TestWrite(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, cfmt.Write(&buf, 16, "[%5s]", cfmt.Str("ab")))
	assert.Equal(t, "[   ab]", buf.String())

	err := cfmt.Write(&errWriter{}, 16, "x")
	require.ErrorIs(t, err, errWriteFailed)

	buf.Reset()
	err = cfmt.Write(&buf, 2, "xyz")
	require.ErrorIs(t, err, cfmt.ErrOverflow)
	assert.Zero(t, buf.Len())
}

// ============================================================
// Codec
// ============================================================

func TestFormatInt(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    int64
		base int
		want string
	}{
		"zero":          {v: 0, base: 10, want: "0"},
		"negative":      {v: -255, base: 16, want: "-ff"},
		"binary":        {v: 5, base: 2, want: "101"},
		"octal":         {v: 64, base: 8, want: "100"},
		"min int64":     {v: math.MinInt64, base: 10, want: "-9223372036854775808"},
		"max int64 hex": {v: math.MaxInt64, base: 16, want: "7fffffffffffffff"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfmt.FormatInt(tt.v, tt.base))
		})
	}
}

func TestFormatUint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "11111111", cfmt.FormatUint(255, 2))
	assert.Equal(t, "0", cfmt.FormatUint(0, 8))
	assert.Equal(t, "ffffffffffffffff", cfmt.FormatUint(math.MaxUint64, 16))
	assert.Equal(t, "id=42", string(cfmt.AppendUint([]byte("id="), 42, 10)))
	assert.Equal(t, "n=-1", string(cfmt.AppendInt([]byte("n="), -1, 10)))
}

func TestIllegalBasePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cfmt.FormatInt(1, 1) })
	assert.Panics(t, func() { cfmt.FormatUint(1, 17) })
	assert.Panics(t, func() { _, _ = cfmt.ParseUint("1", 0) })
}

func TestParseIntRoundTrip(t *testing.T) {
	t.Parallel()
	values := []int64{0, 1, -1, 42, -42, 255, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64}
	for _, base := range []int{2, 8, 10, 16} {
		for _, v := range values {
			got, err := cfmt.ParseInt(cfmt.FormatInt(v, base), base)
			require.NoError(t, err, "value %d base %d", v, base)
			assert.Equal(t, v, got, "base %d", base)
		}
	}
}

func TestParseUintRoundTrip(t *testing.T) {
	t.Parallel()
	for _, base := range []int{2, 8, 10, 16} {
		for _, u := range []uint64{0, 7, 1 << 32, math.MaxUint64} {
			got, err := cfmt.ParseUint(cfmt.FormatUint(u, base), base)
			require.NoError(t, err)
			assert.Equal(t, u, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		s      string
		base   int
		signed bool
		want   error
	}{
		"empty":            {s: "", base: 10, want: cfmt.ErrSyntax},
		"bad digit":        {s: "12a", base: 10, want: cfmt.ErrSyntax},
		"digit over base":  {s: "8", base: 8, want: cfmt.ErrSyntax},
		"unsigned sign":    {s: "+1", base: 10, want: cfmt.ErrSyntax},
		"uint overflow":    {s: "18446744073709551616", base: 10, want: cfmt.ErrRange},
		"bare sign":        {s: "-", base: 10, signed: true, want: cfmt.ErrSyntax},
		"int overflow":     {s: "9223372036854775808", base: 10, signed: true, want: cfmt.ErrRange},
		"int underflow":    {s: "-9223372036854775809", base: 10, signed: true, want: cfmt.ErrRange},
		"int huge":         {s: "99999999999999999999", base: 10, signed: true, want: cfmt.ErrRange},
		"int bad hex char": {s: "-fg", base: 16, signed: true, want: cfmt.ErrSyntax},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var err error
			if tt.signed {
				_, err = cfmt.ParseInt(tt.s, tt.base)
			} else {
				_, err = cfmt.ParseUint(tt.s, tt.base)
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseIntSigns(t *testing.T) {
	t.Parallel()
	v, err := cfmt.ParseInt("+7", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = cfmt.ParseInt("-FF", 16)
	require.NoError(t, err)
	assert.Equal(t, int64(-255), v)
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    float64
		prec int
		want string
	}{
		"two places":       {v: 3.14159, prec: 2, want: "3.14"},
		"round up":         {v: 0.125, prec: 2, want: "0.13"},
		"zero precision":   {v: 2.5, prec: 0, want: "3"},
		"negative half":    {v: -0.5, prec: 0, want: "-1"},
		"zero":             {v: 0, prec: 2, want: "0.00"},
		"default digits":   {v: 12345.6789, prec: 6, want: "12345.678900"},
		"clamped":          {v: 1, prec: 12, want: "1.0000000000"},
		"negative prec":    {v: 1.5, prec: -3, want: "2"},
		"nan":              {v: math.NaN(), prec: 2, want: "nan"},
		"inf":              {v: math.Inf(1), prec: 2, want: "inf"},
		"negative inf":     {v: math.Inf(-1), prec: 2, want: "-inf"},
		"beyond uint64":    {v: 1e20, prec: 1, want: "100000000000000000000.0"},
		"negative integer": {v: -7, prec: 1, want: "-7.0"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfmt.FormatFloat(tt.v, tt.prec))
		})
	}
}

func TestFormatFloatHalfUp(t *testing.T) {
	t.Parallel()
	for _, v := range []float64{1.005, 0.125, 3.14159} {
		scaled := int64(math.Trunc((v + 0.005) * 100))
		want := fmt.Sprintf("%d.%02d", scaled/100, scaled%100)

		buf := make([]byte, 16)
		n, err := cfmt.Format(buf, "%.2f", cfmt.Float(v))
		require.NoError(t, err)
		assert.Equal(t, want, string(buf[:n]), "value %v", v)
	}
}

func TestFormatFloatNegativeZero(t *testing.T) {
	t.Parallel()
	negZero := math.Copysign(0, -1)
	assert.Equal(t, "-0.00", cfmt.FormatFloat(negZero, 2))

	buf := make([]byte, 16)
	n, err := cfmt.Format(buf, "%f|%06.1f", cfmt.Float(negZero), cfmt.Float(negZero))
	require.NoError(t, err)
	assert.Equal(t, "-0.000000|-000.0", string(buf[:n]))
}

func TestAppendFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pi=3.1416", string(cfmt.AppendFloat([]byte("pi="), math.Pi, 4)))
}

// ============================================================
// Directives
// ============================================================

func TestParse(t *testing.T) {
	t.Parallel()
	dirs, err := cfmt.Parse("a%-08.3ldb%*.*s%%")
	require.NoError(t, err)
	require.Len(t, dirs, 5)

	assert.Equal(t, cfmt.Directive{Kind: cfmt.KindLiteral, Literal: "a"}, dirs[0])

	d := dirs[1]
	assert.Equal(t, cfmt.KindSigned, d.Kind)
	assert.True(t, d.Flags.Has(cfmt.FlagLeft))
	assert.False(t, d.Flags.Has(cfmt.FlagZero), "- overrides 0")
	assert.Equal(t, 8, d.Width)
	assert.True(t, d.HasPrecision)
	assert.Equal(t, 3, d.Precision)
	assert.Equal(t, cfmt.LengthLong, d.Length)
	assert.Equal(t, "%-8.3ld", d.String())

	assert.Equal(t, "b", dirs[2].Literal)
	assert.True(t, dirs[3].WidthArg)
	assert.True(t, dirs[3].PrecisionArg)
	assert.Equal(t, "%*.*s", dirs[3].String())
	assert.Equal(t, cfmt.KindPercent, dirs[4].Kind)
}

func TestParseScan(t *testing.T) {
	t.Parallel()
	dirs, err := cfmt.ParseScan("%*5hd %X")
	require.NoError(t, err)
	require.Len(t, dirs, 3)
	assert.True(t, dirs[0].Suppress)
	assert.Equal(t, 5, dirs[0].Width)
	assert.Equal(t, cfmt.LengthShort, dirs[0].Length)
	assert.Equal(t, "%*5hd", dirs[0].String())
	assert.Equal(t, 16, dirs[2].Base())
	assert.True(t, dirs[2].Upper())
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		parse  func(string) ([]cfmt.Directive, error)
		format string
	}{
		"unknown verb":        {parse: cfmt.Parse, format: "x%q"},
		"unterminated":        {parse: cfmt.Parse, format: "x%5"},
		"lone percent":        {parse: cfmt.Parse, format: "%"},
		"scan pointer":        {parse: cfmt.ParseScan, format: "%p"},
		"scan flags":          {parse: cfmt.ParseScan, format: "%-d"},
		"scan precision":      {parse: cfmt.ParseScan, format: "%.2f"},
		"length then unknown": {parse: cfmt.Parse, format: "%hq"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dirs, err := tt.parse(tt.format)
			require.ErrorIs(t, err, cfmt.ErrMalformedDirective)
			assert.Nil(t, dirs)
		})
	}
}

func TestKindAndFlagStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "signed", cfmt.KindSigned.String())
	assert.Equal(t, "unknown", cfmt.Kind(99).String())
	assert.Equal(t, 8, cfmt.KindOctal.Base())
	assert.Equal(t, 10, cfmt.KindString.Base())
	assert.Equal(t, "-+ #0", (cfmt.FlagLeft | cfmt.FlagPlus | cfmt.FlagSpace | cfmt.FlagAlt | cfmt.FlagZero).String())
	assert.Equal(t, "L", cfmt.LengthLongDouble.String())
	assert.Empty(t, cfmt.LengthNone.String())
}

// ============================================================
// Scan
// ============================================================

func TestScanFixtures(t *testing.T) {
	t.Parallel()
	for _, tc := range loadFixture[scanCase](t, "testdata/scan.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			targets := make([]cfmt.Target, len(tc.Targets))
			values := make([]func() string, len(tc.Targets))
			for i, name := range tc.Targets {
				targets[i], values[i] = scanSlot(t, name)
			}
			n, err := cfmt.Scanner{Strict: tc.Strict}.Scan(tc.Source, tc.Format, targets...)
			require.NoError(t, err)
			require.Equal(t, len(tc.Want), n)
			for i, want := range tc.Want {
				assert.Equal(t, want, values[i](), "assignment %d", i+1)
			}
		})
	}
}

func TestScan(t *testing.T) {
	t.Parallel()
	var (
		n int
		f float64
		c byte
	)
	count, err := cfmt.Scan("42 3.14 x", "%d %f %c", cfmt.IntoInt(&n), cfmt.IntoFloat(&f), cfmt.IntoByte(&c))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 42, n)
	assert.InDelta(t, 3.14, f, 1e-12)
	assert.Equal(t, byte('x'), c)
}

func TestScanLeavesUnassignedTargets(t *testing.T) {
	t.Parallel()
	a, b := 1, 2
	count, err := cfmt.Scan("7 x", "%d %d", cfmt.IntoInt(&a), cfmt.IntoInt(&b))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 7, a)
	// Permissive scanning finds no digit after "x", so b keeps its value.
	assert.Equal(t, 2, b)
}

func TestScanNarrowTargets(t *testing.T) {
	t.Parallel()
	var i8 int8
	var u16 uint16
	var f32 float32
	count, err := cfmt.Scan("300 70000 0.5", "%d %u %f", cfmt.IntoInt(&i8), cfmt.IntoUint(&u16), cfmt.IntoFloat(&f32))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, int8(44), i8)
	assert.Equal(t, uint16(4464), u16)
	assert.Equal(t, float32(0.5), f32)
}

func TestScanErrors(t *testing.T) {
	t.Parallel()
	var i int
	var s string
	tests := map[string]struct {
		source  string
		format  string
		targets []cfmt.Target
		count   int
		want    error
	}{
		"missing target":    {source: "1 2", format: "%d %d", targets: []cfmt.Target{cfmt.IntoInt(&i)}, count: 1, want: cfmt.ErrMissingTarget},
		"no targets":        {source: "x", format: "%s", count: 0, want: cfmt.ErrMissingTarget},
		"string for int":    {source: "1", format: "%d", targets: []cfmt.Target{cfmt.IntoString(&s)}, count: 0, want: cfmt.ErrTargetType},
		"int for unsigned":  {source: "1", format: "%x", targets: []cfmt.Target{cfmt.IntoInt(&i)}, count: 0, want: cfmt.ErrTargetType},
		"zero value target": {source: "1", format: "%d", targets: []cfmt.Target{{}}, count: 0, want: cfmt.ErrTargetType},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			n, err := cfmt.Scan(tt.source, tt.format, tt.targets...)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.count, n)
		})
	}
}

func TestScanSuppressTakesNoTarget(t *testing.T) {
	t.Parallel()
	var s string
	n, err := cfmt.Scan("skip keep", "%*4s %s", cfmt.IntoString(&s))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "keep", s)
}

func TestScanStrictVersusPermissive(t *testing.T) {
	t.Parallel()
	var v int
	n, err := cfmt.Scan("id: 12", "%d", cfmt.IntoInt(&v))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 12, v)

	n, err = cfmt.Scanner{Strict: true}.Scan("id: 12", "%d", cfmt.IntoInt(&v))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = cfmt.Scanner{Strict: true}.Scan("id: 12", "id: %d", cfmt.IntoInt(&v))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScanString(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		source string
		format string
		strict bool
		want   string
	}{
		"copies to end":            {source: "hello world", format: "%s", want: "hello world"},
		"width spans spaces":       {source: "ab cdef", format: "%5s", want: "ab cd"},
		"keeps leading spaces":     {source: "  ab", format: "%s", want: "  ab"},
		"width past end":           {source: "ab", format: "%9s", want: "ab"},
		"strict stops at space":    {source: "hello world", format: "%s", strict: true, want: "hello"},
		"strict skips leading":     {source: "  ab", format: "%s", strict: true, want: "ab"},
		"strict width within word": {source: "abcdef", format: "%3s", strict: true, want: "abc"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var s string
			n, err := cfmt.Scanner{Strict: tt.strict}.Scan(tt.source, tt.format, cfmt.IntoString(&s))
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestScanStringAtEnd(t *testing.T) {
	t.Parallel()
	var a, b string
	n, err := cfmt.Scan("x", "%s%s", cfmt.IntoString(&a), cfmt.IntoString(&b))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "x", a)

	n, err = cfmt.Scanner{Strict: true}.Scan("   ", "%s", cfmt.IntoString(&a))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTargetString(t *testing.T) {
	t.Parallel()
	var f float64
	assert.Equal(t, "IntoFloat", cfmt.IntoFloat(&f).String())
	assert.Equal(t, "invalid target", cfmt.Target{}.String())
}

// ============================================================
// Tokenizer
// ============================================================

func TestTokenizer(t *testing.T) {
	t.Parallel()
	tok := cfmt.NewTokenizer("  a,,b c")
	var got []string
	for {
		s, ok := tok.Next(", ")
		if !ok {
			break
		}
		got = append(got, s)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, ok := tok.Next(", ")
	assert.False(t, ok, "exhausted tokenizer stays exhausted")
}

func TestTokenizerChangingDelimiters(t *testing.T) {
	t.Parallel()
	tok := cfmt.NewTokenizer("key=value;next=1")
	k, ok := tok.Next("=")
	require.True(t, ok)
	v, ok := tok.Next(";")
	require.True(t, ok)
	assert.Equal(t, "key", k)
	assert.Equal(t, "value", v)
	assert.Equal(t, "next=1", tok.Rest())
}

func TestTokenizersAreIndependent(t *testing.T) {
	t.Parallel()
	a := cfmt.NewTokenizer("1 2 3")
	b := cfmt.NewTokenizer("x,y")

	s, _ := a.Next(" ")
	assert.Equal(t, "1", s)
	s, _ = b.Next(",")
	assert.Equal(t, "x", s)
	s, _ = a.Next(" ")
	assert.Equal(t, "2", s)
	s, _ = b.Next(",")
	assert.Equal(t, "y", s)
	assert.Equal(t, "3", a.Rest())
}

func TestTokenizerOnlyDelimiters(t *testing.T) {
	t.Parallel()
	_, ok := cfmt.NewTokenizer(",,,").Next(",")
	assert.False(t, ok)
	_, ok = cfmt.NewTokenizer("").Next(",")
	assert.False(t, ok)
}

func TestTokens(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(cfmt.Tokens("a;b;;c;", ";")))
	assert.Equal(t, []string{"whole"}, slices.Collect(cfmt.Tokens("whole", "")))

	var first []string
	for s := range cfmt.Tokens("a b c", " ") {
		first = append(first, s)
		break
	}
	assert.Equal(t, []string{"a"}, first)
}

// ============================================================
// Streams
// ============================================================

func TestWriteIter(t *testing.T) {
	t.Parallel()
	rows := [][]cfmt.Arg{
		{cfmt.Str("a"), cfmt.Int(1)},
		{cfmt.Str("b"), cfmt.Int(2)},
	}
	var buf bytes.Buffer
	require.NoError(t, cfmt.WriteIter(&buf, 16, "%s=%d\n", slices.Values(rows)))
	assert.Equal(t, "a=1\nb=2\n", buf.String())
}

func TestWriteIterStopsOnError(t *testing.T) {
	t.Parallel()
	rows := [][]cfmt.Arg{
		{cfmt.Str("ok")},
		{cfmt.Str("much too long")},
		{cfmt.Str("never")},
	}
	var buf bytes.Buffer
	err := cfmt.WriteIter(&buf, 4, "%s\n", slices.Values(rows))
	require.ErrorIs(t, err, cfmt.ErrOverflow)
	assert.Equal(t, "ok\n", buf.String())

	err = cfmt.WriteIter(&errWriter{}, 16, "%s\n", slices.Values(rows))
	require.ErrorIs(t, err, errWriteFailed)
}

func TestWriteChan(t *testing.T) {
	t.Parallel()
	ch := make(chan []cfmt.Arg, 3)
	for i := range 3 {
		ch <- []cfmt.Arg{cfmt.Int(i)}
	}
	close(ch)
	var buf bytes.Buffer
	require.NoError(t, cfmt.WriteChan(&buf, 8, "[%02d]", ch))
	assert.Equal(t, "[00][01][02]", buf.String())
}

func TestLines(t *testing.T) {
	t.Parallel()
	var got []string
	for line, err := range cfmt.Lines(strings.NewReader("one\r\ntwo\n\nthree")) {
		require.NoError(t, err)
		got = append(got, line)
	}
	assert.Equal(t, []string{"one", "two", "", "three"}, got)
}

func TestLinesReadError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var errs []error
	for _, err := range cfmt.Lines(iotest.ErrReader(boom)) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], boom)
}

func TestScanLines(t *testing.T) {
	t.Parallel()
	var name string
	var age int
	type person struct {
		name string
		age  int
	}
	var got []person
	var counts []int
	in := strings.NewReader("ann 31\nbob x\n")
	for n, err := range cfmt.ScanLines(in, "%3s %d", cfmt.IntoString(&name), cfmt.IntoInt(&age)) {
		require.NoError(t, err)
		counts = append(counts, n)
		if n == 2 {
			got = append(got, person{name, age})
		}
	}
	assert.Equal(t, []int{2, 1}, counts)
	assert.Equal(t, []person{{"ann", 31}}, got)
}

func TestScanLinesWithStrict(t *testing.T) {
	t.Parallel()
	var v int
	var counts []int
	for n, err := range cfmt.ScanLinesWith(cfmt.Scanner{Strict: true}, strings.NewReader("v5\n 6\n"), "%d", cfmt.IntoInt(&v)) {
		require.NoError(t, err)
		counts = append(counts, n)
	}
	assert.Equal(t, []int{0, 1}, counts)
	assert.Equal(t, 6, v)
}

func TestScanLinesTargetError(t *testing.T) {
	t.Parallel()
	lines := 0
	var last error
	for _, err := range cfmt.ScanLines(strings.NewReader("1\n2\n"), "%d") {
		lines++
		last = err
	}
	assert.Equal(t, 1, lines)
	require.ErrorIs(t, last, cfmt.ErrMissingTarget)
}
