package cfmt

import "math"

// printOpts is the working copy of a directive while it is rendered. Width
// counts down to the padding still owed once the body has been measured.
type printOpts struct {
	flags        Flag
	width        int
	precision    int
	hasPrecision bool
	pad          byte
}

type formatter struct {
	out  *bounded
	args argStream
}

// Format renders format against args into dst and returns the number of
// bytes written.
//
// The supported conversions are %d %i %u %o %x %X %p %c %s %f and %%, with
// the flags "-+ #0", a width and a precision (either may be * to take it from
// the argument stream), and the length modifiers h, l and L.
//
// Output is staged and copied into dst only when rendering succeeds. If the
// rendered text is longer than len(dst), Format returns ErrOverflow and dst
// is left untouched. Running out of arguments yields ErrMissingArgument and
// an argument of the wrong type yields ErrArgumentType. A malformed
// conversion ends rendering without an error; the text before it is kept.
func Format(dst []byte, format string, args ...Arg) (int, error) {
	out, err := render(len(dst), format, args)
	if err != nil {
		return 0, err
	}
	return out.commit(dst), nil
}

// render stages format against args under limit. The staging buffer grows
// with the output, not with limit.
func render(limit int, format string, args []Arg) (*bounded, error) {
	f := formatter{out: newBounded(limit), args: argStream{args: args}}
	if err := f.run(format); err != nil {
		return nil, err
	}
	return f.out, nil
}

func (f *formatter) run(format string) error {
	p := parser{format: format}
	for {
		d, ok, err := p.next()
		if err != nil || !ok {
			return nil
		}
		if err := f.directive(d); err != nil {
			return err
		}
	}
}

func (f *formatter) directive(d Directive) error {
	switch d.Kind {
	case KindLiteral:
		_, err := f.out.WriteString(d.Literal)
		return err
	case KindPercent:
		return f.out.WriteByte('%')
	}

	o, err := f.options(d)
	if err != nil {
		return err
	}
	a, err := f.args.pull(d, "value")
	if err != nil {
		return err
	}

	switch d.Kind {
	case KindSigned:
		v, err := a.signed(d)
		if err != nil {
			return err
		}
		return f.putSigned(v, &o)
	case KindUnsigned, KindOctal, KindHex, KindPointer:
		u, err := a.unsigned(d)
		if err != nil {
			return err
		}
		return f.putUnsigned(u, d, &o)
	case KindChar:
		c, err := a.char(d)
		if err != nil {
			return err
		}
		return f.out.WriteByte(c)
	case KindString:
		s, err := a.str(d)
		if err != nil {
			return err
		}
		return f.putString(s, &o)
	case KindFloat:
		v, err := a.float(d)
		if err != nil {
			return err
		}
		return f.putFloat(v, &o)
	}
	return nil
}

// options resolves * width and precision from the argument stream.
func (f *formatter) options(d Directive) (printOpts, error) {
	o := printOpts{
		flags:        d.Flags,
		width:        d.Width,
		precision:    d.Precision,
		hasPrecision: d.HasPrecision,
	}
	if d.WidthArg {
		w, err := f.args.star(d, "width")
		if err != nil {
			return o, err
		}
		if w < 0 {
			o.flags |= FlagLeft
			w = -w
		}
		o.width = w
	}
	if d.PrecisionArg {
		p, err := f.args.star(d, "precision")
		if err != nil {
			return o, err
		}
		if p < 0 {
			o.hasPrecision = false
			p = 0
		}
		o.precision = p
	}
	if o.flags.Has(FlagLeft) {
		o.flags &^= FlagZero
	}
	o.pad = ' '
	if o.flags.Has(FlagZero) {
		o.pad = '0'
	}
	return o, nil
}

// intDigits renders mag and returns it with the number of zeros precision
// asks to put in front of it. A precision turns zero padding off.
func intDigits(buf []byte, mag uint64, base int, o *printOpts) ([]byte, int) {
	if !o.hasPrecision {
		return AppendUint(buf, mag, base), 0
	}
	o.pad = ' '
	if mag == 0 && o.precision == 0 {
		return buf, 0
	}
	buf = AppendUint(buf, mag, base)
	return buf, max(o.precision-len(buf), 0)
}

func (f *formatter) putSigned(v int64, o *printOpts) error {
	mag := uint64(v)
	if v < 0 {
		mag = -mag
	}
	var a [64]byte
	ds, zeros := intDigits(a[:0], mag, 10, o)
	return f.putNumber(o, signOf(v < 0, o), "", zeros, ds)
}

func signOf(neg bool, o *printOpts) byte {
	switch {
	case neg:
		return '-'
	case o.flags.Has(FlagPlus):
		return '+'
	case o.flags.Has(FlagSpace):
		return ' '
	default:
		return 0
	}
}

func (f *formatter) putUnsigned(u uint64, d Directive, o *printOpts) error {
	var a [64]byte
	ds, zeros := intDigits(a[:0], u, d.Base(), o)
	if d.Upper() {
		for i, c := range ds {
			if 'a' <= c && c <= 'f' {
				ds[i] = c - 'a' + 'A'
			}
		}
	}

	var prefix string
	switch {
	case d.Kind == KindPointer:
		prefix = "0x"
	case !o.flags.Has(FlagAlt) || u == 0:
	case d.Kind == KindOctal:
		if zeros == 0 {
			prefix = "0"
		}
	case d.Kind == KindHex:
		prefix = "0x"
		if d.Upper() {
			prefix = "0X"
		}
	}
	return f.putNumber(o, 0, prefix, zeros, ds)
}

// putNumber lays out a rendered number. Right-justified with spaces the
// order is padding, sign, prefix, digits; with zeros it is sign, prefix,
// padding, digits; left-justified it is sign, prefix, digits, padding.
func (f *formatter) putNumber(o *printOpts, sign byte, prefix string, zeros int, ds []byte) error {
	body := len(prefix) + zeros + len(ds)
	if sign != 0 {
		body++
	}
	o.width = max(o.width-body, 0)

	if !o.flags.Has(FlagLeft) && o.pad == ' ' {
		if err := f.out.pad(' ', o.width); err != nil {
			return err
		}
		o.width = 0
	}
	if sign != 0 {
		if err := f.out.WriteByte(sign); err != nil {
			return err
		}
	}
	if _, err := f.out.WriteString(prefix); err != nil {
		return err
	}
	if !o.flags.Has(FlagLeft) {
		zeros += o.width
		o.width = 0
	}
	if err := f.out.pad('0', zeros); err != nil {
		return err
	}
	if _, err := f.out.Write(ds); err != nil {
		return err
	}
	return f.out.pad(' ', o.width)
}

func (f *formatter) putString(s string, o *printOpts) error {
	if o.hasPrecision && o.precision < len(s) {
		s = s[:o.precision]
	}
	o.width = max(o.width-len(s), 0)
	if !o.flags.Has(FlagLeft) {
		if err := f.out.pad(o.pad, o.width); err != nil {
			return err
		}
		o.width = 0
	}
	if _, err := f.out.WriteString(s); err != nil {
		return err
	}
	return f.out.pad(' ', o.width)
}

func (f *formatter) putFloat(v float64, o *printOpts) error {
	prec := DefaultPrecision
	if o.hasPrecision {
		prec = o.precision
	}
	neg := math.Signbit(v)
	if neg {
		v = -v
	}
	var a [32]byte
	ds := AppendFloat(a[:0], v, prec)
	if ds[0] < '0' || ds[0] > '9' {
		o.pad = ' ' // nan and inf are never zero padded
	}
	return f.putNumber(o, signOf(neg, o), "", 0, ds)
}
