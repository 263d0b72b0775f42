package cfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Directive is one parsed unit of a format string: either a literal span or
// a single %-conversion.
type Directive struct {
	// Literal holds the text of a KindLiteral directive.
	Literal string

	Verb  byte
	Kind  Kind
	Flags Flag

	Width    int
	WidthArg bool // width is taken from the next argument

	Precision    int
	HasPrecision bool
	PrecisionArg bool // precision is taken from the next argument

	Length Length

	// Suppress marks a scan directive written as %*: the input is consumed
	// but nothing is assigned.
	Suppress bool
}

// Base returns the numeric base of the directive's conversion.
func (d Directive) Base() int { return d.Kind.Base() }

// Upper reports whether hex digits and prefix are rendered in upper case.
func (d Directive) Upper() bool { return d.Verb == 'X' }

// String renders the directive back to format-string syntax.
func (d Directive) String() string {
	if d.Kind == KindLiteral {
		return strings.ReplaceAll(d.Literal, "%", "%%")
	}
	var sb strings.Builder
	sb.WriteByte('%')
	if d.Suppress {
		sb.WriteByte('*')
	}
	sb.WriteString(d.Flags.String())
	switch {
	case d.WidthArg:
		sb.WriteByte('*')
	case d.Width > 0:
		sb.WriteString(strconv.Itoa(d.Width))
	}
	if d.HasPrecision {
		sb.WriteByte('.')
		if d.PrecisionArg {
			sb.WriteByte('*')
		} else {
			sb.WriteString(strconv.Itoa(d.Precision))
		}
	}
	sb.WriteString(d.Length.String())
	sb.WriteByte(d.Verb)
	return sb.String()
}

var verbKinds = map[byte]Kind{
	'd': KindSigned,
	'i': KindSigned,
	'u': KindUnsigned,
	'o': KindOctal,
	'x': KindHex,
	'X': KindHex,
	'p': KindPointer,
	'c': KindChar,
	's': KindString,
	'f': KindFloat,
	'%': KindPercent,
}

// parser walks a format string one directive at a time. In scan mode the
// grammar is %[*][width][length]verb and %p is not accepted.
type parser struct {
	format string
	pos    int
	scan   bool
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func (p *parser) done() bool { return p.pos >= len(p.format) }

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.format[p.pos]
}

func (p *parser) number() int {
	n := 0
	for !p.done() && isDigit(p.peek()) {
		n = n*10 + int(p.peek()-'0')
		p.pos++
	}
	return n
}

// next returns the next directive. ok is false once the format is exhausted.
// A malformed conversion returns ErrMalformedDirective; the parser is left
// at the end of the format so processing cannot resume.
func (p *parser) next() (d Directive, ok bool, err error) {
	if p.done() {
		return Directive{}, false, nil
	}
	start := p.pos
	if p.peek() != '%' {
		end := strings.IndexByte(p.format[start:], '%')
		if end < 0 {
			end = len(p.format) - start
		}
		p.pos = start + end
		return Directive{Kind: KindLiteral, Literal: p.format[start:p.pos]}, true, nil
	}
	p.pos++

	if p.scan && p.peek() == '*' {
		d.Suppress = true
		p.pos++
	}
	if !p.scan {
		for !p.done() {
			f, isFlag := flagOf(p.peek())
			if !isFlag {
				break
			}
			d.Flags |= f
			p.pos++
		}
	}

	switch {
	case isDigit(p.peek()):
		d.Width = p.number()
	case !p.scan && p.peek() == '*':
		d.WidthArg = true
		p.pos++
	}

	if !p.scan && p.peek() == '.' {
		d.HasPrecision = true
		p.pos++
		if p.peek() == '*' {
			d.PrecisionArg = true
			p.pos++
		} else {
			d.Precision = p.number()
		}
	}

	switch p.peek() {
	case 'h':
		d.Length = LengthShort
		p.pos++
	case 'l':
		d.Length = LengthLong
		p.pos++
	case 'L':
		d.Length = LengthLongDouble
		p.pos++
	}

	if p.done() {
		return p.malformed(start, "unterminated directive %q", p.format[start:])
	}
	d.Verb = p.peek()
	kind, known := verbKinds[d.Verb]
	if !known || (p.scan && kind == KindPointer) {
		return p.malformed(start, "unknown conversion %q in %q", d.Verb, p.format[start:p.pos+1])
	}
	p.pos++
	d.Kind = kind
	if d.Flags.Has(FlagLeft) {
		d.Flags &^= FlagZero
	}
	return d, true, nil
}

func (p *parser) malformed(start int, msg string, args ...any) (Directive, bool, error) {
	p.pos = len(p.format)
	return Directive{}, false, fmt.Errorf("%w: offset %d: %s", ErrMalformedDirective, start, fmt.Sprintf(msg, args...))
}

// Parse splits a format string into its directives, using the grammar of
// Format. It fails with ErrMalformedDirective on the first bad conversion.
func Parse(format string) ([]Directive, error) {
	return parseAll(&parser{format: format})
}

// ParseScan is like Parse but uses the grammar of Scan, where %* suppresses
// assignment and flags, precision and %p are not part of the language.
func ParseScan(format string) ([]Directive, error) {
	return parseAll(&parser{format: format, scan: true})
}

func parseAll(p *parser) ([]Directive, error) {
	var out []Directive
	for {
		d, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, d)
	}
}
