package cfmt

// Scanner parses input text against a format string.
//
// The zero Scanner is permissive: before a numeric token it skips any bytes
// until the first digit the conversion accepts, honoring a '-' that directly
// precedes that digit. A strict Scanner skips only whitespace and expects an
// optional sign and the digits at the cursor, as the C library does.
//
// %s follows the same split: the zero Scanner copies from the cursor up to
// the field width or the end of the input, spaces included, while a strict
// Scanner reads one whitespace-delimited word.
type Scanner struct {
	Strict bool
}

// Scan parses source against format with the permissive zero Scanner.
func Scan(source, format string, targets ...Target) (int, error) {
	return Scanner{}.Scan(source, format, targets...)
}

// Scan parses source against format, storing each converted value into the
// next target, and returns the number of assignments made.
//
// Whitespace in the format matches any amount of whitespace in the input,
// including none; other literal bytes must match exactly. A field width
// bounds the bytes a token may consume. %*verb consumes a token without
// assigning it or taking a target.
//
// Scanning stops, returning the count so far, at the end of either string,
// on a literal mismatch, when a token cannot be found, or at a malformed
// directive. An error is returned only for caller mistakes: running out of
// targets (ErrMissingTarget) or a target that cannot hold the conversion
// (ErrTargetType).
func (sc Scanner) Scan(source, format string, targets ...Target) (int, error) {
	st := scanState{src: source, strict: sc.Strict, targets: targetStream{targets: targets}}
	p := parser{format: format, scan: true}
	for {
		d, ok, err := p.next()
		if err != nil || !ok {
			return st.count, nil
		}
		more, err := st.directive(d)
		if err != nil {
			return st.count, err
		}
		if !more {
			return st.count, nil
		}
	}
}

type scanState struct {
	src     string
	pos     int
	strict  bool
	targets targetStream
	count   int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (st *scanState) skipSpace(i int) int {
	for i < len(st.src) && isSpace(st.src[i]) {
		i++
	}
	return i
}

// directive processes one directive and reports whether scanning goes on.
func (st *scanState) directive(d Directive) (bool, error) {
	switch d.Kind {
	case KindLiteral:
		return st.literal(d.Literal), nil
	case KindPercent:
		st.pos = st.skipSpace(st.pos)
		if st.pos >= len(st.src) || st.src[st.pos] != '%' {
			return false, nil
		}
		st.pos++
		return true, nil
	}

	var t Target
	if !d.Suppress {
		var err error
		if t, err = st.targets.pull(d); err != nil {
			return false, err
		}
	}

	var tok token
	var found bool
	switch d.Kind {
	case KindSigned:
		var u uint64
		var neg bool
		u, neg, found = st.integer(10, d.Width)
		tok.i = int64(u)
		if neg {
			tok.i = -tok.i
		}
	case KindUnsigned, KindOctal:
		var neg bool
		tok.u, neg, found = st.integer(d.Base(), d.Width)
		if neg {
			tok.u = -tok.u
		}
	case KindHex:
		var neg bool
		tok.u, neg, found = st.hex(d.Width)
		if neg {
			tok.u = -tok.u
		}
	case KindFloat:
		tok.f, found = st.float(d.Width)
	case KindChar:
		var c byte
		c, found = st.char()
		tok.u = uint64(c)
	case KindString:
		tok.s, found = st.str(d.Width)
	}
	if !found {
		return false, nil
	}
	if !d.Suppress {
		t.store(tok)
		st.count++
	}
	return true, nil
}

func (st *scanState) literal(lit string) bool {
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if isSpace(c) {
			st.pos = st.skipSpace(st.pos)
			continue
		}
		if st.pos >= len(st.src) || st.src[st.pos] != c {
			return false
		}
		st.pos++
	}
	return true
}

// locate finds a numeric token. It returns where the token starts (its sign,
// if any), where its first digit is, and whether it is negative.
func (st *scanState) locate(accept func(i int) bool) (start, first int, neg, ok bool) {
	i := st.pos
	if st.strict {
		i = st.skipSpace(i)
		start = i
		if i < len(st.src) && (st.src[i] == '-' || st.src[i] == '+') {
			i++
		}
		if i >= len(st.src) || !accept(i) {
			return 0, 0, false, false
		}
		return start, i, st.src[start] == '-', true
	}
	for i < len(st.src) && !accept(i) {
		i++
	}
	if i >= len(st.src) {
		return 0, 0, false, false
	}
	if i > st.pos && st.src[i-1] == '-' {
		return i - 1, i, true, true
	}
	return i, i, false, true
}

// limit returns the end of a token starting at start under a field width.
func (st *scanState) limit(start, width int) int {
	if width <= 0 {
		return len(st.src)
	}
	return min(start+width, len(st.src))
}

func (st *scanState) integer(base, width int) (uint64, bool, bool) {
	isBaseDigit := func(i int) bool { return digitVal(st.src[i]) < base }
	start, i, neg, ok := st.locate(isBaseDigit)
	if !ok {
		return 0, false, false
	}
	end := st.limit(start, width)
	var u uint64
	j := i
	for j < end && isBaseDigit(j) {
		u = u*uint64(base) + uint64(digitVal(st.src[j]))
		j++
	}
	if j == i {
		return 0, false, false
	}
	st.pos = j
	return u, neg, true
}

// hex captures a run of hex digits, after an optional 0x prefix, and builds
// the value from the least significant digit up.
func (st *scanState) hex(width int) (uint64, bool, bool) {
	isHex := func(i int) bool { return digitVal(st.src[i]) < 16 }
	start, i, neg, ok := st.locate(isHex)
	if !ok {
		return 0, false, false
	}
	end := st.limit(start, width)
	if st.src[i] == '0' && i+2 < end && (st.src[i+1] == 'x' || st.src[i+1] == 'X') && isHex(i+2) {
		i += 2
	}
	j := i
	for j < end && isHex(j) {
		j++
	}
	if j == i {
		return 0, false, false
	}
	var u uint64
	weight := uint64(1)
	for k := j - 1; k >= i; k-- {
		u += uint64(digitVal(st.src[k])) * weight
		weight *= 16
	}
	st.pos = j
	return u, neg, true
}

// float reads [-]digits[.digits]. The digit runs are combined into one
// magnitude and divided by ten to the number of fractional digits; a point
// with no digits after it leaves the divisor at one.
func (st *scanState) float(width int) (float64, bool) {
	accept := func(i int) bool {
		c := st.src[i]
		return isDigit(c) || (c == '.' && i+1 < len(st.src) && isDigit(st.src[i+1]))
	}
	start, i, neg, ok := st.locate(accept)
	if !ok {
		return 0, false
	}
	end := st.limit(start, width)
	var m float64
	scale := 1.0
	n := 0
	j := i
	for ; j < end && isDigit(st.src[j]); j++ {
		m = m*10 + float64(st.src[j]-'0')
		n++
	}
	if j < end && st.src[j] == '.' {
		j++
		for ; j < end && isDigit(st.src[j]); j++ {
			m = m*10 + float64(st.src[j]-'0')
			scale *= 10
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	st.pos = j
	v := m / scale
	if neg {
		v = -v
	}
	return v, true
}

func (st *scanState) char() (byte, bool) {
	if st.pos >= len(st.src) || st.src[st.pos] >= 0x80 {
		return 0, false
	}
	c := st.src[st.pos]
	st.pos++
	return c, true
}

// str copies up to width bytes from the cursor, or the rest of the input
// without a width. A strict scanner skips leading whitespace and stops at the
// next whitespace instead.
func (st *scanState) str(width int) (string, bool) {
	i := st.pos
	if st.strict {
		i = st.skipSpace(i)
	}
	if i >= len(st.src) {
		return "", false
	}
	end := st.limit(i, width)
	j := end
	if st.strict {
		j = i
		for j < end && !isSpace(st.src[j]) {
			j++
		}
	}
	st.pos = j
	return st.src[i:j], true
}
