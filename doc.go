// Package cfmt formats values into fixed-capacity buffers and scans values
// back out of text using printf/scanf directives.
//
// The central entry points are [Format], which renders into a caller-owned
// byte slice, and [Scan], which parses a source string into typed targets.
// [Write] and [Marshal] wrap Format for io.Writer and fresh-buffer use.
// Both sides share one directive grammar ([Parse], [ParseScan]) and one
// numeric codec ([FormatInt], [ParseInt], [FormatFloat] and friends).
//
// # Formatting
//
// Directives have the shape %[flags][width][.precision][length]verb:
//
//	buf := make([]byte, 64)
//	n, err := cfmt.Format(buf, "%-8s|%+06d|%#x", cfmt.Str("id"), cfmt.Int(-42), cfmt.Uint(255))
//	// buf[:n] == "id      |-00042|0xff"
//
// Arguments are typed with [Int], [Uint], [Float], [Char], [Str] and [Ptr].
// A width or precision written as * takes the next argument; a negative *
// width left-justifies and a negative * precision is ignored.
//
// Without a length modifier integers are reduced to 32 bits, h reduces them
// to 16 bits, and l or L keeps all 64. Floats are written in fixed-point
// notation with half-up rounding and at most [MaxPrecision] fractional
// digits.
//
// Format never writes past len(dst). When the output would not fit it
// returns [ErrOverflow] and dst is not modified.
//
// # Scanning
//
//	var n int
//	var f float64
//	var c byte
//	count, err := cfmt.Scan("42 3.14 x", "%d %f %c",
//		cfmt.IntoInt(&n), cfmt.IntoFloat(&f), cfmt.IntoByte(&c))
//
// The scan grammar is %[*][width][length]verb. %* consumes a token without
// assigning it. Scanning stops at the first mismatch and reports how many
// targets were assigned. The default scanner finds numbers anywhere ahead of
// the cursor; [Scanner] with Strict set behaves like the C library.
//
// # Streams
//
// [WriteIter] and [WriteChan] render one format per argument row.
// [Lines] and [ScanLines] apply a scan format to each line of a reader.
//
// # Tokenizing
//
// [Tokenizer] splits text on a set of delimiter bytes, one token per call to
// [Tokenizer.Next], with its own cursor. [Tokens] wraps it as an iterator.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrOverflow]: rendered output exceeds the destination
//   - [ErrMissingArgument]: a directive has no argument left
//   - [ErrArgumentType]: an argument cannot serve its directive
//   - [ErrMalformedDirective]: reported by Parse and ParseScan
//   - [ErrMissingTarget]: a scan directive has no target left
//   - [ErrTargetType]: a target cannot hold its directive's value
//   - [ErrSyntax] and [ErrRange]: reported by ParseInt and ParseUint
package cfmt
