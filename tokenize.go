package cfmt

import (
	"iter"
	"strings"
)

// Tokenizer splits a string into delimiter-separated tokens. Each Tokenizer
// owns its cursor, so any number of them may be in use at once.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a Tokenizer positioned at the start of s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{src: s}
}

// Next skips any leading bytes found in delims and returns the token that
// follows, up to the next delimiter byte or the end of the input. The
// delimiter that ends the token is consumed. The delimiter set may differ
// from call to call. ok is false when no token remains.
func (t *Tokenizer) Next(delims string) (tok string, ok bool) {
	for t.pos < len(t.src) && strings.IndexByte(delims, t.src[t.pos]) >= 0 {
		t.pos++
	}
	if t.pos >= len(t.src) {
		return "", false
	}
	start := t.pos
	end := strings.IndexAny(t.src[start:], delims)
	if end < 0 {
		t.pos = len(t.src)
		return t.src[start:], true
	}
	t.pos = start + end + 1
	return t.src[start : start+end], true
}

// Rest returns the input not yet consumed.
func (t *Tokenizer) Rest() string { return t.src[t.pos:] }

// Tokens yields the tokens of s separated by any byte in delims.
func Tokens(s, delims string) iter.Seq[string] {
	return func(yield func(string) bool) {
		t := NewTokenizer(s)
		for {
			tok, ok := t.Next(delims)
			if !ok || !yield(tok) {
				return
			}
		}
	}
}
