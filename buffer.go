package cfmt

import "fmt"

// bounded is a staging buffer that refuses to grow past limit bytes. Every
// emission is checked before it happens; nothing reaches the caller's
// destination until rendering has succeeded.
type bounded struct {
	buf   []byte
	limit int
}

func newBounded(limit int) *bounded {
	return &bounded{buf: make([]byte, 0, min(limit, 256)), limit: limit}
}

func (b *bounded) overflow(n int) error {
	return fmt.Errorf("%w: %d bytes do not fit in %d", ErrOverflow, len(b.buf)+n, b.limit)
}

func (b *bounded) WriteByte(c byte) error {
	if len(b.buf)+1 > b.limit {
		return b.overflow(1)
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *bounded) Write(p []byte) (int, error) {
	if len(b.buf)+len(p) > b.limit {
		return 0, b.overflow(len(p))
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *bounded) WriteString(s string) (int, error) {
	if len(b.buf)+len(s) > b.limit {
		return 0, b.overflow(len(s))
	}
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// pad writes n copies of c. Non-positive n writes nothing.
func (b *bounded) pad(c byte, n int) error {
	if n <= 0 {
		return nil
	}
	if len(b.buf)+n > b.limit {
		return b.overflow(n)
	}
	for range n {
		b.buf = append(b.buf, c)
	}
	return nil
}

func (b *bounded) Len() int { return len(b.buf) }

// commit copies the staged bytes into dst, which must hold at least limit
// bytes.
func (b *bounded) commit(dst []byte) int {
	return copy(dst, b.buf)
}
