package cfmt

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// WriteIter renders format once per argument row from seq and writes each
// rendering to w as it arrives. Every rendering is bounded by capacity on
// its own. The first error stops the iteration.
func WriteIter(w io.Writer, capacity int, format string, seq iter.Seq[[]Arg]) error {
	var streamErr error
	seq(func(args []Arg) bool {
		out, err := Marshal(capacity, format, args...)
		if err != nil {
			streamErr = err
			return false
		}
		if _, err := w.Write(out); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}

// WriteChan renders format for each argument row received from ch.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, capacity int, format string, ch <-chan []Arg) error {
	return WriteIter(w, capacity, format, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

// Lines yields the lines of r one at a time with the line terminator
// ("\n" or "\r\n") removed. A read error is yielded once, last.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				if !yield(line, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
		}
	}
}

// ScanLines scans each line of r against format into targets and yields the
// assignment count for the line. The targets are reused for every line;
// read them in the loop body before advancing. Iteration ends at the first
// read or target error, which is yielded with the count so far.
func ScanLines(r io.Reader, format string, targets ...Target) iter.Seq2[int, error] {
	return ScanLinesWith(Scanner{}, r, format, targets...)
}

// ScanLinesWith is ScanLines using the given Scanner.
func ScanLinesWith(sc Scanner, r io.Reader, format string, targets ...Target) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for line, err := range Lines(r) {
			if err != nil {
				yield(0, err)
				return
			}
			n, err := sc.Scan(line, format, targets...)
			if !yield(n, err) || err != nil {
				return
			}
		}
	}
}
