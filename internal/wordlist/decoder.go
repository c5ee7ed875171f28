// Package wordlist downloads the course word list and rebuilds the local
// seen/unseen partitions from it.
package wordlist

import (
	"bytes"
	"io"
	"strings"
)

const readChunkSize = 32 * 1024

// Scanner decodes newline-delimited, comma-separated records from a byte
// stream. Chunk boundaries are invisible to callers: a record split
// across reads is buffered until its terminator arrives, and a non-empty
// final record without a trailing newline is still emitted. Buffered
// state is bounded by the longest single record, not the stream length.
//
// Usage follows bufio.Scanner: call Scan until it returns false, then
// check Err.
type Scanner struct {
	r      io.Reader
	buf    []byte // unconsumed bytes; at most one partial record plus one read chunk
	chunk  []byte // reusable read buffer
	record []string
	err    error
	eof    bool
}

// NewScanner returns a Scanner reading records from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Scan advances to the next record. It returns false at end of stream or
// on read error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for {
		if i := bytes.IndexByte(s.buf, '\n'); i >= 0 {
			s.emit(s.buf[:i])
			s.buf = append(s.buf[:0], s.buf[i+1:]...)
			return true
		}
		if s.eof {
			if len(s.buf) == 0 {
				return false
			}
			// Final record without a trailing newline
			s.emit(s.buf)
			s.buf = s.buf[:0]
			return true
		}

		if s.chunk == nil {
			s.chunk = make([]byte, readChunkSize)
		}
		n, err := s.r.Read(s.chunk)
		s.buf = append(s.buf, s.chunk[:n]...)
		if err == io.EOF {
			s.eof = true
		} else if err != nil {
			s.err = err
			return false
		}
	}
}

// Record returns the fields of the record read by the last call to Scan.
// The slice is only valid until the next call to Scan.
func (s *Scanner) Record() []string {
	return s.record
}

// Err returns the first error encountered while reading. It never
// returns io.EOF.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) emit(line []byte) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	s.record = strings.Split(string(line), ",")
}
