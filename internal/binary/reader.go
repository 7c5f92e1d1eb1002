// Package binary provides the low-level stream I/O used for persisted arrays:
// newline-terminated ASCII header lines followed by an opaque payload.
package binary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrLineTooLong is returned when a header line exceeds the configured limit.
var ErrLineTooLong = errors.New("header line too long")

// Config holds reader and writer configuration.
type Config struct {
	// MaxLineLength bounds a header line, excluding its newline.
	MaxLineLength int
}

// DefaultConfig returns a configuration suitable for array headers.
func DefaultConfig() Config {
	return Config{
		MaxLineLength: 256,
	}
}

// Reader reads header lines and payload bytes from a stream, tracking the
// number of bytes consumed.
type Reader struct {
	r       *bufio.Reader
	maxLine int
	pos     int64
}

// NewReader creates a reader with the given configuration.
func NewReader(r io.Reader, cfg Config) *Reader {
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DefaultConfig().MaxLineLength
	}
	return &Reader{
		r:       bufio.NewReader(r),
		maxLine: cfg.MaxLineLength,
	}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadLine reads up to and including the next '\n' and returns the line
// without it. A stream that ends before the newline yields
// io.ErrUnexpectedEOF.
func (r *Reader) ReadLine() (string, error) {
	var line []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		r.pos++
		if b == '\n' {
			return string(line), nil
		}
		if len(line) >= r.maxLine {
			return "", fmt.Errorf("%w: more than %d bytes at offset %d", ErrLineTooLong, r.maxLine, r.pos-int64(len(line))-1)
		}
		line = append(line, b)
	}
}

// ReadRest reads everything up to the end of the stream.
func (r *Reader) ReadRest() ([]byte, error) {
	buf, err := io.ReadAll(r.r)
	r.pos += int64(len(buf))
	return buf, err
}
