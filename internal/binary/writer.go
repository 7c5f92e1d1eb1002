package binary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer writes header lines and payload bytes to a buffered stream.
// Callers must Flush before releasing the underlying writer.
type Writer struct {
	w       *bufio.Writer
	maxLine int
	pos     int64
}

// NewWriter creates a writer with the given configuration.
func NewWriter(w io.Writer, cfg Config) *Writer {
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DefaultConfig().MaxLineLength
	}
	return &Writer{
		w:       bufio.NewWriter(w),
		maxLine: cfg.MaxLineLength,
	}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteLine writes s followed by '\n'. s must not contain a newline.
func (w *Writer) WriteLine(s string) error {
	if strings.ContainsRune(s, '\n') {
		return fmt.Errorf("header line contains a newline: %q", s)
	}
	if len(s) > w.maxLine {
		return fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(s))
	}
	n, err := w.w.WriteString(s)
	w.pos += int64(n)
	if err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.pos++
	return nil
}

// WriteBytes writes data verbatim.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
