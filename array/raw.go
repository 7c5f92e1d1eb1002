package array

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/robert-malhotra/go-rawarray/element"
)

type headerMode uint8

const (
	headerNone headerMode = iota
	headerGuess
	headerSkip
)

// Header describes the bytes preceding the payload of a raw stream.
type Header struct {
	mode headerMode
	n    int64
}

// NoHeader reads the payload from the current stream position.
func NoHeader() Header { return Header{} }

// GuessHeader treats everything before the trailing payload-sized region of
// the stream as header. A stream no longer than the payload has no header.
func GuessHeader() Header { return Header{mode: headerGuess} }

// SkipHeader skips exactly n bytes before the payload.
func SkipHeader(n int64) Header { return Header{mode: headerSkip, n: n} }

// IsGuess reports whether the header size is inferred from the stream length.
func (h Header) IsGuess() bool { return h.mode == headerGuess }

func (h Header) String() string {
	switch h.mode {
	case headerGuess:
		return "guess"
	case headerSkip:
		return fmt.Sprintf("%d bytes", h.n)
	default:
		return "none"
	}
}

// RawSpec declares how to interpret a raw stream.
type RawSpec struct {
	Encoding element.Encoding
	Extent   Extent
	Header   Header

	// SwapByteOrder reads big-endian elements. Raw streams are little-endian
	// otherwise.
	SwapByteOrder bool
}

// PayloadSize returns Extent.Len() times the encoding width.
func (s RawSpec) PayloadSize() (int64, error) {
	width, err := element.WidthOf(s.Encoding)
	if err != nil {
		return 0, err
	}
	if err := s.Extent.Validate(); err != nil {
		return 0, err
	}
	cells := int64(s.Extent.Len())
	if cells > math.MaxInt64/int64(width) {
		return 0, fmt.Errorf("%w: %s of %s overflows the payload size", ErrInvalidExtent, s.Extent, s.Encoding)
	}
	return cells * int64(width), nil
}

// ReadRaw decodes a raw stream into a new array. The stream is left
// positioned after the payload and is not closed.
func ReadRaw(r io.ReadSeeker, spec RawSpec) (*Array, error) {
	a, _, err := ReadRawWithHeader(r, spec)
	return a, err
}

// ReadRawWithHeader is ReadRaw that also reports how many header bytes were
// skipped.
func ReadRawWithHeader(r io.ReadSeeker, spec RawSpec) (*Array, int64, error) {
	payload, err := spec.PayloadSize()
	if err != nil {
		return nil, 0, err
	}

	skipped, err := seekPayload(r, spec.Header, payload)
	if err != nil {
		return nil, 0, err
	}

	// Nothing is allocated until the stream is known to hold the payload.
	remaining, err := remainingBytes(r)
	if err != nil {
		return nil, skipped, err
	}
	if remaining < payload {
		return nil, skipped, fmt.Errorf("%w: need %d payload bytes after %d header bytes, stream has %d",
			ErrTruncatedInput, payload, skipped, max(remaining, 0))
	}

	buf := make([]byte, payload)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, skipped, fmt.Errorf("%w: need %d payload bytes after %d header bytes, got %d",
				ErrTruncatedInput, payload, skipped, n)
		}
		return nil, skipped, fmt.Errorf("reading payload: %w", err)
	}

	// Swap on the raw bytes so every cell is decoded exactly once.
	if spec.SwapByteOrder {
		if err := element.InvertByteOrderInPlace(buf, spec.Encoding.Width()); err != nil {
			return nil, skipped, err
		}
	}

	a, err := New(spec.Extent)
	if err != nil {
		return nil, skipped, err
	}
	if err := element.DecodeAll(a.data, buf, spec.Encoding, binary.LittleEndian); err != nil {
		return nil, skipped, err
	}
	return a, skipped, nil
}

// seekPayload positions r at the start of the payload and returns the
// number of header bytes skipped.
func seekPayload(r io.ReadSeeker, h Header, payload int64) (int64, error) {
	switch h.mode {
	case headerGuess:
		total, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, fmt.Errorf("measuring stream: %w", err)
		}
		header := GuessedHeaderSize(total, payload)
		if header > 0 {
			_, err = r.Seek(-payload, io.SeekEnd)
		} else {
			_, err = r.Seek(0, io.SeekStart)
		}
		if err != nil {
			return 0, fmt.Errorf("seeking past header: %w", err)
		}
		return max(header, 0), nil

	case headerSkip:
		if h.n < 0 {
			return 0, fmt.Errorf("negative header size %d", h.n)
		}
		if h.n > 0 {
			if _, err := r.Seek(h.n, io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("seeking past header: %w", err)
			}
		}
		return h.n, nil

	default:
		return 0, nil
	}
}

// remainingBytes returns the number of bytes between the current position
// and the end of r, leaving the position unchanged.
func remainingBytes(r io.Seeker) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("locating payload: %w", err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("measuring stream: %w", err)
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return 0, fmt.Errorf("locating payload: %w", err)
	}
	return end - cur, nil
}

// GuessedHeaderSize returns total - payload, the header size the guess
// heuristic assumes. A negative result means the stream is too short.
func GuessedHeaderSize(total, payload int64) int64 {
	return total - payload
}
