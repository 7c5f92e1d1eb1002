package array

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidExtent    = errors.New("invalid extent")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrRankMismatch     = errors.New("rank mismatch")
	ErrTruncatedInput   = errors.New("truncated input")
	ErrFormat           = errors.New("malformed array file")
	ErrSliceRead        = errors.New("slice read failed")
	ErrTemplate         = errors.New("invalid slice file template")
)

// SliceReadError reports the slice that stopped a volume assembly.
//
// It matches ErrSliceRead with errors.Is; the originating error can be
// accessed via errors.Unwrap.
type SliceReadError struct {
	Index int
	Path  string
	Err   error
}

func (e *SliceReadError) Error() string {
	return fmt.Sprintf("slice %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *SliceReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSliceRead.
func (e *SliceReadError) Is(target error) bool { return target == ErrSliceRead }
