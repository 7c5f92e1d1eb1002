package array

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRank is the highest supported array rank.
const MaxRank = 3

// MaxLen is the largest cell count an extent may describe: the float64
// cells, and the widest encoded payload, must fit in an int byte count.
const MaxLen = math.MaxInt / 8

// Axis indices.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Extent is the per-axis size tuple of an array, in (x, y, z) order.
type Extent []int

// NewExtent returns a validated extent.
func NewExtent(dims ...int) (Extent, error) {
	ext := Extent(append([]int(nil), dims...))
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return ext, nil
}

// Validate checks that the rank is 1..MaxRank, every size is positive and
// the cell count does not exceed MaxLen.
func (e Extent) Validate() error {
	if len(e) < 1 || len(e) > MaxRank {
		return fmt.Errorf("%w: rank %d (want 1..%d)", ErrInvalidExtent, len(e), MaxRank)
	}
	cells := 1
	for axis, n := range e {
		if n < 1 {
			return fmt.Errorf("%w: axis %d has size %d", ErrInvalidExtent, axis, n)
		}
		if cells > MaxLen/n {
			return fmt.Errorf("%w: %s exceeds %d cells", ErrInvalidExtent, e, MaxLen)
		}
		cells *= n
	}
	return nil
}

// Rank returns the number of axes.
func (e Extent) Rank() int {
	return len(e)
}

// Len returns the total number of cells. It is only meaningful for an
// extent that passes Validate.
func (e Extent) Len() int {
	n := 1
	for _, d := range e {
		n *= d
	}
	return n
}

// Without returns a copy of e with axis removed.
func (e Extent) Without(axis int) Extent {
	out := make(Extent, 0, len(e))
	for i, d := range e {
		if i != axis {
			out = append(out, d)
		}
	}
	return out
}

// Equal reports whether both extents have the same rank and sizes.
func (e Extent) Equal(o Extent) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i] != o[i] {
			return false
		}
	}
	return true
}

func (e Extent) String() string {
	parts := make([]string, len(e))
	for i, d := range e {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// strides returns the flat-index step of each axis; x varies fastest.
func (e Extent) strides() []int {
	s := make([]int, len(e))
	step := 1
	for i, d := range e {
		s[i] = step
		step *= d
	}
	return s
}
