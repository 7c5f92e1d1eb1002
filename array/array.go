package array

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robert-malhotra/go-rawarray/element"
)

// Array is a dense grid of rank 1..3 holding float64 cells in raster order.
type Array struct {
	ext     Extent
	strides []int
	data    []float64
}

// New allocates a zero-filled array of the given extent.
func New(ext Extent) (*Array, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	ext = append(Extent(nil), ext...)
	return &Array{
		ext:     ext,
		strides: ext.strides(),
		data:    make([]float64, ext.Len()),
	}, nil
}

// FromSlice wraps cells as an array of the given extent. The array takes
// ownership of cells.
func FromSlice(ext Extent, cells []float64) (*Array, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	if len(cells) != ext.Len() {
		return nil, fmt.Errorf("%w: %d cells for extent %s", ErrInvalidExtent, len(cells), ext)
	}
	ext = append(Extent(nil), ext...)
	return &Array{
		ext:     ext,
		strides: ext.strides(),
		data:    cells,
	}, nil
}

// Rank returns the number of axes.
func (a *Array) Rank() int {
	return len(a.ext)
}

// Extent returns a copy of the array's extent.
func (a *Array) Extent() Extent {
	return append(Extent(nil), a.ext...)
}

// Len returns the number of cells.
func (a *Array) Len() int {
	return len(a.data)
}

// Data returns the cells in raster order. The slice aliases the array.
func (a *Array) Data() []float64 {
	return a.data
}

func (a *Array) offset(idx []int) (int, error) {
	if len(idx) != len(a.ext) {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrRankMismatch, len(idx), len(a.ext))
	}
	off := 0
	for axis, i := range idx {
		if i < 0 || i >= a.ext[axis] {
			return 0, fmt.Errorf("%w: index %d on axis %d (size %d)", ErrIndexOutOfBounds, i, axis, a.ext[axis])
		}
		off += i * a.strides[axis]
	}
	return off, nil
}

// At returns the cell at the given (x, y, z) index.
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.offset(idx)
	if err != nil {
		return 0, err
	}
	return a.data[off], nil
}

// Set stores v at the given (x, y, z) index.
func (a *Array) Set(v float64, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Equal reports whether b has the same extent and cells. NaN cells compare
// equal to each other.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.ext.Equal(b.ext) {
		return false
	}
	for i, v := range a.data {
		w := b.data[i]
		if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{
		ext:     a.Extent(),
		strides: append([]int(nil), a.strides...),
		data:    data,
	}
}

// InvertByteOrder reinterprets every cell as an element of e, reverses its
// bytes and stores the result. Applying it twice restores every cell whose
// value is representable in e.
func (a *Array) InvertByteOrder(e element.Encoding) error {
	width, err := element.WidthOf(e)
	if err != nil {
		return err
	}
	raw, err := element.EncodeAll(a.data, e, binary.LittleEndian)
	if err != nil {
		return err
	}
	if err := element.InvertByteOrderInPlace(raw, width); err != nil {
		return err
	}
	return element.DecodeAll(a.data, raw, e, binary.LittleEndian)
}

// PutSlice copies sub into the plane of a where axis equals index.
// sub must have rank Rank()-1 and the extent of a with axis removed.
func (a *Array) PutSlice(axis, index int, sub *Array) error {
	if err := a.checkPlane(axis, index); err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("%w: nil slice", ErrRankMismatch)
	}
	if sub.Rank() != a.Rank()-1 {
		return fmt.Errorf("%w: slice of rank %d into array of rank %d", ErrRankMismatch, sub.Rank(), a.Rank())
	}
	if want := a.ext.Without(axis); !sub.ext.Equal(want) {
		return fmt.Errorf("%w: slice extent %s, want %s", ErrRankMismatch, sub.ext, want)
	}

	a.walkPlane(axis, index, func(full, part int) {
		a.data[full] = sub.data[part]
	})
	return nil
}

// Slice returns a copy of the plane of a where axis equals index.
func (a *Array) Slice(axis, index int) (*Array, error) {
	if err := a.checkPlane(axis, index); err != nil {
		return nil, err
	}
	sub, err := New(a.ext.Without(axis))
	if err != nil {
		return nil, err
	}
	a.walkPlane(axis, index, func(full, part int) {
		sub.data[part] = a.data[full]
	})
	return sub, nil
}

func (a *Array) checkPlane(axis, index int) error {
	if a.Rank() < 2 {
		return fmt.Errorf("%w: rank %d array has no slices", ErrRankMismatch, a.Rank())
	}
	if axis < 0 || axis >= a.Rank() {
		return fmt.Errorf("%w: axis %d for rank %d", ErrRankMismatch, axis, a.Rank())
	}
	if index < 0 || index >= a.ext[axis] {
		return fmt.Errorf("%w: slice %d on axis %d (size %d)", ErrIndexOutOfBounds, index, axis, a.ext[axis])
	}
	return nil
}

// walkPlane calls fn with the flat offset in a and in the plane's own
// raster order for every cell of the plane axis == index.
func (a *Array) walkPlane(axis, index int, fn func(full, part int)) {
	sub := a.ext.Without(axis)
	coords := make([]int, len(sub))
	base := index * a.strides[axis]

	for part := 0; part < sub.Len(); part++ {
		full := base
		for k, c := range coords {
			fullAxis := k
			if k >= axis {
				fullAxis++
			}
			full += c * a.strides[fullAxis]
		}
		fn(full, part)

		for k := range coords {
			coords[k]++
			if coords[k] < sub[k] {
				break
			}
			coords[k] = 0
		}
	}
}

// Stats returns the minimum, maximum and mean of the cells, ignoring NaN.
// All three are NaN if no cell is a number.
func (a *Array) Stats() (lo, hi, mean float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	var n int
	for _, v := range a.data {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return lo, hi, sum / float64(n)
}
