package element

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Encode writes v into the first Width() bytes of dst.
//
// Integer encodings round v to the nearest integer (halves away from zero)
// and saturate at the bounds of the target type. NaN encodes as 0.
func Encode(dst []byte, v float64, e Encoding, order binary.ByteOrder) error {
	width, err := WidthOf(e)
	if err != nil {
		return err
	}
	if len(dst) < width {
		return fmt.Errorf("%w: %d bytes for %s element", ErrMalformedBuffer, len(dst), e)
	}
	encodeOne(dst[:width], v, e, order)
	return nil
}

// EncodeAll converts cells to a newly allocated buffer of len(src)*Width() bytes.
func EncodeAll(src []float64, e Encoding, order binary.ByteOrder) ([]byte, error) {
	width, err := WidthOf(e)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(src)*width)
	for i, v := range src {
		off := i * width
		encodeOne(out[off:off+width], v, e, order)
	}
	return out, nil
}

func encodeOne(b []byte, v float64, e Encoding, order binary.ByteOrder) {
	switch e {
	case Uint8:
		b[0] = saturate[uint8](v, 0, math.MaxUint8)
	case Int8:
		b[0] = byte(saturate[int8](v, math.MinInt8, math.MaxInt8))
	case Uint16:
		order.PutUint16(b, saturate[uint16](v, 0, math.MaxUint16))
	case Int16:
		order.PutUint16(b, uint16(saturate[int16](v, math.MinInt16, math.MaxInt16)))
	case Uint32:
		order.PutUint32(b, saturate[uint32](v, 0, math.MaxUint32))
	case Int32:
		order.PutUint32(b, uint32(saturate[int32](v, math.MinInt32, math.MaxInt32)))
	case Uint64:
		order.PutUint64(b, saturate[uint64](v, 0, math.MaxUint64))
	case Int64:
		order.PutUint64(b, uint64(saturate[int64](v, math.MinInt64, math.MaxInt64)))
	case Float32:
		order.PutUint32(b, float64ToFloat32(v))
	case Float64:
		order.PutUint64(b, math.Float64bits(v))
	}
}

// saturate rounds v and clamps it to [lo, hi]. The comparisons run in
// float64, where hi may round up to the next power of two; anything at or
// beyond that bound maps to hi.
func saturate[T constraints.Integer](v float64, lo, hi T) T {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r <= float64(lo) {
		return lo
	}
	if r >= float64(hi) {
		return hi
	}
	return T(r)
}
