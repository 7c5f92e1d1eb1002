package element

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decode converts the first Width() bytes of b to a cell value.
func Decode(b []byte, e Encoding, order binary.ByteOrder) (float64, error) {
	width, err := WidthOf(e)
	if err != nil {
		return 0, err
	}
	if len(b) < width {
		return 0, fmt.Errorf("%w: %d bytes for %s element", ErrMalformedBuffer, len(b), e)
	}
	return decodeOne(b[:width], e, order), nil
}

// DecodeAll converts src to cells, one element of e per cell of dst.
// len(src) must be exactly len(dst)*Width().
func DecodeAll(dst []float64, src []byte, e Encoding, order binary.ByteOrder) error {
	width, err := WidthOf(e)
	if err != nil {
		return err
	}
	if len(src) != len(dst)*width {
		return fmt.Errorf("%w: %d bytes for %d %s elements", ErrMalformedBuffer, len(src), len(dst), e)
	}

	// Fast path for single-byte encodings.
	switch e {
	case Uint8:
		for i, b := range src {
			dst[i] = float64(b)
		}
		return nil
	case Int8:
		for i, b := range src {
			dst[i] = float64(int8(b))
		}
		return nil
	}

	for i := range dst {
		off := i * width
		dst[i] = decodeOne(src[off:off+width], e, order)
	}
	return nil
}

func decodeOne(b []byte, e Encoding, order binary.ByteOrder) float64 {
	switch e {
	case Uint8:
		return float64(b[0])
	case Int8:
		return float64(int8(b[0]))
	case Uint16:
		return float64(order.Uint16(b))
	case Int16:
		return float64(int16(order.Uint16(b)))
	case Uint32:
		return float64(order.Uint32(b))
	case Int32:
		return float64(int32(order.Uint32(b)))
	case Uint64:
		return float64(order.Uint64(b))
	case Int64:
		return float64(int64(order.Uint64(b)))
	case Float32:
		return float32ToFloat64(order.Uint32(b))
	case Float64:
		return math.Float64frombits(order.Uint64(b))
	}
	return 0
}
