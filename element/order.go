package element

import "fmt"

// InvertByteOrder returns a copy of buf with the bytes of every width-sized
// unit reversed. The buffer length is unchanged.
func InvertByteOrder(buf []byte, width int) ([]byte, error) {
	out := make([]byte, len(buf))
	copy(out, buf)
	if err := InvertByteOrderInPlace(out, width); err != nil {
		return nil, err
	}
	return out, nil
}

// InvertByteOrderInPlace reverses the bytes of every width-sized unit of buf.
func InvertByteOrderInPlace(buf []byte, width int) error {
	if width <= 0 || len(buf)%width != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of width %d", ErrMalformedBuffer, len(buf), width)
	}
	if width == 1 {
		return nil
	}
	for off := 0; off < len(buf); off += width {
		unit := buf[off : off+width]
		for i, j := 0, width-1; i < j; i, j = i+1, j-1 {
			unit[i], unit[j] = unit[j], unit[i]
		}
	}
	return nil
}
