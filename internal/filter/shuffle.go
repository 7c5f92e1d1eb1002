package filter

// Shuffle implements the byte shuffle filter.
// This filter rearranges bytes to improve compression by grouping
// similar byte positions together (e.g., all LSBs, then all next bytes, etc.).
type Shuffle struct {
	elemSize int
}

// NewShuffle creates a shuffle filter for elements of elemSize bytes.
func NewShuffle(elemSize int) *Shuffle {
	if elemSize < 1 {
		elemSize = 1
	}
	return &Shuffle{elemSize: elemSize}
}

func (f *Shuffle) Name() string {
	return NameShuffle
}

// Encode groups byte j of every element together.
// Input is organized as: [elem0][elem1]...[elemM]
// Output is organized as: [all byte 0s][all byte 1s]...[all byte N-1s]
// Trailing bytes that do not fill an element are kept in place.
func (f *Shuffle) Encode(input []byte) ([]byte, error) {
	numElems := len(input) / f.elemSize
	if f.elemSize <= 1 || numElems == 0 {
		return input, nil
	}

	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[j*numElems+i] = input[i*f.elemSize+j]
		}
	}
	tail := numElems * f.elemSize
	copy(output[tail:], input[tail:])

	return output, nil
}

// Decode reverses the shuffle transformation.
func (f *Shuffle) Decode(input []byte) ([]byte, error) {
	numElems := len(input) / f.elemSize
	if f.elemSize <= 1 || numElems == 0 {
		return input, nil
	}

	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}
	tail := numElems * f.elemSize
	copy(output[tail:], input[tail:])

	return output, nil
}
