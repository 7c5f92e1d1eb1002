package element

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedEncoding is returned for an encoding tag outside the
	// supported enumeration.
	ErrUnsupportedEncoding = errors.New("unsupported element encoding")

	// ErrMalformedBuffer is returned when a buffer length is not a multiple
	// of the element width it is processed with.
	ErrMalformedBuffer = errors.New("malformed buffer")
)

// Encoding identifies the fixed-width on-disk representation of one cell.
type Encoding uint8

// Supported encodings. The numeric values are the codes accepted on the
// command line.
const (
	Uint8 Encoding = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float32
	Float64

	numEncodings
)

type encodingInfo struct {
	name   string
	short  string
	width  int
	signed bool
	float  bool
}

var encodings = [numEncodings]encodingInfo{
	Uint8:   {"uint8", "u8", 1, false, false},
	Int8:    {"int8", "i8", 1, true, false},
	Uint16:  {"uint16", "u16", 2, false, false},
	Int16:   {"int16", "i16", 2, true, false},
	Uint32:  {"uint32", "u32", 4, false, false},
	Int32:   {"int32", "i32", 4, true, false},
	Uint64:  {"uint64", "u64", 8, false, false},
	Int64:   {"int64", "i64", 8, true, false},
	Float32: {"float32", "f32", 4, true, true},
	Float64: {"float64", "f64", 8, true, true},
}

// All returns every supported encoding in code order.
func All() []Encoding {
	out := make([]Encoding, 0, numEncodings)
	for e := Encoding(0); e < numEncodings; e++ {
		out = append(out, e)
	}
	return out
}

// Valid reports whether e is a supported encoding.
func (e Encoding) Valid() bool {
	return e < numEncodings
}

// Width returns the size of one element in bytes, or 0 if e is not supported.
func (e Encoding) Width() int {
	if !e.Valid() {
		return 0
	}
	return encodings[e].width
}

// IsFloat reports whether e is an IEEE floating-point encoding.
func (e Encoding) IsFloat() bool {
	return e.Valid() && encodings[e].float
}

// IsSigned reports whether e can represent negative values.
func (e Encoding) IsSigned() bool {
	return e.Valid() && encodings[e].signed
}

func (e Encoding) String() string {
	if !e.Valid() {
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
	return encodings[e].name
}

// WidthOf returns the size of one element of e in bytes.
func WidthOf(e Encoding) (int, error) {
	if !e.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, uint8(e))
	}
	return encodings[e].width, nil
}

// Parse resolves a numeric code ("3"), a name ("int16") or a short name
// ("i16") to an Encoding. Names are matched case-insensitively.
func Parse(s string) (Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnsupportedEncoding)
	}

	if code, err := strconv.Atoi(name); err == nil {
		if code < 0 || code >= int(numEncodings) {
			return 0, fmt.Errorf("%w: code %d", ErrUnsupportedEncoding, code)
		}
		return Encoding(code), nil
	}

	for e, info := range encodings {
		if name == info.name || name == info.short {
			return Encoding(e), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}
