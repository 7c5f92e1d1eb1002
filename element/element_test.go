package element

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthOf(t *testing.T) {
	tests := []struct {
		enc   Encoding
		width int
	}{
		{Uint8, 1}, {Int8, 1},
		{Uint16, 2}, {Int16, 2},
		{Uint32, 4}, {Int32, 4},
		{Uint64, 8}, {Int64, 8},
		{Float32, 4}, {Float64, 8},
	}

	for _, tt := range tests {
		t.Run(tt.enc.String(), func(t *testing.T) {
			w, err := WidthOf(tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.width, tt.enc.Width())
		})
	}
}

func TestWidthOfUnsupported(t *testing.T) {
	_, err := WidthOf(Encoding(42))
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
	assert.Equal(t, 0, Encoding(42).Width())
	assert.False(t, Encoding(42).Valid())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"0", Uint8},
		{"9", Float64},
		{"u8", Uint8},
		{"I16", Int16},
		{"float32", Float32},
		{" uint64 ", Uint64},
		{"f64", Float64},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "10", "-1", "complex64", "u9"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnsupportedEncoding, "input %q", in)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := map[Encoding][]float64{
		Uint8:   {0, 1, 127, 255},
		Int8:    {-128, -1, 0, 127},
		Uint16:  {0, 258, 65535},
		Int16:   {-32768, -2, 0, 32767},
		Uint32:  {0, 70000, math.MaxUint32},
		Int32:   {math.MinInt32, -70000, math.MaxInt32},
		Uint64:  {0, 1 << 40, 1 << 53},
		Int64:   {-(1 << 53), -5, 1 << 52},
		Float32: {-1.5, 0, 3.25, 1e-3},
		Float64: {-1e300, 0, math.Pi, 1e-300},
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for enc, vals := range values {
			t.Run(order.String()+"/"+enc.String(), func(t *testing.T) {
				raw, err := EncodeAll(vals, enc, order)
				require.NoError(t, err)
				require.Len(t, raw, len(vals)*enc.Width())

				got := make([]float64, len(vals))
				require.NoError(t, DecodeAll(got, raw, enc, order))

				if enc == Float32 {
					for i := range vals {
						assert.Equal(t, float64(float32(vals[i])), got[i])
					}
					return
				}
				assert.Equal(t, vals, got)
			})
		}
	}
}

func TestDecodeByteOrder(t *testing.T) {
	raw := []byte{0x01, 0x02}

	le, err := Decode(raw, Uint16, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, float64(0x0201), le)

	be, err := Decode(raw, Uint16, binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, float64(0x0102), be)
}

func TestDecodeShortBuffer(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, Int32, binary.LittleEndian)
	require.ErrorIs(t, err, ErrMalformedBuffer)

	err = DecodeAll(make([]float64, 2), []byte{1, 2, 3}, Int16, binary.LittleEndian)
	require.ErrorIs(t, err, ErrMalformedBuffer)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte{1}, Encoding(200), binary.LittleEndian)
	require.ErrorIs(t, err, ErrUnsupportedEncoding)

	_, err = EncodeAll([]float64{1}, Encoding(200), binary.LittleEndian)
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestEncodeSaturates(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		in   float64
		want float64
	}{
		{"uint8 overflow", Uint8, 300, 255},
		{"uint8 negative", Uint8, -4, 0},
		{"uint8 round half up", Uint8, 2.5, 3},
		{"uint8 round down", Uint8, 2.4, 2},
		{"int8 underflow", Int8, -1000, -128},
		{"int8 round half away", Int8, -2.5, -3},
		{"int16 nan", Int16, math.NaN(), 0},
		{"uint16 inf", Uint16, math.Inf(1), 65535},
		{"int32 -inf", Int32, math.Inf(-1), math.MinInt32},
		{"uint64 huge", Uint64, 1e30, math.MaxUint64},
		{"int64 huge", Int64, 1e30, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.enc.Width())
			require.NoError(t, Encode(buf, tt.in, tt.enc, binary.LittleEndian))
			got, err := Decode(buf, tt.enc, binary.LittleEndian)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvertByteOrder(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	two, err := InvertByteOrder(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1, 4, 3, 6, 5, 8, 7}, two)

	four, err := InvertByteOrder(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 3, 2, 1, 8, 7, 6, 5}, four)

	one, err := InvertByteOrder(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, buf, one)

	// Source is not modified.
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf)
}

func TestInvertByteOrderInvolution(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}
	for _, w := range []int{1, 2, 4, 8} {
		once, err := InvertByteOrder(buf, w)
		require.NoError(t, err)
		twice, err := InvertByteOrder(once, w)
		require.NoError(t, err)
		assert.Equal(t, buf, twice, "width %d", w)
	}
}

func TestInvertByteOrderMalformed(t *testing.T) {
	_, err := InvertByteOrder([]byte{1, 2, 3}, 2)
	require.ErrorIs(t, err, ErrMalformedBuffer)

	_, err = InvertByteOrder([]byte{1, 2}, 0)
	require.ErrorIs(t, err, ErrMalformedBuffer)
}

func TestInvertMatchesOppositeOrder(t *testing.T) {
	cells := []float64{1, -2, 300, -40000}
	le, err := EncodeAll(cells, Int32, binary.LittleEndian)
	require.NoError(t, err)

	swapped, err := InvertByteOrder(le, 4)
	require.NoError(t, err)

	got := make([]float64, len(cells))
	require.NoError(t, DecodeAll(got, swapped, Int32, binary.BigEndian))
	assert.Equal(t, cells, got)
}

func TestFloat32NaNBits(t *testing.T) {
	patterns := []uint32{
		0x7f800001, // signalling, smallest payload
		0xff800123, // negative signalling
		0x7fc00000, // quiet
		0x7fc0abcd, // quiet with payload
		0x7f800000, // +Inf
		0x0100807f, // ordinary number
	}
	for _, bits := range patterns {
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, bits)

		v, err := Decode(raw, Float32, binary.LittleEndian)
		require.NoError(t, err)

		out := make([]byte, 4)
		require.NoError(t, Encode(out, v, Float32, binary.LittleEndian))
		assert.Equal(t, bits, binary.LittleEndian.Uint32(out), "bits %#08x", bits)
	}
}

func TestFloat64NaNToFloat32(t *testing.T) {
	// Payload entirely below float32 precision.
	v := math.Float64frombits(0x7ff0000000000001)

	out := make([]byte, 4)
	require.NoError(t, Encode(out, v, Float32, binary.LittleEndian))
	got := math.Float32frombits(binary.LittleEndian.Uint32(out))
	assert.True(t, math.IsNaN(float64(got)))
}

func TestEncodingClass(t *testing.T) {
	tests := []struct {
		enc    Encoding
		float  bool
		signed bool
	}{
		{Uint8, false, false},
		{Int8, false, true},
		{Uint64, false, false},
		{Int32, false, true},
		{Float32, true, true},
		{Float64, true, true},
		{Encoding(42), false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.float, tt.enc.IsFloat(), tt.enc.String())
		assert.Equal(t, tt.signed, tt.enc.IsSigned(), tt.enc.String())
	}
}
