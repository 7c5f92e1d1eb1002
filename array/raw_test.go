package array

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-rawarray/element"
)

func encodeLE(t *testing.T, cells []float64, e element.Encoding) []byte {
	t.Helper()
	raw, err := element.EncodeAll(cells, e, binary.LittleEndian)
	require.NoError(t, err)
	return raw
}

func TestReadRawHeaderless(t *testing.T) {
	cells := []float64{1, 2, 3, 4, 5, 6}
	r := bytes.NewReader(encodeLE(t, cells, element.Int16))

	a, err := ReadRaw(r, RawSpec{Encoding: element.Int16, Extent: mustExtent(t, 3, 2)})
	require.NoError(t, err)
	assert.Equal(t, cells, a.Data())
	assert.Equal(t, Extent{3, 2}, a.Extent())
}

func TestReadRawRanks(t *testing.T) {
	for _, dims := range [][]int{{24}, {6, 4}, {4, 3, 2}} {
		cells := make([]float64, 24)
		for i := range cells {
			cells[i] = float64(i * 3)
		}
		r := bytes.NewReader(encodeLE(t, cells, element.Uint8))

		a, err := ReadRaw(r, RawSpec{Encoding: element.Uint8, Extent: mustExtent(t, dims...)})
		require.NoError(t, err)
		assert.Equal(t, len(dims), a.Rank())
		assert.Equal(t, cells, a.Data())
	}
}

func TestReadRawGuessHeader(t *testing.T) {
	cells := []float64{10, -20, 30, -40}
	payload := encodeLE(t, cells, element.Int32)
	rng := rand.New(rand.NewSource(1))

	for _, headerSize := range []int{0, 1, 7, 100, 4096} {
		header := make([]byte, headerSize)
		rng.Read(header)
		stream := append(header, payload...)

		a, skipped, err := ReadRawWithHeader(bytes.NewReader(stream), RawSpec{
			Encoding: element.Int32,
			Extent:   mustExtent(t, 2, 2),
			Header:   GuessHeader(),
		})
		require.NoError(t, err, "header %d", headerSize)
		assert.Equal(t, int64(headerSize), skipped)
		assert.Equal(t, cells, a.Data(), "header %d", headerSize)
	}
}

func TestReadRawGuessHeaderShortStream(t *testing.T) {
	payload := encodeLE(t, []float64{1, 2, 3}, element.Uint16)

	_, skipped, err := ReadRawWithHeader(bytes.NewReader(payload), RawSpec{
		Encoding: element.Uint16,
		Extent:   mustExtent(t, 4),
		Header:   GuessHeader(),
	})
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Zero(t, skipped)
}

func TestReadRawSkipHeader(t *testing.T) {
	cells := []float64{7, 8, 9}
	stream := append([]byte("HDR!!"), encodeLE(t, cells, element.Uint8)...)
	stream = append(stream, 0xff, 0xff) // trailing bytes are ignored

	r := bytes.NewReader(stream)
	a, err := ReadRaw(r, RawSpec{
		Encoding: element.Uint8,
		Extent:   mustExtent(t, 3),
		Header:   SkipHeader(5),
	})
	require.NoError(t, err)
	assert.Equal(t, cells, a.Data())

	// The cursor sits right after the payload.
	assert.Equal(t, 2, r.Len())
}

func TestReadRawNegativeSkip(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 8)), RawSpec{
		Encoding: element.Uint8,
		Extent:   mustExtent(t, 8),
		Header:   SkipHeader(-1),
	})
	require.Error(t, err)
}

func TestReadRawTruncated(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 15)), RawSpec{
		Encoding: element.Uint8,
		Extent:   mustExtent(t, 4, 4),
	})
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadRaw(bytes.NewReader(make([]byte, 16)), RawSpec{
		Encoding: element.Uint8,
		Extent:   mustExtent(t, 4, 4),
		Header:   SkipHeader(1),
	})
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadRaw(bytes.NewReader(nil), RawSpec{
		Encoding: element.Float64,
		Extent:   mustExtent(t, 1),
	})
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReadRawSwapByteOrder(t *testing.T) {
	cells := []float64{1, 256, -2}
	be, err := element.EncodeAll(cells, element.Int16, binary.BigEndian)
	require.NoError(t, err)

	a, err := ReadRaw(bytes.NewReader(be), RawSpec{
		Encoding:      element.Int16,
		Extent:        mustExtent(t, 3),
		SwapByteOrder: true,
	})
	require.NoError(t, err)
	assert.Equal(t, cells, a.Data())
}

func TestReadRawSwapMatchesPostDecodeInversion(t *testing.T) {
	raw := []byte{0x01, 0x00, 0x00, 0x02, 0x10, 0x20, 0x30, 0x40}
	spec := RawSpec{Encoding: element.Uint32, Extent: mustExtent(t, 2)}

	plain, err := ReadRaw(bytes.NewReader(raw), spec)
	require.NoError(t, err)
	require.NoError(t, plain.InvertByteOrder(element.Uint32))

	spec.SwapByteOrder = true
	swapped, err := ReadRaw(bytes.NewReader(raw), spec)
	require.NoError(t, err)

	assert.True(t, plain.Equal(swapped))
}

func TestReadRawInvalidEncodingOrExtent(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 4)), RawSpec{Encoding: element.Encoding(77), Extent: Extent{4}})
	require.ErrorIs(t, err, element.ErrUnsupportedEncoding)

	_, err = ReadRaw(bytes.NewReader(make([]byte, 4)), RawSpec{Encoding: element.Uint8, Extent: Extent{0}})
	require.ErrorIs(t, err, ErrInvalidExtent)
}

func TestHeaderString(t *testing.T) {
	assert.Equal(t, "none", NoHeader().String())
	assert.Equal(t, "guess", GuessHeader().String())
	assert.Equal(t, "12 bytes", SkipHeader(12).String())
	assert.True(t, GuessHeader().IsGuess())
	assert.Equal(t, int64(-3), GuessedHeaderSize(5, 8))
}

func TestReadRawOverflowingExtent(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(nil), RawSpec{
		Encoding: element.Uint8,
		Extent:   Extent{1 << 22, 1 << 21, 1 << 21},
	})
	require.ErrorIs(t, err, ErrInvalidExtent)

	_, err = RawSpec{Encoding: element.Float64, Extent: Extent{MaxLen, 2}}.PayloadSize()
	require.ErrorIs(t, err, ErrInvalidExtent)
}

func TestReadRawLargeExtentShortStream(t *testing.T) {
	// A payload of 2^50 bytes is rejected before anything is allocated.
	spec := RawSpec{Encoding: element.Uint16, Extent: Extent{1 << 16, 1 << 16, 1 << 17}}

	_, err := ReadRaw(bytes.NewReader([]byte{1, 2, 3}), spec)
	require.ErrorIs(t, err, ErrTruncatedInput)

	spec.Header = GuessHeader()
	_, err = ReadRaw(bytes.NewReader([]byte{1, 2, 3}), spec)
	require.ErrorIs(t, err, ErrTruncatedInput)

	spec.Header = SkipHeader(1 << 40)
	_, err = ReadRaw(bytes.NewReader([]byte{1, 2, 3}), spec)
	require.ErrorIs(t, err, ErrTruncatedInput)
}
