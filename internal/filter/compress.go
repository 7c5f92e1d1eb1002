package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultGzipLevel is the compression level used by the registry.
const DefaultGzipLevel = gzip.DefaultCompression

// Gzip implements DEFLATE compression in gzip framing.
type Gzip struct {
	level int
}

// NewGzip creates a gzip filter with the given level (-1 = default, 1-9).
func NewGzip(level int) *Gzip {
	return &Gzip{level: level}
}

func (f *Gzip) Name() string {
	return NameGzip
}

func (f *Gzip) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		w.Close()
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *Gzip) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	output, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return output, nil
}

// Zstd implements Zstandard compression.
type Zstd struct{}

// NewZstd creates a zstd filter.
func NewZstd() *Zstd {
	return &Zstd{}
}

func (f *Zstd) Name() string {
	return NameZstd
}

func (f *Zstd) Encode(input []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(input, nil), nil
}

func (f *Zstd) Decode(input []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	output, err := dec.DecodeAll(input, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return output, nil
}

// LZ4 implements LZ4 compression in the LZ4 frame format.
type LZ4 struct{}

// NewLZ4 creates an lz4 filter.
func NewLZ4() *LZ4 {
	return &LZ4{}
}

func (f *LZ4) Name() string {
	return NameLZ4
}

func (f *LZ4) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *LZ4) Decode(input []byte) ([]byte, error) {
	output, err := io.ReadAll(lz4.NewReader(bytes.NewReader(input)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return output, nil
}
