package filter

import (
	"fmt"
	"sort"
)

// Filter names as they appear in persisted headers.
const (
	NameShuffle    = "shuffle"
	NameGzip       = "gzip"
	NameZstd       = "zstd"
	NameLZ4        = "lz4"
	NameFletcher32 = "fletcher32"
)

// Filter is the interface implemented by all payload filters.
type Filter interface {
	// Name returns the identifier recorded in the header.
	Name() string

	// Encode transforms payload bytes to their stored form.
	Encode(input []byte) ([]byte, error)

	// Decode transforms stored bytes back to payload bytes.
	Decode(input []byte) ([]byte, error)
}

// Registry maps filter names to constructors. Constructors receive the
// element width of the payload.
var Registry = map[string]func(elemSize int) Filter{
	NameShuffle:    func(elemSize int) Filter { return NewShuffle(elemSize) },
	NameGzip:       func(int) Filter { return NewGzip(DefaultGzipLevel) },
	NameZstd:       func(int) Filter { return NewZstd() },
	NameLZ4:        func(int) Filter { return NewLZ4() },
	NameFletcher32: func(int) Filter { return NewFletcher32() },
}

// Compressors lists the filter names that compress the payload.
var Compressors = []string{NameGzip, NameZstd, NameLZ4}

// IsCompressor reports whether name is one of the compressing filters.
func IsCompressor(name string) bool {
	for _, c := range Compressors {
		if c == name {
			return true
		}
	}
	return false
}

// New creates the filter registered under name.
func New(name string, elemSize int) (Filter, error) {
	constructor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported filter %q (known: %v)", name, knownNames())
	}
	return constructor(elemSize), nil
}

func knownNames() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
