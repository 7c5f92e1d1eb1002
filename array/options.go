package array

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/robert-malhotra/go-rawarray/internal/filter"
)

// Option configures how arrays are saved and loaded.
type Option func(*options)

type options struct {
	fs          afero.Fs
	compression string
	shuffle     bool
	checksum    bool
	perm        os.FileMode
}

func defaultOptions() *options {
	return &options{
		fs:   afero.NewOsFs(),
		perm: 0o644,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFs sets the filesystem used by Save and Load.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithCompression selects the payload compressor: "gzip", "zstd", "lz4",
// or "none" / "" for an uncompressed payload.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}

// WithShuffle enables the byte shuffle filter (improves compression).
func WithShuffle() Option {
	return func(o *options) {
		o.shuffle = true
	}
}

// WithChecksum appends a Fletcher-32 checksum to the payload.
func WithChecksum() Option {
	return func(o *options) {
		o.checksum = true
	}
}

// WithPerm sets the permission bits of saved files.
func WithPerm(perm os.FileMode) Option {
	return func(o *options) {
		o.perm = perm
	}
}

// filterNames returns the filter chain in encode order.
func (o *options) filterNames() ([]string, error) {
	var names []string
	if o.shuffle {
		names = append(names, filter.NameShuffle)
	}
	switch o.compression {
	case "", "none":
	default:
		if !filter.IsCompressor(o.compression) {
			return nil, fmt.Errorf("unknown compression %q (want one of %v or none)", o.compression, filter.Compressors)
		}
		names = append(names, o.compression)
	}
	if o.checksum {
		names = append(names, filter.NameFletcher32)
	}
	return names, nil
}
