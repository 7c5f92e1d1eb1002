package array

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/robert-malhotra/go-rawarray/element"
	binpkg "github.com/robert-malhotra/go-rawarray/internal/binary"
	"github.com/robert-malhotra/go-rawarray/internal/filter"
)

const (
	magicPrefix = "QA"
	noFilters   = "-"
)

// Suffix returns the default file suffix for arrays of the given rank.
func Suffix(rank int) string {
	return fmt.Sprintf(".qa%d", rank)
}

// Info is the parsed header of a persisted array.
type Info struct {
	Rank     int
	Extent   Extent
	Encoding element.Encoding
	Filters  []string

	// HeaderSize is the number of bytes before the payload.
	HeaderSize int64
}

// Encode writes a in the persisted format with cells encoded as e.
func (a *Array) Encode(w io.Writer, e element.Encoding, opts ...Option) error {
	o := applyOptions(opts)
	return a.encode(w, e, o)
}

func (a *Array) encode(w io.Writer, e element.Encoding, o *options) error {
	width, err := element.WidthOf(e)
	if err != nil {
		return err
	}
	names, err := o.filterNames()
	if err != nil {
		return err
	}
	pipeline, err := filter.NewPipeline(names, width)
	if err != nil {
		return err
	}

	raw, err := element.EncodeAll(a.data, e, binary.LittleEndian)
	if err != nil {
		return err
	}
	payload, err := pipeline.Encode(raw)
	if err != nil {
		return err
	}

	bw := binpkg.NewWriter(w, binpkg.DefaultConfig())
	for _, line := range headerLines(a.ext, e, pipeline.Names()) {
		if err := bw.WriteLine(line); err != nil {
			return err
		}
	}
	if err := bw.WriteBytes(payload); err != nil {
		return err
	}
	return bw.Flush()
}

func headerLines(ext Extent, e element.Encoding, filters []string) []string {
	dims := make([]string, len(ext))
	for i, d := range ext {
		dims[i] = strconv.Itoa(d)
	}
	chain := noFilters
	if len(filters) > 0 {
		chain = strings.Join(filters, ",")
	}
	return []string{
		magicPrefix + strconv.Itoa(ext.Rank()),
		e.String(),
		strings.Join(dims, " "),
		chain,
	}
}

// Save writes a to path. The file appears at path only once it has been
// written completely; on error no file is left behind.
func (a *Array) Save(path string, e element.Encoding, opts ...Option) (err error) {
	o := applyOptions(opts)

	tmp, err := afero.TempFile(o.fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			o.fs.Remove(tmpName)
		}
	}()

	if err = a.encode(tmp, e, o); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = o.fs.Chmod(tmpName, o.perm); err != nil {
		return err
	}
	return o.fs.Rename(tmpName, path)
}

// Load reads a persisted array from path and returns it with the encoding
// it was stored in.
func Load(path string, opts ...Option) (*Array, element.Encoding, error) {
	o := applyOptions(opts)

	f, err := o.fs.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a persisted array from r. The payload must end exactly at the
// end of the stream.
func Decode(r io.Reader) (*Array, element.Encoding, error) {
	br := binpkg.NewReader(r, binpkg.DefaultConfig())
	info, err := readHeader(br)
	if err != nil {
		return nil, 0, err
	}

	stored, err := br.ReadRest()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading payload: %w", ErrFormat, err)
	}

	width := info.Encoding.Width()
	pipeline, err := filter.NewPipeline(info.Filters, width)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	raw := stored
	if !pipeline.Empty() {
		if raw, err = pipeline.Decode(stored); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	}

	want := info.Extent.Len() * width
	if len(raw) != want {
		return nil, 0, fmt.Errorf("%w: payload is %d bytes, header declares %d", ErrFormat, len(raw), want)
	}

	a, err := New(info.Extent)
	if err != nil {
		return nil, 0, err
	}
	if err := element.DecodeAll(a.data, raw, info.Encoding, binary.LittleEndian); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return a, info.Encoding, nil
}

// ReadHeader parses the header of a persisted array without reading the
// payload.
func ReadHeader(r io.Reader) (Info, error) {
	return readHeader(binpkg.NewReader(r, binpkg.DefaultConfig()))
}

func readHeader(br *binpkg.Reader) (Info, error) {
	var lines [4]string
	for i := range lines {
		line, err := br.ReadLine()
		if err != nil {
			return Info{}, fmt.Errorf("%w: header line %d: %w", ErrFormat, i+1, err)
		}
		lines[i] = line
	}

	var info Info

	rankStr, ok := strings.CutPrefix(lines[0], magicPrefix)
	if !ok {
		return Info{}, fmt.Errorf("%w: bad magic %q", ErrFormat, lines[0])
	}
	rank, err := strconv.Atoi(rankStr)
	if err != nil || rank < 1 || rank > MaxRank {
		return Info{}, fmt.Errorf("%w: bad rank %q", ErrFormat, rankStr)
	}
	info.Rank = rank

	enc, err := element.Parse(lines[1])
	if err != nil || enc.String() != lines[1] {
		return Info{}, fmt.Errorf("%w: bad encoding %q: %w", ErrFormat, lines[1], element.ErrUnsupportedEncoding)
	}
	info.Encoding = enc

	fields := strings.Split(lines[2], " ")
	if len(fields) != rank {
		return Info{}, fmt.Errorf("%w: %d extents for rank %d", ErrFormat, len(fields), rank)
	}
	info.Extent = make(Extent, rank)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return Info{}, fmt.Errorf("%w: bad extent %q", ErrFormat, field)
		}
		info.Extent[i] = n
	}
	if err := info.Extent.Validate(); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if lines[3] != noFilters {
		info.Filters = strings.Split(lines[3], ",")
		for _, name := range info.Filters {
			if _, ok := filter.Registry[name]; !ok {
				return Info{}, fmt.Errorf("%w: unknown filter %q", ErrFormat, name)
			}
		}
	}

	info.HeaderSize = br.Pos()
	return info, nil
}
