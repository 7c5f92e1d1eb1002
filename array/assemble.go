package array

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/robert-malhotra/go-rawarray/element"
)

// Assembler builds 3D volumes from numbered 2D raw slice files.
type Assembler struct {
	Fs afero.Fs

	// SwapByteOrder reads every slice as big-endian.
	SwapByteOrder bool

	// OnSlice, if set, is called before each slice file is opened.
	OnSlice func(index int, path string)
}

// AssembleSlices reads numSlices little-endian slice files named by template
// from fs into a volume of extent (x, y, numSlices).
func AssembleSlices(fs afero.Fs, template string, numSlices int, slice Extent, e element.Encoding) (*Array, error) {
	as := &Assembler{Fs: fs}
	return as.Assemble(template, numSlices, slice, e)
}

// Assemble reads slice i from fmt.Sprintf(template, i) for i in
// [0, numSlices) and stores it in plane z = i of a new volume. Slice files
// carry no header. The first failing slice aborts the assembly with a
// *SliceReadError and no volume is returned.
func (as *Assembler) Assemble(template string, numSlices int, slice Extent, e element.Encoding) (*Array, error) {
	return as.AssembleContext(context.Background(), template, numSlices, slice, e)
}

// AssembleContext is Assemble that stops before the next slice once ctx is
// done.
func (as *Assembler) AssembleContext(ctx context.Context, template string, numSlices int, slice Extent, e element.Encoding) (*Array, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}
	if slice.Rank() != 2 {
		return nil, fmt.Errorf("%w: slice extent %s must have rank 2", ErrRankMismatch, slice)
	}
	if numSlices < 1 {
		return nil, fmt.Errorf("%w: %d slices", ErrInvalidExtent, numSlices)
	}
	if _, err := element.WidthOf(e); err != nil {
		return nil, err
	}

	volExt := Extent{slice[AxisX], slice[AxisY], numSlices}
	if err := volExt.Validate(); err != nil {
		return nil, err
	}

	fs := as.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	spec := RawSpec{
		Encoding:      e,
		Extent:        slice,
		Header:        NoHeader(),
		SwapByteOrder: as.SwapByteOrder,
	}
	payload, err := spec.PayloadSize()
	if err != nil {
		return nil, err
	}

	// Every slice file must exist and be large enough before the volume is
	// allocated.
	for i := 0; i < numSlices; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := fmt.Sprintf(template, i)
		if err := checkSlice(fs, path, payload); err != nil {
			return nil, &SliceReadError{Index: i, Path: path, Err: err}
		}
	}

	vol, err := New(volExt)
	if err != nil {
		return nil, err
	}

	for i := 0; i < numSlices; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := fmt.Sprintf(template, i)
		if as.OnSlice != nil {
			as.OnSlice(i, path)
		}

		sub, err := readSlice(fs, path, spec)
		if err != nil {
			return nil, &SliceReadError{Index: i, Path: path, Err: err}
		}
		if err := vol.PutSlice(AxisZ, i, sub); err != nil {
			return nil, &SliceReadError{Index: i, Path: path, Err: err}
		}
	}

	return vol, nil
}

func checkSlice(fs afero.Fs, path string, payload int64) error {
	fi, err := fs.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() < payload {
		return fmt.Errorf("%w: need %d bytes, file has %d", ErrTruncatedInput, payload, fi.Size())
	}
	return nil
}

func readSlice(fs afero.Fs, path string, spec RawSpec) (*Array, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRaw(f, spec)
}

// ValidateTemplate checks that template holds exactly one integer verb
// (%d, %5d, %03x, ...). "%%" is a literal percent sign.
func ValidateTemplate(template string) error {
	verbs := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		i++
		if i < len(template) && template[i] == '%' {
			continue
		}
		for i < len(template) && isFormatModifier(template[i]) {
			i++
		}
		if i >= len(template) {
			return fmt.Errorf("%w: %q ends inside a verb", ErrTemplate, template)
		}
		switch template[i] {
		case 'd', 'b', 'o', 'O', 'x', 'X', 'v':
			verbs++
		default:
			return fmt.Errorf("%w: %q uses non-integer verb %%%c", ErrTemplate, template, template[i])
		}
	}
	if verbs != 1 {
		return fmt.Errorf("%w: %q has %d placeholders, want 1", ErrTemplate, template, verbs)
	}
	return nil
}

func isFormatModifier(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-', c == '+', c == '#', c == ' ', c == '.':
		return true
	}
	return false
}
