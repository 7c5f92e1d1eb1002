package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-rawarray/array"
	"github.com/robert-malhotra/go-rawarray/element"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage")

// Usage is the positional argument synopsis.
const Usage = "<inputFile> <numX> <numY> <numZ> <inEncoding> [outEncoding] [guessHeaderSize:0|1] [swapByteOrder:0|1]"

const (
	minArgs = 5
	maxArgs = 8
)

// Request describes one conversion.
//
// A negative NumZ selects slice mode: Input is then a printf template with
// one integer verb and -NumZ slice files are read.
type Request struct {
	Input       string
	NumX        int
	NumY        int
	NumZ        int
	InEncoding  element.Encoding
	OutEncoding element.Encoding

	GuessHeader   bool
	HeaderBytes   int64
	SwapByteOrder bool
}

// ParseArgs builds a Request from the positional arguments. The output
// encoding defaults to the input encoding.
func ParseArgs(args []string) (Request, error) {
	if len(args) < minArgs || len(args) > maxArgs {
		return Request{}, fmt.Errorf("%w: got %d arguments, want %d to %d", ErrUsage, len(args), minArgs, maxArgs)
	}

	req := Request{Input: args[0]}
	if req.Input == "" {
		return Request{}, fmt.Errorf("%w: empty input file", ErrUsage)
	}

	var err error
	for i, dst := range []*int{&req.NumX, &req.NumY, &req.NumZ} {
		if *dst, err = parseInt(args[1+i], "num"+string(rune('X'+i))); err != nil {
			return Request{}, err
		}
	}

	if req.InEncoding, err = parseEncoding(args[4]); err != nil {
		return Request{}, err
	}
	req.OutEncoding = req.InEncoding
	if len(args) > 5 {
		if req.OutEncoding, err = parseEncoding(args[5]); err != nil {
			return Request{}, err
		}
	}
	if len(args) > 6 {
		if req.GuessHeader, err = parseFlag(args[6], "guessHeaderSize"); err != nil {
			return Request{}, err
		}
	}
	if len(args) > 7 {
		if req.SwapByteOrder, err = parseFlag(args[7], "swapByteOrder"); err != nil {
			return Request{}, err
		}
	}

	return req, req.Validate()
}

func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrUsage, name, s)
	}
	return n, nil
}

func parseEncoding(s string) (element.Encoding, error) {
	e, err := element.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return e, nil
}

// parseFlag accepts any integer; non-zero means true.
func parseFlag(s, name string) (bool, error) {
	n, err := parseInt(s, name)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// Rank returns the rank of the array the request produces.
func (r Request) Rank() int {
	switch {
	case r.NumZ != 0:
		return 3
	case r.NumY != 0:
		return 2
	default:
		return 1
	}
}

// Sliced reports whether the volume is assembled from slice files.
func (r Request) Sliced() bool { return r.NumZ < 0 }

// NumSlices returns the number of slice files in slice mode.
func (r Request) NumSlices() int { return max(-r.NumZ, 0) }

// Validate checks the request before any file is touched.
func (r Request) Validate() error {
	if r.NumX < 1 {
		return fmt.Errorf("%w: numX must be positive, got %d", ErrUsage, r.NumX)
	}
	if r.Rank() >= 2 && r.NumY < 1 {
		return fmt.Errorf("%w: numY must be positive for a rank %d array, got %d", ErrUsage, r.Rank(), r.NumY)
	}
	if !r.InEncoding.Valid() || !r.OutEncoding.Valid() {
		return fmt.Errorf("%w: %w", ErrUsage, element.ErrUnsupportedEncoding)
	}
	if r.HeaderBytes < 0 {
		return fmt.Errorf("%w: negative header size %d", ErrUsage, r.HeaderBytes)
	}
	if r.HeaderBytes > 0 && r.GuessHeader {
		return fmt.Errorf("%w: header size given and guessing requested", ErrUsage)
	}
	if r.HeaderBytes > 0 && r.Sliced() {
		return fmt.Errorf("%w: slice files carry no header", ErrUsage)
	}
	return nil
}

// Extent returns the extent of the array the request produces.
func (r Request) Extent() array.Extent {
	switch {
	case r.Sliced():
		return array.Extent{r.NumX, r.NumY, r.NumSlices()}
	case r.Rank() == 3:
		return array.Extent{r.NumX, r.NumY, r.NumZ}
	case r.Rank() == 2:
		return array.Extent{r.NumX, r.NumY}
	default:
		return array.Extent{r.NumX}
	}
}

// Header returns the header handling for a monolithic input.
func (r Request) Header() array.Header {
	switch {
	case r.GuessHeader:
		return array.GuessHeader()
	case r.HeaderBytes > 0:
		return array.SkipHeader(r.HeaderBytes)
	default:
		return array.NoHeader()
	}
}

// OutputPath derives the output file name: one trailing ".raw" is removed
// and the suffix for rank is appended.
func OutputPath(input string, rank int) string {
	return strings.TrimSuffix(input, ".raw") + array.Suffix(rank)
}
