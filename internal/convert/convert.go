// Package convert drives the conversion of raw binary grids into persisted
// arrays.
package convert

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/robert-malhotra/go-rawarray/array"
	"github.com/robert-malhotra/go-rawarray/internal/logging"
)

// State is a step of a conversion.
type State string

const (
	StateParseArgs         State = "ParseArgs"
	StateResolveOutputPath State = "ResolveOutputPath"
	StateSelectRankBranch  State = "SelectRankBranch"
	StateMonolithic        State = "Monolithic"
	StateSlicedVolume      State = "SlicedVolume"
	StatePersist           State = "Persist"
	StateDone              State = "Done"
	StateFailed            State = "Failed"
)

// Result describes a finished conversion.
type Result struct {
	Output string
	Extent array.Extent
	State  State

	// FailedIn is the state that failed when State is StateFailed.
	FailedIn State

	// HeaderBytes is the number of header bytes skipped in the input.
	HeaderBytes int64
}

// Converter runs conversions against a filesystem.
type Converter struct {
	Fs     afero.Fs
	Logger *logging.Logger

	// Output overrides the derived output path.
	Output string

	// Save holds extra options for writing the output array.
	Save []array.Option
}

// Run performs the conversion described by req. On failure no output file
// is written.
func (c *Converter) Run(ctx context.Context, req Request) (Result, error) {
	r := &run{Converter: c, req: req, log: c.logger(), fs: c.filesystem()}
	return r.exec(ctx)
}

func (c *Converter) filesystem() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}
	return c.Fs
}

func (c *Converter) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.NoopLogger()
	}
	return c.Logger
}

type run struct {
	*Converter
	req Request
	log *logging.Logger
	fs  afero.Fs

	res Result
	arr *array.Array
}

type stateFunc func(ctx context.Context) (State, error)

func (r *run) exec(ctx context.Context) (Result, error) {
	r.log = r.log.WithInput(r.req.Input)
	states := map[State]stateFunc{
		StateParseArgs:         r.parseArgs,
		StateResolveOutputPath: r.resolveOutputPath,
		StateSelectRankBranch:  r.selectRankBranch,
		StateMonolithic:        r.monolithic,
		StateSlicedVolume:      r.slicedVolume,
		StatePersist:           r.persist,
	}

	state := StateParseArgs
	for state != StateDone {
		next, err := r.step(ctx, states[state])
		if err != nil {
			r.log.LogFailure(ctx, string(state), err)
			r.res.State = StateFailed
			r.res.FailedIn = state
			return r.res, err
		}
		state = next
	}

	r.res.State = StateDone
	return r.res, nil
}

func (r *run) step(ctx context.Context, fn stateFunc) (State, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fn(ctx)
}

func (r *run) parseArgs(ctx context.Context) (State, error) {
	if err := r.req.Validate(); err != nil {
		return "", err
	}
	r.log.LogRequest(ctx, r.req.Extent().String(), r.req.InEncoding.String(), r.req.Header().String(), r.req.SwapByteOrder)
	return StateResolveOutputPath, nil
}

func (r *run) resolveOutputPath(context.Context) (State, error) {
	r.res.Output = r.Output
	if r.res.Output == "" {
		r.res.Output = OutputPath(r.req.Input, r.req.Rank())
	}
	if r.res.Output == r.req.Input {
		return "", fmt.Errorf("%w: output %q would overwrite the input", ErrUsage, r.res.Output)
	}
	return StateSelectRankBranch, nil
}

func (r *run) selectRankBranch(context.Context) (State, error) {
	r.res.Extent = r.req.Extent()
	if r.req.Sliced() {
		return StateSlicedVolume, nil
	}
	return StateMonolithic, nil
}

func (r *run) monolithic(ctx context.Context) (State, error) {
	f, err := r.fs.Open(r.req.Input)
	if err != nil {
		return "", err
	}
	defer f.Close()

	spec := array.RawSpec{
		Encoding:      r.req.InEncoding,
		Extent:        r.res.Extent,
		Header:        r.req.Header(),
		SwapByteOrder: r.req.SwapByteOrder,
	}

	if spec.Header.IsGuess() {
		fi, err := f.Stat()
		if err != nil {
			return "", err
		}
		payload, err := spec.PayloadSize()
		if err != nil {
			return "", err
		}
		r.log.LogHeaderGuess(ctx, fi.Size(), payload, array.GuessedHeaderSize(fi.Size(), payload))
	}

	a, skipped, err := array.ReadRawWithHeader(f, spec)
	if err != nil {
		return "", err
	}
	r.arr = a
	r.res.HeaderBytes = skipped
	return StatePersist, nil
}

func (r *run) slicedVolume(ctx context.Context) (State, error) {
	as := &array.Assembler{
		Fs:            r.fs,
		SwapByteOrder: r.req.SwapByteOrder,
		OnSlice: func(i int, path string) {
			r.log.LogSlice(ctx, i, path)
		},
	}

	slice := array.Extent{r.req.NumX, r.req.NumY}
	a, err := as.AssembleContext(ctx, r.req.Input, r.req.NumSlices(), slice, r.req.InEncoding)
	if err != nil {
		return "", err
	}
	r.arr = a
	return StatePersist, nil
}

func (r *run) persist(ctx context.Context) (State, error) {
	opts := append([]array.Option{array.WithFs(r.fs)}, r.Save...)
	if err := r.arr.Save(r.res.Output, r.req.OutEncoding, opts...); err != nil {
		return "", err
	}

	var size int64
	if fi, err := r.fs.Stat(r.res.Output); err == nil {
		size = fi.Size()
	}
	r.log.LogPersist(ctx, r.res.Output, size)
	return StateDone, nil
}
