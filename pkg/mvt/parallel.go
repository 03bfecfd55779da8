package mvt

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ParallelOptions controls DecodeLayersParallel's worker pool.
type ParallelOptions struct {
	// Workers bounds the number of layers decoded concurrently. Zero
	// defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes a layer decode failure to be collected rather than
	// aborting the remaining work. When false, the first error cancels the
	// remaining workers and is returned immediately.
	SkipErrors bool

	// Progress, if set, is called after each layer finishes decoding
	// (successfully or not), with the count of layers completed so far.
	Progress func(done, total int)
}

// DefaultParallelOptions returns a worker pool sized to the host and tuned
// to stop at the first error, matching Decode's fail-fast stance on
// framing errors.
func DefaultParallelOptions() ParallelOptions {
	return ParallelOptions{Workers: runtime.NumCPU(), SkipErrors: false}
}

// DecodeLayersParallel decodes every layer of an already-parsed Tile
// concurrently, using golang.org/x/sync/errgroup in place of the teacher's
// hand-rolled channel-and-waitgroup pool: each layer is independent (no
// shared mutable state besides the result slice, written at a fixed,
// pre-allocated index), which is exactly the shape errgroup.WithContext
// is built for.
//
// Results preserve the input layer order regardless of completion order.
func DecodeLayersParallel(ctx context.Context, tile *Tile, decodeOpts DecodeOptions, opts ParallelOptions) ([]DecodedLayer, []error) {
	if len(tile.Layers) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tile.Layers) {
		workers = len(tile.Layers)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*DecodedLayer, len(tile.Layers))
	errs := make([]error, len(tile.Layers))
	var done atomic.Int64

	for i, layer := range tile.Layers {
		i, layer := i, layer
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			dl, err := DecodeLayer(layer, decodeOpts)
			if err != nil {
				err = fmt.Errorf("layer %q: %w", layer.Name, err)
				errs[i] = err
			} else {
				results[i] = dl
			}

			n := done.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(n), len(tile.Layers))
			}
			if err != nil && !opts.SkipErrors {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, []error{err}
	}

	out := make([]DecodedLayer, 0, len(results))
	var collected []error
	for i, dl := range results {
		if dl != nil {
			out = append(out, *dl)
		}
		if errs[i] != nil {
			collected = append(collected, errs[i])
		}
	}
	return out, collected
}
