package async

import (
	"context"
	"sync"
)

// Map applies fn to every input with at most limit calls in flight and
// returns the outputs in input order. A limit below 1 means unbounded.
//
// fn is called for every input, even after ctx is done; it is expected to
// observe ctx itself and report failures in its output.
//
// Example:
//
//	nodes := async.Map(ctx, 8, targets, func(ctx context.Context, t target) Node {
//	    return r.resolveNode(ctx, t)
//	})
func Map[In, Out any](ctx context.Context, limit int, inputs []In, fn func(context.Context, In) Out) []Out {
	out := make([]Out, len(inputs))
	if len(inputs) == 0 {
		return out
	}
	if limit < 1 || limit > len(inputs) {
		limit = len(inputs)
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = fn(ctx, in)
		}()
	}
	wg.Wait()

	return out
}
