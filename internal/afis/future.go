package afis

import (
	"context"

	"github.com/jtejido/afislr/internal/minutia"
)

// Future is the pending result of IdentifyAsync.
type Future struct {
	done    chan struct{}
	results []MatchResult
	err     error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether Wait would return immediately.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the identification finishes.
func (f *Future) Wait() ([]MatchResult, error) {
	<-f.done
	return f.results, f.err
}

// Get is Wait bounded by ctx. Giving up on the wait does not cancel the
// identification itself; cancel the context passed to IdentifyAsync for that.
func (f *Future) Get(ctx context.Context) ([]MatchResult, error) {
	select {
	case <-f.done:
		return f.results, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IdentifyAsync runs IdentifyContext in the background.
func (d *Database) IdentifyAsync(ctx context.Context, query []minutia.Minutia, maxResults int) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.results, f.err = d.IdentifyContext(ctx, query, maxResults)
	}()
	return f
}
