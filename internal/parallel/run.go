package parallel

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// PanicError is returned by Run when a worker panics.
type PanicError struct {
	Index int
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.Index, e.Value)
}

// Run calls fn for every index in [0, n) on its own goroutine and waits for
// all of them. The context passed to fn is canceled as soon as one call
// fails. The first error is returned; a panic becomes a *PanicError.
func Run(ctx context.Context, n int, fn func(ctx context.Context, index int) error) error {
	if n <= 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Index: i, Value: r, Stack: debug.Stack()}
				}
			}()
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
