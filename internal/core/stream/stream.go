package stream

import (
	"context"
	"sync"
	"time"
)

// Debounce forwards a value only after the window elapses with no newer value.
// Within a burst only the last value survives. A pending value is flushed when
// the input closes.
func Debounce[T any](ctx context.Context, in <-chan T, window time.Duration) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var pending T
		armed := false

		timer := time.NewTimer(window)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case v, ok := <-in:
				if !ok {
					// Flush the pending value before closing.
					if armed {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				if armed && !timer.Stop() {
					<-timer.C
				}
				pending = v
				armed = true
				timer.Reset(window)

			case <-timer.C:
				if armed {
					armed = false
					select {
					case out <- pending:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

// DistinctUntilChanged suppresses a value equal to its immediate predecessor.
func DistinctUntilChanged[T comparable](ctx context.Context, in <-chan T) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var last T
		seen := false

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				if seen && v == last {
					continue
				}
				last = v
				seen = true
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Tap invokes fn for every value before forwarding it unchanged.
func Tap[T any](ctx context.Context, in <-chan T, fn func(T)) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				fn(v)
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Outcome carries a projection's result alongside the input that produced it.
type Outcome[T, R any] struct {
	// In is the input value the projection ran with.
	In T

	// Value is the projection's result. Zero when Err is set.
	Value R

	// Err is the projection failure, if any.
	Err error
}

// SwitchMap starts an asynchronous projection for each input value, cancelling
// the in-flight projection whenever a newer value arrives. Only the most
// recent projection's outcome is delivered; abandoned projections never emit.
// When the input closes the final in-flight projection is allowed to deliver
// before the output closes.
func SwitchMap[T, R any](
	ctx context.Context, in <-chan T, project func(context.Context, T) (R, error),
) <-chan Outcome[T, R] {
	out := make(chan Outcome[T, R])

	go func() {
		defer close(out)

		var cancel context.CancelFunc
		var wg sync.WaitGroup

		for {
			select {
			case <-ctx.Done():
				if cancel != nil {
					cancel()
				}
				wg.Wait()
				return

			case v, ok := <-in:
				if !ok {
					// Drain the last projection, then release its context.
					wg.Wait()
					if cancel != nil {
						cancel()
					}
					return
				}

				// A newer value abandons the in-flight projection.
				if cancel != nil {
					cancel()
				}
				childCtx, childCancel := context.WithCancel(ctx)
				cancel = childCancel

				wg.Add(1)
				go func() {
					defer wg.Done()

					value, err := project(childCtx, v)
					if childCtx.Err() != nil {
						return
					}
					select {
					case out <- Outcome[T, R]{In: v, Value: value, Err: err}:
					case <-childCtx.Done():
					}
				}()
			}
		}
	}()

	return out
}
