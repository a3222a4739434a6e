package core

import "context"

// Runner executes n independent tasks. Tasks write to disjoint outputs, so a
// runner may execute them in any order and on any number of goroutines. The
// first task error cancels the remaining tasks and is returned.
type Runner interface {
	ForEach(ctx context.Context, n int, task func(ctx context.Context, i int) error) error
}

// SerialRunner runs tasks one after another on the calling goroutine
type SerialRunner struct{}

func (SerialRunner) ForEach(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx, i); err != nil {
			return err
		}
	}
	return nil
}
