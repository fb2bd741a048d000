package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ErrGaveUp is returned by [Poll] when the attempt budget runs out.
var ErrGaveUp = errors.New("gave up waiting")

// Poll calls probe immediately and then once per interval until it returns
// true, ctx is done, or attempts probes have failed.
//
// Poll blocks; callers run it on its own goroutine and post the continuation
// back onto a [Queue].
func Poll(ctx context.Context, interval time.Duration, attempts int, probe func() bool) error {
	if attempts <= 0 {
		attempts = 1
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for i := 0; i < attempts; i++ {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if probe() {
			return nil
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrGaveUp, attempts)
}
