package chain

import (
	"context"
	"fmt"
	"time"
)

// retryRPC runs one account-resolution RPC call, retrying failures with
// exponential backoff starting at baseDelay. After maxRetries additional
// attempts the last error is returned wrapped with the attempt count.
// Cancelling the context ends the backoff wait immediately.
func retryRPC(ctx context.Context, maxRetries int, baseDelay time.Duration, call func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := call(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			if attempt == 0 {
				return err
			}
			return fmt.Errorf("after %d attempts: %w", attempt+1, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
