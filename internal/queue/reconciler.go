package queue

import (
	"context"
	"log/slog"
	"time"
)

// runReconciler periodically resets stuck RUNNING items back to READY.
// A worker that dies mid-stage leaves its item RUNNING forever; this
// sweep is what lets another worker eventually pick it back up. Each
// pool runs one sweep alongside its runtimes — the reset is just an
// UPDATE WHERE, so concurrent sweeps from multiple pods are harmless.
func runReconciler(ctx context.Context, stopCh <-chan struct{}, driver *Driver, interval, threshold time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			n, err := driver.ResetStuck(ctx, threshold)
			if err != nil {
				slog.Error("stuck item sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Warn("reset stuck items to ready", "count", n)
			}
		}
	}
}
