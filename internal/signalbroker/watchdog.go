// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/fionatony/aikey/internal/ctxlog"
)

// Watch monitors sigCh until it is closed or ctx is done.
// The first signal calls stop, which should let in-flight requests finish.
// The second signal of a type already seen calls cancel and closes sigCh.
// Either func may be nil.
func Watch(ctx context.Context, sigCh chan os.Signal, stop, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})
	stopped := false

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, seen := sigMap[sig]; seen {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
				signal.Stop(sigCh)
				close(sigCh)

				if cancel != nil {
					cancel()
				}

				return
			}

			sigMap[sig] = struct{}{}

			if stopped {
				ctxlog.Info(ctx, "watchdog", "detail", "already stopping", "signal", sig.String())
				continue
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal, stopping gracefully", "signal", sig.String())

			stopped = true

			if stop != nil {
				stop()
			}
		}
	}
}
