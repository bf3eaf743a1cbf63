// README: Scheduler invoking the tick once per interval while tracking is on.
package tracking

import (
	"context"
	"log/slog"
	"time"
)

// RunScheduler waits for Start, then ticks immediately and once per interval
// until tracking is cleared by Stop, Reset or a denied payment. It returns
// when ctx is cancelled.
func (s *Service) RunScheduler(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
		s.track(ctx)
	}
}

func (s *Service) track(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		batch := s.Tick(ctx)
		if !batch.Tracking {
			if batch.Halted() {
				slog.Warn("tracking halted by denied payment", "run", batch.RunID.String(), "tick", batch.Tick)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
