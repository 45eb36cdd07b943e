package debug

// Runtime metrics logger, started only with --debug. Emits goroutine count,
// stack and heap usage and the process resident size at a fixed interval so
// growth during long viewing sessions can be traced to Go or native memory.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// StartRuntimeLogger logs runtime stats every interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, err := residentBytes()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: resident size unavailable", "error", err)
				rssErrLogged = true
			}
			logger.Info("runtime",
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.String("stack_inuse", humanize.Bytes(ms.StackInuse)),
				slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
				slog.String("heap_sys", humanize.Bytes(ms.HeapSys)),
				slog.String("next_gc", humanize.Bytes(ms.NextGC)),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
				slog.String("rss", humanize.Bytes(rss)),
			)
		}
	}()
}
