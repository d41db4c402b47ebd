package probe

import (
	"context"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Probe is the interface that all authentication probes must satisfy.
// Run never returns an error: transport failures are logged and the probe
// simply records nothing.
type Probe interface {
	// Run executes the probe and appends any findings to sink
	Run(ctx context.Context, sink *finding.Sink)

	// Name returns a short identifier used in logs (e.g., "serial", "api")
	Name() string
}

// Pacer enforces a fixed pause between the end of one attempt and the start
// of the next. It never adapts to the target.
type Pacer struct {
	limit   rate.Limit
	limiter *rate.Limiter
}

// NewPacer returns a pacer that waits delay after every completed attempt.
// A zero or negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{limit: limit, limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next attempt may start. The first attempt passes
// immediately.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Done marks the end of an attempt. The bucket restarts empty, so the next
// Wait blocks a full delay no matter how long the attempt took.
func (p *Pacer) Done() {
	p.limiter = rate.NewLimiter(p.limit, 1)
	p.limiter.Allow()
}

func loggerOrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}
