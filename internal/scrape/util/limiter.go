package util

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum interval between outbound requests
// (60s / requests-per-minute) plus a small random jitter so request timing
// doesn't look mechanical to the scraped sites.
type Limiter struct {
	lim    *rate.Limiter
	jitter time.Duration
	sleep  func(context.Context, time.Duration) error
}

func NewLimiter(requestsPerMinute int, delaySeconds float64) *Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &Limiter{
		lim:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		jitter: time.Duration(delaySeconds * float64(time.Second)),
		sleep:  sleepCtx,
	}
}

// WaitIfNeeded blocks until the minimum interval since the previous request
// has elapsed. Jitter is only added when a wait was actually required.
func (l *Limiter) WaitIfNeeded(ctx context.Context) error {
	res := l.lim.Reserve()
	if !res.OK() {
		return nil
	}
	d := res.Delay()
	if d <= 0 {
		return nil
	}
	if l.jitter > 0 {
		d += time.Duration(rand.Int64N(int64(l.jitter)))
	}
	return l.sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
