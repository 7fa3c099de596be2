package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces outbound commands to the same device by at least its
// interval. Devices are keyed by IP. A nil Limiter, or one with an interval
// <= 0, never waits.
type Limiter struct {
	minInterval time.Duration
	devices     sync.Map // map[string]*deviceLimiter
}

type deviceLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
}

func New(interval time.Duration) *Limiter {
	return &Limiter{minInterval: interval}
}

// Wait blocks until it is safe to send a command to the device. The interval
// is measured from the start of the previous command to the start of the next
// one, so concurrent callers for the same device are queued.
func (l *Limiter) Wait(ctx context.Context, device string) error {
	if l == nil || l.minInterval <= 0 {
		return nil
	}

	dl := l.deviceLimiter(device)
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if elapsed := time.Since(dl.lastCall); elapsed < l.minInterval {
		timer := time.NewTimer(l.minInterval - elapsed)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	// Update before releasing the lock so the next waiter sees this call
	dl.lastCall = time.Now()
	return nil
}

func (l *Limiter) deviceLimiter(device string) *deviceLimiter {
	if dl, ok := l.devices.Load(device); ok {
		return dl.(*deviceLimiter)
	}
	actual, _ := l.devices.LoadOrStore(device, &deviceLimiter{})
	return actual.(*deviceLimiter)
}
