package httpcache

import (
	"context"
	"sync"
	"time"
)

// hostLimiter spaces out requests to the same host.
type hostLimiter struct {
	mu    sync.Mutex
	next  map[string]time.Time
	delay time.Duration
}

func newHostLimiter(delay time.Duration) *hostLimiter {
	return &hostLimiter{next: make(map[string]time.Time), delay: delay}
}

// wait blocks until host may be contacted again or ctx is done.
func (l *hostLimiter) wait(ctx context.Context, host string) error {
	if l.delay <= 0 || host == "" {
		return nil
	}
	l.mu.Lock()
	now := time.Now()
	at := l.next[host]
	if at.Before(now) {
		at = now
	}
	l.next[host] = at.Add(l.delay)
	l.mu.Unlock()

	d := time.Until(at)
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
