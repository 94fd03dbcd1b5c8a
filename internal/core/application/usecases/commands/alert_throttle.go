package commands

import (
	"sync"
	"time"

	"procurement/internal/core/domain/model/kernel"
)

// DefaultAlertWindow is the minimum interval between two failure alerts
// for the same recurring template.
const DefaultAlertWindow = time.Hour

// AlertThrottle rate-limits failure alerts per recurring template, so a
// template failing on every scheduler tick produces one alert per window
// instead of one per minute.
//
// Safe for concurrent use.
type AlertThrottle struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	last   map[kernel.UUID]time.Time
}

// NewAlertThrottle creates a throttle with the given window.
// A non-positive window disables throttling: every alert passes.
func NewAlertThrottle(window time.Duration) *AlertThrottle {
	return &AlertThrottle{
		window: window,
		now:    time.Now,
		last:   make(map[kernel.UUID]time.Time),
	}
}

// ShouldAlert reports whether an alert for the given template may be sent
// now, and records the alert time when it may.
func (t *AlertThrottle) ShouldAlert(templateID kernel.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.last[templateID]; ok && t.window > 0 && now.Sub(last) < t.window {
		return false
	}

	t.last[templateID] = now
	return true
}
