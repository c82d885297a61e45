package backend

import (
	"sync"
	"time"
)

// reportGate spaces change reports at least one settle window apart, so an
// editor that saves in a burst costs the menu a single reload.
type reportGate struct {
	window time.Duration
	now    func() time.Time
	sleep  func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

func newReportGate(window time.Duration) *reportGate {
	if window <= 0 {
		return &reportGate{}
	}
	return &reportGate{window: window, now: time.Now, sleep: time.Sleep}
}

// pass blocks until the window since the previous report has elapsed and
// returns how long it waited.
func (g *reportGate) pass() time.Duration {
	if g == nil || g.window <= 0 {
		return 0
	}
	var waited time.Duration
	for {
		g.mu.Lock()
		wait := g.next.Sub(g.now())
		if wait <= 0 {
			g.next = g.now().Add(g.window)
			g.mu.Unlock()
			return waited
		}
		g.mu.Unlock()
		if wait > g.window {
			wait = g.window
		}
		g.sleep(wait)
		waited += wait
	}
}
