package gallerystate

import (
	"context"
	"sync"
	"time"
)

// FallbackRevealTimeout bounds how long the grid may stay hidden behind the skeleton.
const FallbackRevealTimeout = 1800 * time.Millisecond

// ReadyReason tells which side of the readiness race won
type ReadyReason int

const (
	ReadyLoaded ReadyReason = iota + 1
	ReadyTimeout
)

func (r ReadyReason) String() string {
	switch r {
	case ReadyLoaded:
		return "loaded"
	case ReadyTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// EagerCountForWidth maps a viewport width to the number of leading images loaded eagerly.
// Unknown widths (<= 0) use the narrow value.
func EagerCountForWidth(width int) int {
	switch {
	case width < 640:
		return 3
	case width < 1024:
		return 4
	default:
		return 6
	}
}

// LoadProgress counts settled eager images for one page. Every Reset starts a new generation;
// callbacks carrying an older generation are ignored.
type LoadProgress struct {
	mu         sync.Mutex
	generation uint64
	target     int
	settled    map[int]bool
	startedAt  time.Time
	timeout    time.Duration
	ready      chan struct{}
	closed     bool
}

// NewLoadProgress returns a tracker for eagerCount leading images out of pageImageCount.
func NewLoadProgress(eagerCount, pageImageCount int, timeout time.Duration, now time.Time) *LoadProgress {
	p := &LoadProgress{timeout: timeout}
	p.Reset(eagerCount, pageImageCount, now)
	return p
}

// Reset starts tracking a new page and returns its generation
func (p *LoadProgress) Reset(eagerCount, pageImageCount int, now time.Time) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.target = min(eagerCount, pageImageCount)
	if p.target < 0 {
		p.target = 0
	}
	p.settled = make(map[int]bool, p.target)
	p.startedAt = now
	p.ready = make(chan struct{})
	p.closed = false
	p.closeIfDoneLocked()
	return p.generation
}

// Generation identifies the page currently tracked
func (p *LoadProgress) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Target is min(eagerCount, pageImageCount)
func (p *LoadProgress) Target() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Loaded is the number of eager images that loaded or failed for good
func (p *LoadProgress) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.settled)
}

// IsEager reports whether indexOnPage is inside the eager window
func (p *LoadProgress) IsEager(indexOnPage int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return indexOnPage >= 0 && indexOnPage < p.target
}

// Settle records that the image at indexOnPage finished. It returns false for stale
// generations, non-eager indexes and repeated callbacks for the same index.
func (p *LoadProgress) Settle(generation uint64, indexOnPage int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation || indexOnPage < 0 || indexOnPage >= p.target || p.settled[indexOnPage] {
		return false
	}
	p.settled[indexOnPage] = true
	p.closeIfDoneLocked()
	return true
}

// Ready is the readiness gate: all eager images settled or the fallback timeout elapsed.
func (p *LoadProgress) Ready(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.settled) >= p.target || now.Sub(p.startedAt) >= p.timeout
}

// Await blocks until the gate opens for the current generation or ctx is done.
func (p *LoadProgress) Await(ctx context.Context, now time.Time) (ReadyReason, error) {
	p.mu.Lock()
	ready := p.ready
	remaining := p.timeout - now.Sub(p.startedAt)
	p.mu.Unlock()

	select {
	case <-ready:
		return ReadyLoaded, nil
	default:
	}
	if remaining <= 0 {
		return ReadyTimeout, nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ready:
		return ReadyLoaded, nil
	case <-timer.C:
		return ReadyTimeout, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *LoadProgress) closeIfDoneLocked() {
	if !p.closed && len(p.settled) >= p.target {
		close(p.ready)
		p.closed = true
	}
}
