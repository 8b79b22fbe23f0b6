package gallery

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Monitor keeps the cached listing warm by refreshing it on a fixed interval, so page
// requests rarely see a stale snapshot.
type Monitor struct {
	svc      *Service
	interval time.Duration
	stopCh   chan struct{}
	done     chan struct{}
}

// NewMonitor creates a refresh monitor. It does nothing until Start is called.
func NewMonitor(svc *Service, interval time.Duration) *Monitor {
	return &Monitor{svc: svc, interval: interval}
}

// Start runs the heartbeat in its own goroutine. Calling Start twice is a no-op.
// Under the server-only policy there is no cache to keep warm and Start returns false.
func (m *Monitor) Start() bool {
	if m.stopCh != nil {
		return true
	}
	if m.svc.Policy() != PolicyStaleWhileRevalidate || m.interval <= 0 {
		return false
	}
	m.stopCh = make(chan struct{})
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		log.Infof("[GalleryRefresh] Monitor started (interval: %s)", m.interval)

		// run once immediately
		m.runOnce()

		for {
			select {
			case <-m.stopCh:
				log.Info("[GalleryRefresh] Monitor stopped")
				return
			case <-ticker.C:
				m.runOnce()
			}
		}
	}()
	return true
}

// Stop ends the heartbeat and waits for a running refresh to finish.
func (m *Monitor) Stop() {
	if m.stopCh == nil {
		return
	}
	close(m.stopCh)
	<-m.done
	m.stopCh = nil
}

func (m *Monitor) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	defer cancel()
	start := time.Now()
	listing := m.svc.Refresh(ctx)
	log.Debugf("[GalleryRefresh] %d images listed in %s", len(listing.Images), time.Since(start))
}
