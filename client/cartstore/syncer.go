package cartstore

import (
	"log"
	"sync"
)

// Syncer is the background sync outbox. Mutations enqueue cart snapshots
// without blocking; a single worker pushes them to the server one at a
// time, so two rapid mutations can never race each other on the wire.
// Pending snapshots coalesce to the newest one, because sync is a full
// replace and intermediate states carry no information.
//
// Failures are logged and swallowed: the local store stays authoritative
// for the session and the next successful sync reconciles.
type Syncer struct {
	api *APIClient

	mu      sync.Mutex
	pending *snapshot
	kick    chan struct{}

	stopOnce sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

type snapshot struct {
	guestID string
	items   []Item
}

func NewSyncer(api *APIClient) *Syncer {
	s := &Syncer{
		api:     api,
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// Enqueue records the latest cart snapshot for delivery. Never blocks.
func (s *Syncer) Enqueue(guestID string, items []Item) {
	s.mu.Lock()
	s.pending = &snapshot{guestID: guestID, items: items}
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Stop delivers any pending snapshot and shuts the worker down.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

func (s *Syncer) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.kick:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

// flush delivers pending snapshots until none remain. New snapshots
// enqueued mid-delivery are picked up on the next loop iteration.
func (s *Syncer) flush() {
	for {
		s.mu.Lock()
		snap := s.pending
		s.pending = nil
		s.mu.Unlock()

		if snap == nil {
			return
		}

		if err := s.api.SyncCart(snap.guestID, snap.items); err != nil {
			// Best effort only. Local state stays authoritative.
			log.Printf("⚠️ Cart sync failed: %v", err)
			return
		}
	}
}
