package supply

import (
	"sync"
	"time"

	"stock/entities"
)

// PendingTracker remembers outstanding supply requests by correlation id
// so the reconciler can reject replies it never asked for. Entries expire
// after ttl; a ttl of zero means entries never expire.
type PendingTracker struct {
	lock sync.Mutex
	ttl  time.Duration

	requests map[string]entities.PendingSupplyRequest

	now func() time.Time
}

func NewPendingTracker(ttl time.Duration) *PendingTracker {
	return &PendingTracker{
		ttl:      ttl,
		requests: map[string]entities.PendingSupplyRequest{},
		now:      time.Now,
	}
}

func (t *PendingTracker) Track(correlationID, itemID string, requestedQuantity int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.requests[correlationID] = entities.PendingSupplyRequest{
		CorrelationID:     correlationID,
		ItemID:            itemID,
		RequestedQuantity: requestedQuantity,
		SentAt:            t.now(),
	}
}

// Resolve removes and returns the pending request for correlationID.
// Expired entries are treated as absent.
func (t *PendingTracker) Resolve(correlationID string) (entities.PendingSupplyRequest, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	pending, ok := t.requests[correlationID]
	if !ok {
		return entities.PendingSupplyRequest{}, false
	}
	delete(t.requests, correlationID)

	if t.expired(pending) {
		return entities.PendingSupplyRequest{}, false
	}
	return pending, true
}

func (t *PendingTracker) Forget(correlationID string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	delete(t.requests, correlationID)
}

func (t *PendingTracker) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.requests)
}

// Sweep drops expired entries; meant to be called periodically.
func (t *PendingTracker) Sweep() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	swept := 0
	for correlationID, pending := range t.requests {
		if t.expired(pending) {
			delete(t.requests, correlationID)
			swept++
		}
	}
	return swept
}

// Run sweeps expired entries on an interval until done is closed.
// A non-positive interval disables sweeping; with a zero ttl entries
// never expire, so there is nothing to sweep.
func (t *PendingTracker) Run(done <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}

func (t *PendingTracker) expired(pending entities.PendingSupplyRequest) bool {
	return t.ttl > 0 && t.now().Sub(pending.SentAt) > t.ttl
}
