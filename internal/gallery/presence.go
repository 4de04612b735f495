package gallery

import "sync"

// presenceKey identifies one guest match attempt: the event plus the
// fingerprint of the freshly extracted guest descriptor. The fingerprint is
// not a stable identity; the same guest submitting a different photo produces
// a new entry.
type presenceKey struct {
	eventID     string
	fingerprint string
}

// Presence tracks which guest identities have matched against which events.
// Entries live for the process lifetime; there is no expiry or removal.
type Presence struct {
	mu     sync.Mutex
	active map[presenceKey]struct{}
}

// NewPresence creates an empty presence tracker.
func NewPresence() *Presence {
	return &Presence{active: make(map[presenceKey]struct{})}
}

// Record marks the (event, fingerprint) pair active. Repeated records of the
// same pair collapse to one entry.
func (p *Presence) Record(eventID, fingerprint string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active[presenceKey{eventID: eventID, fingerprint: fingerprint}] = struct{}{}
}

// Count returns the number of distinct active records across all events.
func (p *Presence) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}
