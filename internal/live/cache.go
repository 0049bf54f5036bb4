package live

import "sync"

// StatusCache maps entity ids to the last status that was
// successfully notified. Detectors consult it to suppress duplicate
// notifications and prune it when entities leave the watched set, so
// a later re-entry into the same status notifies again.
type StatusCache struct {
	mu   sync.Mutex
	last map[string]string
}

func NewStatusCache() *StatusCache {
	return &StatusCache{last: make(map[string]string)}
}

// Changed reports whether status differs from the last notified
// status for id, or id has never been notified.
func (c *StatusCache) Changed(id, status string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.last[id]
	return !ok || prev != status
}

// Mark records status as the last notified status for id. Called
// only after the notification was actually delivered, so a failed
// dispatch is retried naturally on the next tick.
func (c *StatusCache) Mark(id, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[id] = status
}

// Retain drops every entry whose id is not in live.
func (c *StatusCache) Retain(live map[string]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.last {
		if _, ok := live[id]; !ok {
			delete(c.last, id)
		}
	}
}

// Len returns the number of tracked entities.
func (c *StatusCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}
