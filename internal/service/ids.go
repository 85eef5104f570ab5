package service

import (
	"sync"
	"time"
)

// IDGenerator issues millisecond timestamp ids that strictly increase within
// one process. Two processes sharing a store may still collide; the session
// repository keeps both records and lookups return the later one.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns now in Unix milliseconds, bumped past the last issued id
func (g *IDGenerator) Next(now time.Time) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
