package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// OwnerGuard serializes planner turns per owner: a conversation row and the
// conflict check-then-commit step must never be raced by two requests from
// the same user.
type OwnerGuard struct {
	mu     sync.Mutex
	guards *cache.Cache
}

func NewOwnerGuard() *OwnerGuard {
	// No expiration: a guard must never vanish while a goroutine holds
	// it. A mutex per active owner is small enough to keep around.
	return &OwnerGuard{
		guards: cache.New(cache.NoExpiration, 0),
	}
}

// Acquire locks the owner's guard and returns the release function.
func (g *OwnerGuard) Acquire(ownerId string) func() {
	g.mu.Lock()
	var m *sync.Mutex
	if x, found := g.guards.Get(ownerId); found {
		m = x.(*sync.Mutex)
	} else {
		m = &sync.Mutex{}
		g.guards.Set(ownerId, m, cache.NoExpiration)
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}
