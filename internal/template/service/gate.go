package service

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// saveGate serializes persistence operations per template ID: a save must
// finish before the next save of the same template starts, and a load of a
// template waits for its outstanding save so it never reads stale state.
// Different templates do not block each other.
type saveGate struct {
	mu    sync.Mutex
	locks map[snowflake.ID]*gateEntry
}

type gateEntry struct {
	mu   sync.Mutex
	refs int
}

func newSaveGate() *saveGate {
	return &saveGate{locks: make(map[snowflake.ID]*gateEntry)}
}

// acquire blocks until the gate for id is free and returns the release func.
func (g *saveGate) acquire(id snowflake.ID) func() {
	g.mu.Lock()
	entry := g.locks[id]
	if entry == nil {
		entry = &gateEntry{}
		g.locks[id] = entry
	}
	entry.refs++
	g.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		g.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(g.locks, id)
		}
		g.mu.Unlock()
	}
}
