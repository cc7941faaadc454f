package service

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// submitGuard collapses repeated submits carrying the same idempotency key. Concurrent calls
// share one execution; a successful result is replayed for ttl. Failures are not remembered so
// the user can correct the form and resubmit with the same key.
type submitGuard struct {
	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time

	mu   sync.Mutex
	done map[string]guardEntry
}

type guardEntry struct {
	value   interface{}
	expires time.Time
}

func newSubmitGuard(ttl time.Duration) *submitGuard {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &submitGuard{ttl: ttl, now: time.Now, done: make(map[string]guardEntry)}
}

// Do runs fn at most once per key within ttl. replayed is true when the value was produced
// by an earlier or concurrent call.
func (g *submitGuard) Do(key string, fn func() (interface{}, error)) (value interface{}, replayed bool, err error) {
	if key == "" {
		value, err = fn()
		return value, false, err
	}
	if v, ok := g.lookup(key); ok {
		return v, true, nil
	}
	executed := false
	value, err, _ = g.group.Do(key, func() (interface{}, error) {
		if v, ok := g.lookup(key); ok {
			return v, nil
		}
		executed = true
		v, err := fn()
		if err == nil {
			g.remember(key, v)
		}
		return v, err
	})
	return value, !executed, err
}

func (g *submitGuard) lookup(key string) (interface{}, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for k, e := range g.done {
		if now.After(e.expires) {
			delete(g.done, k)
		}
	}
	e, ok := g.done[key]
	return e.value, ok
}

func (g *submitGuard) remember(key string, value interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.done[key] = guardEntry{value: value, expires: g.now().Add(g.ttl)}
}
