// Package keymutex provides mutual exclusion scoped to a key, e.g. a room id.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyMutex hands out one mutex per key. Entries are dropped once no goroutine
// holds or waits for them, so the map only grows with concurrent keys.
type KeyMutex[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

// New creates an empty KeyMutex.
func New[K comparable]() *KeyMutex[K] {
	return &KeyMutex[K]{entries: make(map[K]*entry)}
}

// Lock blocks until the key is free and returns the matching unlock func.
func (k *KeyMutex[K]) Lock(key K) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len reports how many keys are currently held or awaited.
func (k *KeyMutex[K]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
