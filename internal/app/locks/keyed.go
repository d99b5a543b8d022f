package locks

import "sync"

// Keyed provides a mutex per string key. The booking flow holds a listing's
// lock across its read-check-write sequence so two concurrent requests for
// the same listing cannot both observe the dates as free.
//
// Entries are never evicted; the key space is bounded by the number of
// listings, which is small enough to keep resident.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

func (k *Keyed) Lock(key string) {
	k.get(key).Lock()
}

func (k *Keyed) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *Keyed) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
