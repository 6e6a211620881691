package service

import (
	"sync"

	id "mortgageledger/pkg/domain"
)

// keyedLocks serializes writes per mortgage. Locks are created lazily and
// kept for the aggregate's lifetime; the footprint is one mutex per mortgage
// ever written, which is negligible next to the aggregate itself.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[id.MortgageID]*sync.Mutex
}

// lock acquires the mortgage's mutex and returns its release function.
func (k *keyedLocks) lock(mortgageID id.MortgageID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[id.MortgageID]*sync.Mutex)
	}
	l, ok := k.locks[mortgageID]
	if !ok {
		l = &sync.Mutex{}
		k.locks[mortgageID] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
