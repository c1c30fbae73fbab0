package service

import "sync"

// auctionLocks serializes bid admission per auction within this
// process. Cross-process exclusion comes from the row lock taken inside
// the bid transaction; this keeps local contention off the database.
type auctionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newAuctionLocks() *auctionLocks {
	return &auctionLocks{locks: make(map[int64]*sync.Mutex)}
}

func (a *auctionLocks) Lock(auctionID int64) *sync.Mutex {
	a.mu.Lock()
	m, ok := a.locks[auctionID]
	if !ok {
		m = &sync.Mutex{}
		a.locks[auctionID] = m
	}
	a.mu.Unlock()

	m.Lock()
	return m
}
