package sync

import (
	base "sync"
)

const ringPointsPerStripe = 200

// StripedLock consistently maps a key space onto a bounded set of RWMutexes.
// Distinct keys proceed concurrently when they land on different stripes,
// while any one key is always serialized on the same mutex.
type StripedLock struct {
	locks []base.RWMutex
	ring  *ring
}

// NewStripedLock returns a StripedLock with a static number of stripes.
func NewStripedLock(stripes uint) *StripedLock {
	return &StripedLock{
		locks: make([]base.RWMutex, stripes),
		ring:  newRing(stripes, ringPointsPerStripe),
	}
}

// Get gets the lock for a key
func (l *StripedLock) Get(key []byte) *base.RWMutex {
	return &l.locks[l.ring.locate(key)]
}
