package weft

import (
	"sync"
	"sync/atomic"
)

// SpinLock is a busy-wait mutual exclusion lock that yields the core
// between acquisition attempts. It is not recursive and records no
// owner. The zero value is an unlocked SpinLock.
type SpinLock struct {
	state atomic.Uint32
}

var _ sync.Locker = (*SpinLock)(nil)

// Lock acquires the lock, yielding between failed attempts so the
// holder can run.
func (l *SpinLock) Lock() {
	for !l.state.CompareAndSwap(0, 1) {
		Yield()
	}
}

// TryLock makes a single acquisition attempt.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock. Releasing an unheld SpinLock panics.
func (l *SpinLock) Unlock() {
	if l.state.Swap(0) == 0 {
		panic("weft: Unlock of unheld SpinLock")
	}
}
