package weft

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// MaxThreadsPerCore is the number of thread slots on each core. 56 slots
// leave room for the redundant occupancy count in the top bits of the
// packed occupancy word.
const MaxThreadsPerCore = 56

const occupiedMask = 1<<MaxThreadsPerCore - 1

// Wakeup word sentinels. Any other value is a cycle-counter deadline.
const (
	unblocked      uint64 = 0
	blockedForever uint64 = math.MaxUint64
)

// ThreadContext is one reusable thread slot. Its worker goroutine is
// spawned at Init and reused across generations, so the slot keeps one
// execution stack for the runtime's lifetime; that stack is a goroutine
// stack, which the Go runtime may grow and move.
type ThreadContext struct {
	// wakeupTimeInCycles is written by other cores (Signal), so it gets a
	// cache line to itself.
	wakeupTimeInCycles atomic.Uint64
	_                  [cacheLinePadSize - unsafe.Sizeof(atomic.Uint64{})]byte

	// park is the slot goroutine's suspension point, the saved execution
	// state between runs.
	park parker

	// generation is bumped when the slot is handed out and again when the
	// invocation returns, so a ThreadID held across termination goes stale.
	generation atomic.Uint64

	// task holds the thread invocation between CreateThread and the first
	// dispatch. nil is the retirement sentinel delivered at Destroy.
	task func()

	joinLock SpinLock
	joinCV   ConditionVariable

	coreID int
	slot   int
}

// ThreadID identifies a user thread across slot reuse.
type ThreadID struct {
	context    *ThreadContext
	generation uint64
}

// NullThread is returned by CreateThread when every slot on the target
// core is occupied.
var NullThread ThreadID

// MaskAndCount is the unpacked form of a core's occupancy word.
type MaskAndCount struct {
	Occupied    uint64
	NumOccupied int
}

func unpackMaskAndCount(w uint64) MaskAndCount {
	return MaskAndCount{Occupied: w & occupiedMask, NumOccupied: int(w >> MaxThreadsPerCore)}
}

func packMaskAndCount(mc MaskAndCount) uint64 {
	return mc.Occupied&occupiedMask | uint64(mc.NumOccupied)<<MaxThreadsPerCore
}

// coreState is everything owned by one kernel thread. Only that kernel
// thread touches activeList slots or switches into them; other
// goroutines are limited to atomic operations on the occupancy word and
// on slots' wakeup words.
type coreState struct {
	occupiedAndCount atomic.Uint64
	_                [cacheLinePadSize - unsafe.Sizeof(atomic.Uint64{})]byte

	activeList *[MaxThreadsPerCore]ThreadContext

	// park is the scheduler loop's own suspension point, the analog of
	// the kernel thread's saved stack.
	park parker

	lastDispatched int
}

func (core *coreState) clearSlot(slot int) {
	for {
		old := core.occupiedAndCount.Load()
		mc := unpackMaskAndCount(old)
		mc.Occupied &^= 1 << slot
		mc.NumOccupied--
		if core.occupiedAndCount.CompareAndSwap(old, packMaskAndCount(mc)) {
			return
		}
	}
}

// OccupiedAndCount returns the occupancy word of the given core. Tests
// and load balancers use it to observe liveness; the count is kept
// consistent with the mask under every update.
func OccupiedAndCount(coreID int) MaskAndCount {
	if coreID < 0 || coreID >= len(cores) {
		panic("weft: core out of range")
	}
	return unpackMaskAndCount(cores[coreID].occupiedAndCount.Load())
}

type gMap map[unsafe.Pointer]*ThreadContext

// gContexts maps worker goroutines to their slots. It is built while
// Init spawns the workers, published once, and read-only afterwards.
var gContexts atomic.Pointer[gMap]

// current returns the slot of the calling user thread, or nil when the
// caller is not a user thread.
func current() *ThreadContext {
	m := gContexts.Load()
	if m == nil {
		return nil
	}
	return (*m)[GetG()]
}

func mustCurrent(op string) *ThreadContext {
	s := current()
	if s == nil {
		panic("weft: " + op + " called outside a user thread")
	}
	return s
}
