package weft

import "math/bits"

// CreateThread places a new invocation of fn in a free slot on the given
// core and marks it runnable. It returns NullThread, with no side
// effects, when all of the core's slots are occupied. The slot claim is
// a compare-and-swap of the whole occupancy word, so creation is
// lock-free from any goroutine.
func CreateThread(coreID int, fn func()) ThreadID {
	if !initialized {
		panic("weft: CreateThread before Init")
	}
	if coreID < 0 || coreID >= numCores {
		panic("weft: core out of range")
	}
	if fn == nil {
		panic("weft: CreateThread with nil function")
	}
	core := cores[coreID]
	var slot int
	for {
		old := core.occupiedAndCount.Load()
		mc := unpackMaskAndCount(old)
		if mc.NumOccupied == MaxThreadsPerCore {
			return NullThread
		}
		slot = bits.TrailingZeros64(^mc.Occupied & occupiedMask)
		mc.Occupied |= 1 << slot
		mc.NumOccupied++
		if core.occupiedAndCount.CompareAndSwap(old, packMaskAndCount(mc)) {
			break
		}
	}
	s := &core.activeList[slot]
	s.task = fn
	generation := s.generation.Add(1)
	// Publish: the scheduler only dispatches after observing this store,
	// which orders it after the task write above.
	s.wakeupTimeInCycles.Store(unblocked)
	return ThreadID{context: s, generation: generation}
}

// CreateThreadWithArg is CreateThread for a function taking one
// argument, bound at creation time.
func CreateThreadWithArg[T any](coreID int, fn func(T), arg T) ThreadID {
	if fn == nil {
		panic("weft: CreateThread with nil function")
	}
	return CreateThread(coreID, func() { fn(arg) })
}

// Join blocks the caller until the thread identified by id has
// terminated. A ThreadID whose generation no longer matches the slot is
// already terminated and returns immediately.
func Join(id ThreadID) {
	s := id.context
	s.joinLock.Lock()
	for s.generation.Load() == id.generation {
		s.joinCV.Wait(&s.joinLock)
	}
	s.joinLock.Unlock()
}

// runLoop is the slot's trampoline. The worker goroutine parks here
// between generations; each dispatch token either carries a fresh
// invocation or, once the runtime is shutting down, the nil sentinel
// that retires the goroutine.
func (s *ThreadContext) runLoop(core *coreState) {
	for {
		s.park.park()
		task := s.task
		if task == nil {
			return
		}
		s.task = nil
		task()
		s.finish(core)
		core.park.unpark()
	}
}

// finish runs after the invocation returns: kill the ThreadID, wake
// joiners, then free the slot. The generation bump precedes the
// notification so a woken joiner always observes the mismatch, and the
// occupancy bit is cleared only after both.
func (s *ThreadContext) finish(core *coreState) {
	s.joinLock.Lock()
	s.generation.Add(1)
	s.joinCV.NotifyAll()
	s.joinLock.Unlock()
	// A Signal to the thread while it ran may have left the wakeup word at
	// 0; a free slot must read as blocked until CreateThread publishes.
	s.wakeupTimeInCycles.Store(blockedForever)
	core.clearSlot(s.slot)
}
