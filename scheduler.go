package weft

import "runtime"

// After this many consecutive scans with nothing runnable, the scheduler
// briefly yields its OS thread so host goroutines keep making progress.
const idleYieldInterval = 64

// kernelThreadMain is the entry point of a core's kernel thread. It
// wires the goroutine to an OS thread, pins that thread to its core and
// runs the scheduler loop until Destroy. The locked thread is discarded
// on exit.
func kernelThreadMain(coreID int) {
	defer kernelThreads.Done()
	runtime.LockOSThread()
	pinToCore(coreID)
	cores[coreID].schedulerMainLoop()
}

// schedulerMainLoop scans the core's slots round-robin from the one
// after the last dispatch. A slot is selected when its occupancy bit is
// set and its wakeup time has passed; the loop switches into it and
// regains control when the thread suspends or exits. A full scan with
// no selection is an idle pass.
func (core *coreState) schedulerMainLoop() {
	idlePasses := 0
	for {
		occupied := unpackMaskAndCount(core.occupiedAndCount.Load()).Occupied
		now := rdtsc()
		dispatched := false
		for i := 1; i <= MaxThreadsPerCore; i++ {
			slot := (core.lastDispatched + i) % MaxThreadsPerCore
			if occupied&(1<<slot) == 0 {
				continue
			}
			s := &core.activeList[slot]
			if s.wakeupTimeInCycles.Load() > now {
				continue
			}
			// Mark the thread blocked while it runs: it must not be
			// re-selected, and a Signal landing now is at worst a
			// spurious wakeup at its next suspension.
			s.wakeupTimeInCycles.Store(blockedForever)
			core.lastDispatched = slot
			contextSwitch(&core.park, &s.park)
			dispatched = true
			break
		}
		if dispatched {
			idlePasses = 0
			continue
		}
		if shuttingDown.Load() {
			core.retire()
			return
		}
		idlePasses++
		if idlePasses%idleYieldInterval == 0 {
			runtime.Gosched()
		}
	}
}

// retire delivers the nil-invocation token to every free slot's worker
// goroutine. Occupied slots belong to threads still blocked in user
// code; their goroutines stay parked.
func (core *coreState) retire() {
	occupied := unpackMaskAndCount(core.occupiedAndCount.Load()).Occupied
	for i := range core.activeList {
		if occupied&(1<<i) != 0 {
			continue
		}
		core.activeList[i].park.unpark()
	}
}
