package weft

import (
	"runtime"
	"time"
)

func (s *ThreadContext) switchToScheduler() {
	contextSwitch(&s.park, &cores[s.coreID].park)
}

// Yield offers the core to the other runnable threads on it. Every
// runnable slot is given a chance before the yielder runs again. Called
// from a goroutine that is not a user thread, it degrades to
// runtime.Gosched so host goroutines can spin on a SpinLock.
func Yield() {
	s := current()
	if s == nil {
		runtime.Gosched()
		return
	}
	s.wakeupTimeInCycles.Store(unblocked)
	s.switchToScheduler()
}

// Sleep suspends the calling thread for at least d. The deadline is a
// cycle count, checked by the core's scheduler on every scan.
func Sleep(d time.Duration) {
	s := mustCurrent("Sleep")
	if d <= 0 {
		s.wakeupTimeInCycles.Store(unblocked)
	} else {
		s.wakeupTimeInCycles.Store(rdtsc() + FromNanoseconds(uint64(d)))
	}
	s.switchToScheduler()
}

// Block suspends the calling thread until another thread calls Signal
// on its ThreadID. The scheduler already marked the running thread
// blocked-forever at dispatch; writing the sentinel again here would
// lose a Signal delivered between the caller's last store and this
// call.
func Block() {
	mustCurrent("Block").switchToScheduler()
}

// Signal makes the identified thread runnable. It is an unconditional
// store: signalling a thread that is not blocked keeps it runnable, and
// the generation is deliberately not validated, so a ThreadID held past
// termination writes into whatever now occupies the slot. Hold a live
// ThreadID.
func Signal(id ThreadID) {
	id.context.wakeupTimeInCycles.Store(unblocked)
}
