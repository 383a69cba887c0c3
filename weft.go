// Package weft is a user-level M:N threading runtime for
// microsecond-scale task scheduling. It multiplexes lightweight,
// cooperatively scheduled user threads onto one dedicated kernel
// scheduler per core; threads are bound to the core they were created
// on and suspend only at explicit suspension points (Yield, Sleep,
// Block, lock acquisition, condition waits, Join).
//
// A compute-bound thread that never reaches a suspension point
// monopolizes its core. That is the price of dispatch latencies in the
// microsecond range, not a defect.
package weft

import (
	"sync"
	"sync/atomic"
)

// Defaults applied by Init before option parsing. Two cores keeps the
// runtime usable on small machines and in tests.
const (
	DefaultCores     = 2
	DefaultStackSize = 1 << 20
)

var (
	numCores  = DefaultCores
	stackSize = DefaultStackSize

	cores        []*coreState
	initialized  bool
	shuttingDown atomic.Bool

	kernelThreads sync.WaitGroup
)

// Init starts the runtime: it parses recognized options out of *argv
// (which may be nil), allocates the per-core slot tables, spawns the
// worker goroutines backing every slot, and starts one pinned kernel
// scheduler per core. It returns once all of them are live.
//
// Calling Init twice without an intervening Destroy panics.
func Init(argv *[]string) {
	if initialized {
		panic("weft: Init called twice without an intervening Destroy")
	}
	numCores, stackSize = DefaultCores, DefaultStackSize
	if argv != nil {
		*argv = parseOptions(*argv)
	}
	calibrateCycles()

	shuttingDown.Store(false)
	cores = make([]*coreState, numCores)
	registry := make(gMap, numCores*MaxThreadsPerCore)
	var (
		registryLock sync.Mutex
		live         sync.WaitGroup
	)
	for c := range cores {
		core := &coreState{
			activeList: new([MaxThreadsPerCore]ThreadContext),
			park:       newParker(),
		}
		cores[c] = core
		for i := range core.activeList {
			s := &core.activeList[i]
			s.coreID = c
			s.slot = i
			s.park = newParker()
			s.wakeupTimeInCycles.Store(blockedForever)
			live.Add(1)
			go func() {
				registryLock.Lock()
				registry[GetG()] = s
				registryLock.Unlock()
				live.Done()
				s.runLoop(core)
			}()
		}
	}
	live.Wait()
	gContexts.Store(&registry)
	for c := range cores {
		kernelThreads.Add(1)
		go kernelThreadMain(c)
	}
	initialized = true
}

// Destroy tears the runtime down: each kernel scheduler exits at its
// next idle point, free slots' worker goroutines are retired, and all
// allocations are released. A thread still blocked in user code at that
// point stays parked forever; finish all threads before calling Destroy.
func Destroy() {
	if !initialized {
		panic("weft: Destroy without a matching Init")
	}
	shuttingDown.Store(true)
	kernelThreads.Wait()
	gContexts.Store(nil)
	cores = nil
	initialized = false
}

// NumCores reports the number of scheduler cores configured at Init.
func NumCores() int { return numCores }

// StackSize reports the configured per-thread stack size in bytes. Slot
// goroutine stacks are managed by the Go runtime, so the value is an
// accepted configuration surface rather than a hard allocation size.
func StackSize() int { return stackSize }
