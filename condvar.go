package weft

import "github.com/gammazero/deque"

// ConditionVariable is a FIFO wait queue tied to a SpinLock. The queue
// is guarded by that mutex: waiters enqueue while holding it, and
// notifiers must hold it across NotifyOne/NotifyAll. Spurious wakeups
// are permitted, so waiters loop on their predicate. The zero value is
// ready to use.
type ConditionVariable struct {
	waiters deque.Deque
}

// Wait atomically appends the caller to the wait queue, releases m,
// blocks, and reacquires m before returning. m must be held on entry.
// The enqueue precedes the release, so a notify issued by the next
// holder of m cannot be missed.
func (cv *ConditionVariable) Wait(m *SpinLock) {
	s := mustCurrent("ConditionVariable.Wait")
	cv.waiters.PushBack(ThreadID{context: s, generation: s.generation.Load()})
	m.Unlock()
	Block()
	m.Lock()
}

// NotifyOne wakes the head of the wait queue; a no-op when the queue is
// empty.
func (cv *ConditionVariable) NotifyOne() {
	if cv.waiters.Len() == 0 {
		return
	}
	Signal(cv.waiters.PopFront().(ThreadID))
}

// NotifyAll drains the wait queue, waking every thread on it.
func (cv *ConditionVariable) NotifyAll() {
	for cv.waiters.Len() > 0 {
		Signal(cv.waiters.PopFront().(ThreadID))
	}
}
