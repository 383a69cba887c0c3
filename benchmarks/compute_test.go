package test

import (
	"sync"
	"testing"

	"github.com/alphadose/weft"
)

const epochs = 1e3

func doCopyStack(a, b int) int {
	if b < 100 {
		weft.Yield()
		return doCopyStack(0, b+1)
	}
	return 0
}

// Deep call stacks with a suspension at every level, the worst case for
// stack handling during a switch.
func BenchmarkWeftDeepStacks(b *testing.B) {
	var wg sync.WaitGroup
	weft.Init(nil)
	defer weft.Destroy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(epochs)
		for j := 0; j < epochs; j++ {
			submit(j, func() {
				doCopyStack(0, 0)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}

// Round-trip cost through the scheduler: one runnable thread yielding in
// a tight loop.
func BenchmarkWeftYield(b *testing.B) {
	var done sync.WaitGroup
	weft.Init(nil)
	defer weft.Destroy()

	done.Add(1)
	n := b.N
	b.ResetTimer()
	weft.CreateThread(0, func() {
		for i := 0; i < n; i++ {
			weft.Yield()
		}
		done.Done()
	})
	done.Wait()
	b.StopTimer()
}
