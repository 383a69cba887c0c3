//go:build linux

package weft

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore binds the calling OS thread to one CPU. Best effort: a
// restricted cpuset must not stop the scheduler, so failures are
// ignored.
func pinToCore(coreID int) {
	var set unix.CPUSet
	set.Set(coreID % runtime.NumCPU())
	_ = unix.SchedSetaffinity(0, &set)
}
