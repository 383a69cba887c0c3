//go:build !linux

package weft

// Thread affinity is not exposed on this platform; the kernel thread is
// still wired to its own OS thread.
func pinToCore(int) {}
