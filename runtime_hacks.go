package weft

import "unsafe"

const cacheLinePadSize = 64

// GetG returns an opaque handle to the calling goroutine. The handle is
// stable for the goroutine's lifetime and is used to key the
// goroutine-to-thread-context registry. Implemented in assembly.
func GetG() unsafe.Pointer
