package weft

import (
	"strconv"

	bytesize "github.com/inhies/go-bytesize"
)

// parseOptions consumes the runtime's options from the front of args
// and returns what remains for the host: args[0], everything after a
// bare "--", and everything from the first unrecognized argument on.
// Recognized:
//
//	-c N, --numCores N   number of scheduler cores
//	-s N, --stackSize N  per-thread stack size; plain bytes or a
//	                     go-bytesize suffix ("2KB", "1MB")
//
// The result reuses args' backing array, so recognized options are
// removed from the caller's argv in place.
func parseOptions(args []string) []string {
	if len(args) == 0 {
		return args
	}
	i := 1
scan:
	for i < len(args) {
		switch args[i] {
		case "-c", "--numCores":
			n := optionValue(args, i)
			if n < 1 {
				panic("weft: " + args[i] + " must be at least 1")
			}
			numCores = int(n)
			i += 2
		case "-s", "--stackSize":
			n := optionValue(args, i)
			if n < 1 {
				panic("weft: " + args[i] + " must be at least 1")
			}
			stackSize = int(n)
			i += 2
		case "--":
			i++
			break scan
		default:
			break scan
		}
	}
	return append(args[:1], args[i:]...)
}

func optionValue(args []string, i int) uint64 {
	if i+1 >= len(args) {
		panic("weft: option " + args[i] + " requires a value")
	}
	v := args[i+1]
	if n, err := strconv.ParseUint(v, 10, 64); err == nil {
		return n
	}
	b, err := bytesize.Parse(v)
	if err != nil {
		panic("weft: invalid value for " + args[i] + ": " + v)
	}
	return uint64(b)
}
