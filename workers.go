package glossgen

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one letter is read at a time.
	MinWorkers = 1

	// MaxWorkers is one worker per letter; more would sit idle.
	MaxWorkers = len(Alphabet)
)

// ResolveWorkers determines how many letter files are processed at once.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers). The result is clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
