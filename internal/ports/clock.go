package ports

import "time"

// Clock supplies the current instant. The duration checks in the pause ledger
// assume it is monotonically non-decreasing from the caller's point of view.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
