package kernel

import "time"

// Precision is the resolution at which timestamps are stored.
const Precision = time.Microsecond

// Clock supplies the current time to the domain and use cases.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to Precision.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}

// FixedClock always returns the same instant. Useful in tests and replays.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
