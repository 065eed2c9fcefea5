package kernel

import "time"

// Clock is the source of "now" for constructors and derived queries that
// depend on the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return NormalizeTime(time.Now())
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return NormalizeTime(c.At)
}

// NormalizeTime strips the monotonic reading and converts to UTC so that
// snapshots compare equal after a JSON or database round trip.
func NormalizeTime(t time.Time) time.Time {
	return t.Round(0).UTC()
}

// NormalizeOptionalTime applies NormalizeTime to an optional timestamp.
func NormalizeOptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := NormalizeTime(*t)
	return &n
}
