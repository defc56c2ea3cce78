package core

import "time"

// Clock abstracts wall-clock access so time-derived behavior can be pinned
// in tests. All schedule and timezone math takes instants from here rather
// than calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
