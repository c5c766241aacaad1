package util

import (
	"time"
)

// Clock lets services stamp documents with a time tests can pin.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
