package util

import "time"

// Clock yields the current instant. Components hold one so tests can pin time.
type Clock func() time.Time

// NowUTC is the production Clock, truncated to milliseconds.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Fixed returns a Clock stuck at t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
