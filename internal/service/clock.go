package service

import "time"

// Clock supplies the current time and the waits between cycles.
// Tests substitute it to drive the run loop without real sleeps.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// After waits for the duration to elapse and then sends the current time on the returned channel.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// dayWindow returns [local midnight of now, +24h).
func dayWindow(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	return start, start.Add(24 * time.Hour)
}
