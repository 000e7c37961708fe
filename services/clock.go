package services

import "time"

// Clock abstracts wall-clock time so notice/advance-window checks can be
// tested against a fixed "now".
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
