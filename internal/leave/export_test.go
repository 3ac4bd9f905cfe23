package leave

import "time"

// SetClock pins the service clock so "today" and "now" are deterministic.
func SetClock(s Service, now func() time.Time) {
	s.(*service).now = now
}
