package attendance

import "time"

func SetClock(s Service, now func() time.Time) {
	svc := s.(*service)
	svc.now = now
	svc.geofence.now = now
}
