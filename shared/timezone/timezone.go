package timezone

import (
	"sync/atomic"
	"time"
)

const defaultTimezone = "UTC"

// stampLocation is the zone audit timestamps are rendered in. NewClock installs
// the club zone; until then it is UTC. Stamps themselves are always taken in UTC.
var stampLocation atomic.Pointer[time.Location]

// Use sets the zone Format renders in.
func Use(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	stampLocation.Store(loc)
}

func location() *time.Location {
	if loc := stampLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now is the audit timestamp for created_at, modified_at and removed_at columns. The
// columns carry no zone, so the stamp is UTC; lib/pq reads them back as UTC.
// Booking rules read a Clock instead.
func Now() time.Time {
	return time.Now().UTC()
}

// Format renders t in the club zone.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.In(location()).Format(layout)
}
