// Package timezone provides timezone utilities for the application.
//
// Two layers live here. The package-level helpers stamp audit metadata in UTC (Now)
// and render it in the configured zone (Format). Clock and Civil
// drive booking decisions: a Clock turns an instant into a Civil wall-clock reading in
// the club's zone, and slot boundaries are compared against that reading.
//
// Usage Examples:
//
//  1. Metadata helpers:
//     createdAt := timezone.Now()
//     rendered := timezone.Format(createdAt, time.RFC3339)
//
//  2. Booking decisions:
//     clock, err := timezone.New("Europe/Berlin")
//     now := clock.Now()
//     start := timezone.CivilOf(date, 18, 0)
//     shortNotice := !now.Before(start.Add(-15 * time.Minute))
//
// The timezone is configured via the APP_TIMEZONE environment variable. Use standard
// IANA timezone database names; an unknown name stops the service at start-up.
package timezone
