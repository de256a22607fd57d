package domain

import "time"

// NextRace returns the upcoming race with the earliest date strictly after
// now, or nil. Equal dates keep the first race in calendar order.
func NextRace(calendar []Race, now time.Time) *Race {
	var next *Race
	for i := range calendar {
		race := calendar[i]
		if !race.IsUpcoming() || race.Date.IsZero() {
			continue
		}
		if !race.Date.After(now) {
			continue
		}
		if next == nil || race.Date.Before(next.Date) {
			r := race
			next = &r
		}
	}
	return next
}
