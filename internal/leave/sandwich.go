package leave

import (
	"time"

	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"
)

// SandwichDays counts the non-working dates strictly between from and to.
// A date is non-working when it is a weekend or appears in holidays.
// Ranges of fewer than three days have nothing in between and return 0.
func SandwichDays(from, to time.Time, holidays []time.Time) int {
	from, to = calendar.DateOf(from), calendar.DateOf(to)
	if calendar.InclusiveDays(from, to) < 3 {
		return 0
	}

	off := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		off[calendar.DateOf(h)] = struct{}{}
	}

	count := 0
	calendar.Each(from.AddDate(0, 0, 1), to.AddDate(0, 0, -1), func(d time.Time) {
		if calendar.IsWeekend(d) {
			count++
			return
		}
		if _, ok := off[d]; ok {
			count++
		}
	})
	return count
}
