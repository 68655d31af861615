package datetime

import (
	"fmt"
	"time"
)

var monthLabels = [...]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sept",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// FormatDate renders t as "DD Mon YYYY", the shape Normalize accepts.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %04d", t.Day(), monthLabels[t.Month()], t.Year())
}

// FormatClock renders t as "H:MM am" or "H:MM pm".
func FormatClock(t time.Time) string {
	hour := t.Hour()
	meridiem := "am"
	if hour >= 12 {
		meridiem = "pm"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem)
}

// RelativeLabel returns "Today" or "Tomorrow" when t falls on those days
// relative to now (in now's location), otherwise the formatted date.
func RelativeLabel(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return "Today"
	case sameDay(t, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return FormatDate(t)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
