package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidFormat   = errors.New("datetime: invalid format")
	ErrUnknownMonth    = errors.New("datetime: unknown month")
	ErrMissingMeridiem = errors.New("datetime: missing or invalid meridiem")
)

// monthTable maps the lower-cased picker abbreviations to calendar months.
// September is "sept", matching the en-IN date picker output.
var monthTable = map[string]time.Month{
	"jan":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"apr":  time.April,
	"may":  time.May,
	"jun":  time.June,
	"jul":  time.July,
	"aug":  time.August,
	"sept": time.September,
	"oct":  time.October,
	"nov":  time.November,
	"dec":  time.December,
}

// Normalize combines a "DD Mon YYYY" date and an optional "H:MM am|pm"
// time into an instant in loc. An empty time yields the start of the day.
//
// Day, year, hour and minute are not range checked: out-of-range values
// roll over the way time.Date normalizes them (day 32 of January is
// February 1st).
func Normalize(dateString, timeString string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	parts := strings.Split(dateString, " ")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: date %q, expected DD Mon YYYY", ErrInvalidFormat, dateString)
	}
	day, err := leadingInt(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrInvalidFormat, parts[0])
	}
	month, ok := monthTable[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMonth, parts[1])
	}
	year, err := leadingInt(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", ErrInvalidFormat, parts[2])
	}

	hour, minute := 0, 0
	if timeString != "" {
		hour, minute, err = parseClock(timeString)
		if err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

// NormalizeLocal is Normalize against the process time zone.
func NormalizeLocal(dateString, timeString string) (time.Time, error) {
	return Normalize(dateString, timeString, time.Local)
}

func parseClock(timeString string) (int, int, error) {
	parts := strings.Split(timeString, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q, expected H:MM am|pm", ErrInvalidFormat, timeString)
	}

	meridiem := ""
	if len(timeString) >= 2 {
		meridiem = strings.ToLower(timeString[len(timeString)-2:])
	}
	if meridiem != "am" && meridiem != "pm" {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingMeridiem, timeString)
	}

	hour, err := leadingInt(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidFormat, parts[0])
	}
	minute, err := leadingInt(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidFormat, parts[1])
	}

	switch {
	case meridiem == "pm" && hour != 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}
	return hour, minute, nil
}

// leadingInt reads an optionally signed base-10 integer prefix, skipping
// leading whitespace and ignoring whatever follows the digits ("30pm" is 30).
func leadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
		if n > 1<<31 {
			return 0, errors.New("integer overflow")
		}
	}
	if digits == 0 {
		return 0, errors.New("no digits")
	}
	if neg {
		n = -n
	}
	return n, nil
}
