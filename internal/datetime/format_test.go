package datetime

import (
	"testing"
	"time"
)

func TestFormatRoundTrip(t *testing.T) {
	loc := mustLocation(t, "Asia/Kolkata")
	instants := []time.Time{
		time.Date(2025, time.January, 5, 17, 30, 0, 0, loc),
		time.Date(2025, time.September, 30, 0, 0, 0, 0, loc),
		time.Date(2026, time.December, 31, 12, 0, 0, 0, loc),
		time.Date(2024, time.February, 29, 23, 59, 0, 0, loc),
		time.Date(2027, time.May, 1, 9, 5, 0, 0, loc),
	}
	for _, want := range instants {
		date, clock := FormatDate(want), FormatClock(want)
		got, err := Normalize(date, clock, loc)
		if err != nil {
			t.Fatalf("round trip %q %q failed: %v", date, clock, err)
		}
		if !got.Equal(want) {
			t.Fatalf("round trip %q %q = %s, want %s", date, clock, got, want)
		}
	}
}

func TestFormatShapes(t *testing.T) {
	at := time.Date(2025, time.January, 5, 0, 7, 0, 0, time.UTC)
	if got := FormatDate(at); got != "05 Jan 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatClock(at); got != "12:07 am" {
		t.Fatalf("FormatClock midnight = %q", got)
	}
	if got := FormatClock(at.Add(12 * time.Hour)); got != "12:07 pm" {
		t.Fatalf("FormatClock noon = %q", got)
	}
	if got := FormatClock(at.Add(17 * time.Hour)); got != "5:07 pm" {
		t.Fatalf("FormatClock evening = %q", got)
	}
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2026, time.February, 9, 22, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, time.February, 9, 8, 0, 0, 0, time.UTC), "Today"},
		{time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), "Tomorrow"},
		{time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC), "11 Feb 2026"},
		{time.Date(2026, time.February, 8, 23, 59, 0, 0, time.UTC), "08 Feb 2026"},
	}
	for _, tc := range cases {
		if got := RelativeLabel(tc.at, now); got != tc.want {
			t.Fatalf("RelativeLabel(%s) = %q, want %q", tc.at, got, tc.want)
		}
	}
}
