// Package schedule holds the calendar arithmetic the booking engine is
// built on: clock-time intervals, UTC calendar dates, recurrence expansion
// and conflict detection. Every call site in the service goes through this
// package so that overlap semantics cannot drift between routes.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"carebook/models"
)

// DateLayout is the wire format for all date-only fields.
const DateLayout = "2006-01-02"

// ToMinutes converts an "HH:MM" clock string to minutes since midnight.
func ToMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", clock, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	return h*60 + m, nil
}

// SlotMinutes resolves a TimeSlot to its start/end minute pair.
func SlotMinutes(s models.TimeSlot) (start, end int, err error) {
	if start, err = ToMinutes(s.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ToMinutes(s.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ValidateSlot checks that both times parse and that start precedes end.
func ValidateSlot(s models.TimeSlot) error {
	start, end, err := SlotMinutes(s)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("slot %s-%s: start must precede end", s.Start, s.End)
	}
	return nil
}

// Overlaps reports whether two slots intersect. Slots are half-open
// intervals: touching endpoints (09:00-10:00 vs 10:00-11:00) do not
// overlap. Malformed slots never overlap anything.
func Overlaps(a, b models.TimeSlot) bool {
	aStart, aEnd, err := SlotMinutes(a)
	if err != nil {
		return false
	}
	bStart, bEnd, err := SlotMinutes(b)
	if err != nil {
		return false
	}
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// Contains reports whether inner lies entirely within outer
// (closed containment, so an exact match counts).
func Contains(outer, inner models.TimeSlot) bool {
	oStart, oEnd, err := SlotMinutes(outer)
	if err != nil {
		return false
	}
	iStart, iEnd, err := SlotMinutes(inner)
	if err != nil {
		return false
	}
	return iStart >= oStart && iEnd <= oEnd
}

// SameSlot reports whether two slots normalize to identical minute bounds.
func SameSlot(a, b models.TimeSlot) bool {
	aStart, aEnd, errA := SlotMinutes(a)
	bStart, bEnd, errB := SlotMinutes(b)
	return errA == nil && errB == nil && aStart == bStart && aEnd == bEnd
}

// FormatSpan renders a slot as "HH:MM-HH:MM" for conflict messages.
func FormatSpan(s models.TimeSlot) string {
	return s.Start + "-" + s.End
}

// ParseDate parses a "YYYY-MM-DD" string to a UTC-midnight instant. All
// date-only values in the system are identified by their UTC Y-M-D; weekday
// computation must go through this representation and never through a
// timezone-sensitive constructor.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a UTC instant back to "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// WeekdayName returns the English weekday ("Monday".."Sunday") of a UTC date.
func WeekdayName(t time.Time) string {
	return t.UTC().Weekday().String()
}

// DateRangesOverlap reports whether two inclusive date ranges intersect.
// Unlike time slots, date ranges are closed: ranges that touch on a
// boundary date DO overlap. The asymmetry with Overlaps is deliberate and
// load-bearing for boundary cases.
func DateRangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}

// DateInRange reports whether d falls inside the inclusive range [s, e].
func DateInRange(d, s, e time.Time) bool {
	return !d.Before(s) && !d.After(e)
}
