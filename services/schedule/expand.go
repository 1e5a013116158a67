package schedule

import (
	"fmt"
	"time"

	"carebook/models"
)

// Occurrence is one concrete (date, slots) pair produced by expanding a
// recurrence rule. Date is a UTC-midnight instant.
type Occurrence struct {
	Date  time.Time
	Slots []models.TimeSlot
}

// Pattern is the tagged variant behind loosely-shaped request entries:
// either the same slots apply to every day of the range, or specific
// weekdays carry their own slots.
type Pattern interface {
	slotsOn(weekday string) []models.TimeSlot
}

// OneTime applies the same slots to every date in the range.
type OneTime struct {
	Slots []models.TimeSlot
}

func (p OneTime) slotsOn(string) []models.TimeSlot { return p.Slots }

// Weekly applies slots only on the listed weekdays.
type Weekly struct {
	Days []models.RecurringDay
}

func (p Weekly) slotsOn(weekday string) []models.TimeSlot {
	for _, d := range p.Days {
		if d.Day == weekday {
			return d.TimeSlots
		}
	}
	return nil
}

// PatternOf normalizes a request entry into its variant. Recurring wins
// when both arrays are populated; an entry with neither is malformed.
func PatternOf(entry models.BookingRequestEntry) (Pattern, error) {
	if len(entry.Recurring) > 0 {
		return Weekly{Days: entry.Recurring}, nil
	}
	if len(entry.TimeSlots) > 0 {
		return OneTime{Slots: entry.TimeSlots}, nil
	}
	return nil, fmt.Errorf("entry has neither time_slots nor recurring days")
}

// Expand walks the inclusive range [start, end] one UTC day at a time and
// emits an occurrence for every date the pattern gives slots for. Native
// calendar arithmetic handles month lengths, leap days and year boundaries.
// A range with no matching weekday legitimately yields an empty result.
func Expand(start, end time.Time, p Pattern) []Occurrence {
	var out []Occurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		slots := p.slotsOn(WeekdayName(d))
		if len(slots) == 0 {
			continue
		}
		out = append(out, Occurrence{Date: d, Slots: slots})
	}
	return out
}

// ExpandEntry parses an entry's dates, normalizes its pattern and expands
// it. Returns an error for malformed dates, inverted ranges or an empty
// pattern; an in-range empty expansion is not an error.
func ExpandEntry(entry models.BookingRequestEntry) ([]Occurrence, error) {
	start, err := ParseDate(entry.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(entry.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("start_date %s after end_date %s", entry.StartDate, entry.EndDate)
	}
	p, err := PatternOf(entry)
	if err != nil {
		return nil, err
	}
	return Expand(start, end, p), nil
}

// ExpandAvailability expands a stored availability entry. Malformed stored
// entries expand to nothing rather than failing the whole coverage check.
func ExpandAvailability(entry models.AvailabilityEntry) []Occurrence {
	start, err := ParseDate(entry.StartDate)
	if err != nil {
		return nil
	}
	end, err := ParseDate(entry.EndDate)
	if err != nil {
		return nil
	}
	return Expand(start, end, Weekly{Days: entry.Recurring})
}

// ExpandBooking materializes a persisted booking's concrete occurrences.
func ExpandBooking(b models.Booking) []Occurrence {
	start, err := ParseDate(b.StartDate)
	if err != nil {
		return nil
	}
	end, err := ParseDate(b.EndDate)
	if err != nil {
		return nil
	}
	return Expand(start, end, Weekly{Days: b.Recurring})
}

// GroupByWeekday folds occurrences back into the per-weekday shape bookings
// are stored in. Slot lists are deduplicated per weekday.
func GroupByWeekday(occs []Occurrence) []models.RecurringDay {
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	byDay := make(map[string][]models.TimeSlot)
	for _, occ := range occs {
		day := WeekdayName(occ.Date)
		for _, slot := range occ.Slots {
			dup := false
			for _, have := range byDay[day] {
				if SameSlot(have, slot) {
					dup = true
					break
				}
			}
			if !dup {
				byDay[day] = append(byDay[day], slot)
			}
		}
	}
	var out []models.RecurringDay
	for _, day := range order {
		if slots, ok := byDay[day]; ok {
			out = append(out, models.RecurringDay{Day: day, TimeSlots: slots})
		}
	}
	return out
}
