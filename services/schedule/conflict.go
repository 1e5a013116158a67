package schedule

import (
	"fmt"

	"carebook/models"
)

// IsCovered reports whether a single requested slot on a given date fits
// entirely inside one of the provider's availability entries. Containment,
// not mere overlap: a request spilling past an available slot's edge is
// not covered.
func IsCovered(avail []models.AvailabilityEntry, occ Occurrence, slot models.TimeSlot) bool {
	day := WeekdayName(occ.Date)
	for _, entry := range avail {
		start, err := ParseDate(entry.StartDate)
		if err != nil {
			continue
		}
		end, err := ParseDate(entry.EndDate)
		if err != nil {
			continue
		}
		if !DateInRange(occ.Date, start, end) {
			continue
		}
		for _, rd := range entry.Recurring {
			if rd.Day != day {
				continue
			}
			for _, have := range rd.TimeSlots {
				if Contains(have, slot) {
					return true
				}
			}
		}
	}
	return false
}

// CoverageConflicts checks every requested occurrence against the
// provider's published availability and returns the complete list of gaps.
// An empty result means the request is fully covered.
func CoverageConflicts(occs []Occurrence, avail []models.AvailabilityEntry) []models.Conflict {
	var out []models.Conflict
	for _, occ := range occs {
		for _, slot := range occ.Slots {
			if IsCovered(avail, occ, slot) {
				continue
			}
			out = append(out, models.Conflict{
				Type:          models.ConflictDay,
				Message:       fmt.Sprintf("no availability covering %s %s %s", WeekdayName(occ.Date), FormatDate(occ.Date), FormatSpan(slot)),
				Day:           WeekdayName(occ.Date),
				Date:          FormatDate(occ.Date),
				RequestedTime: FormatSpan(slot),
			})
		}
	}
	return out
}

// BookingConflicts compares requested occurrences against a provider's
// existing active bookings, occurrence by occurrence on matching calendar
// dates. It returns duplicates and conflicts separately; duplicates take
// priority, and when any exist the caller must persist nothing and report
// only the duplicates.
//
// Classification: an exact to-the-minute match of an existing slot is a
// duplicate; a mere overlap from the same seeker is a duplicate request;
// an overlap with another seeker is a generic time conflict.
func BookingConflicts(occs []Occurrence, existing []models.Booking, seekerID string) (duplicates, conflicts []models.Conflict) {
	type datedSlot struct {
		slot     models.TimeSlot
		seekerID string
	}
	byDate := make(map[string][]datedSlot)
	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		for _, occ := range ExpandBooking(b) {
			key := FormatDate(occ.Date)
			for _, slot := range occ.Slots {
				byDate[key] = append(byDate[key], datedSlot{slot: slot, seekerID: b.SeekerID})
			}
		}
	}

	for _, occ := range occs {
		day := WeekdayName(occ.Date)
		date := FormatDate(occ.Date)
		for _, slot := range occ.Slots {
			for _, have := range byDate[date] {
				switch {
				case SameSlot(slot, have.slot):
					duplicates = append(duplicates, models.Conflict{
						Type:          models.ConflictDuplicate,
						Message:       fmt.Sprintf("identical booking already exists on %s %s", date, FormatSpan(slot)),
						Day:           day,
						Date:          date,
						RequestedTime: FormatSpan(slot),
						ExistingTime:  FormatSpan(have.slot),
					})
				case Overlaps(slot, have.slot):
					c := models.Conflict{
						Type:          models.ConflictTime,
						Message:       fmt.Sprintf("requested %s overlaps existing booking %s on %s", FormatSpan(slot), FormatSpan(have.slot), date),
						Day:           day,
						Date:          date,
						RequestedTime: FormatSpan(slot),
						ExistingTime:  FormatSpan(have.slot),
					}
					if seekerID != "" && have.seekerID == seekerID {
						c.Type = models.ConflictDuplicate
						c.Message = fmt.Sprintf("duplicate request: you already hold a booking overlapping %s on %s", FormatSpan(slot), date)
						duplicates = append(duplicates, c)
						continue
					}
					conflicts = append(conflicts, c)
				}
			}
		}
	}
	return duplicates, conflicts
}

// EntryCovered reports whether every occurrence of a candidate availability
// entry is already covered by the existing entries. Used to flag redundant
// availability submissions as duplicates.
func EntryCovered(candidate models.AvailabilityEntry, existing []models.AvailabilityEntry) bool {
	occs := ExpandAvailability(candidate)
	if len(occs) == 0 {
		return false
	}
	for _, occ := range occs {
		for _, slot := range occ.Slots {
			if !IsCovered(existing, occ, slot) {
				return false
			}
		}
	}
	return true
}

// ValidateEntryShape enforces the structural invariants of an availability
// or booking entry: parseable ordered dates and well-formed slots. Returned
// conflicts carry field-level detail for the caller.
func ValidateEntryShape(startDate, endDate string, recurring []models.RecurringDay, flat []models.TimeSlot) []models.Conflict {
	var out []models.Conflict
	start, errStart := ParseDate(startDate)
	if errStart != nil {
		out = append(out, models.Conflict{Type: models.ConflictDateRange, Message: errStart.Error()})
	}
	end, errEnd := ParseDate(endDate)
	if errEnd != nil {
		out = append(out, models.Conflict{Type: models.ConflictDateRange, Message: errEnd.Error()})
	}
	if errStart == nil && errEnd == nil && start.After(end) {
		out = append(out, models.Conflict{
			Type:    models.ConflictDateRange,
			Message: fmt.Sprintf("start_date %s after end_date %s", startDate, endDate),
		})
	}
	validDays := map[string]bool{
		"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
		"Friday": true, "Saturday": true, "Sunday": true,
	}
	for _, rd := range recurring {
		if !validDays[rd.Day] {
			out = append(out, models.Conflict{
				Type:    models.ConflictDay,
				Message: fmt.Sprintf("unknown weekday %q", rd.Day),
				Day:     rd.Day,
			})
		}
		for _, slot := range rd.TimeSlots {
			if err := ValidateSlot(slot); err != nil {
				out = append(out, models.Conflict{
					Type:          models.ConflictTime,
					Message:       err.Error(),
					Day:           rd.Day,
					RequestedTime: FormatSpan(slot),
				})
			}
		}
	}
	for _, slot := range flat {
		if err := ValidateSlot(slot); err != nil {
			out = append(out, models.Conflict{
				Type:          models.ConflictTime,
				Message:       err.Error(),
				RequestedTime: FormatSpan(slot),
			})
		}
	}
	return out
}
