package models

// TimeSlot is a clock-time window within a single day, no date or timezone
// attached. Times are "HH:MM" 24-hour strings.
type TimeSlot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// RecurringDay maps a weekday name ("Monday".."Sunday") to the slots that
// apply on every matching date of a range.
type RecurringDay struct {
	Day       string     `bson:"day" json:"day"`
	TimeSlots []TimeSlot `bson:"time_slots" json:"time_slots"`
}

// AvailabilityEntry declares that on each date in [StartDate, EndDate] whose
// weekday appears in Recurring, the provider is free during the listed slots.
// Dates are "YYYY-MM-DD". Entries accumulate; coverage is the union of all
// of a provider's entries, so entries may overlap each other.
type AvailabilityEntry struct {
	ID        string         `bson:"id" json:"id"`
	StartDate string         `bson:"start_date" json:"start_date"`
	EndDate   string         `bson:"end_date" json:"end_date"`
	Recurring []RecurringDay `bson:"recurring" json:"recurring"`
	CreatedAt int64          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// BookingRequestEntry is one independent booking request, typically produced
// by the NLP command parser. Exactly one of TimeSlots (one-time: the slots
// apply to every day in the range) or Recurring (specific weekdays) is
// meaningfully populated.
type BookingRequestEntry struct {
	ServiceLevel string         `json:"service_level"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	TimeSlots    []TimeSlot     `json:"time_slots"`
	Recurring    []RecurringDay `json:"recurring"`
	Notes        string         `json:"notes,omitempty"`
}
