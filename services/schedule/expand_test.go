package schedule

import (
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEntryOneTime(t *testing.T) {
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-03-10",
		EndDate:      "2026-03-14",
		TimeSlots:    []models.TimeSlot{slot("09:00", "12:00")},
	}

	occs, err := ExpandEntry(entry)
	require.NoError(t, err)
	require.Len(t, occs, 5, "one occurrence per day in the inclusive range")

	want := []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14"}
	for i, occ := range occs {
		assert.Equal(t, want[i], FormatDate(occ.Date))
		require.Len(t, occ.Slots, 1)
		assert.True(t, SameSlot(occ.Slots[0], slot("09:00", "12:00")))
	}
}

func TestExpandEntryWeekly(t *testing.T) {
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 2",
		StartDate:    "2026-01-02",
		EndDate:      "2026-01-25",
		Recurring: []models.RecurringDay{
			{Day: "Monday", TimeSlots: []models.TimeSlot{slot("09:00", "12:00")}},
			{Day: "Thursday", TimeSlots: []models.TimeSlot{slot("14:00", "16:00")}},
		},
	}

	occs, err := ExpandEntry(entry)
	require.NoError(t, err)

	// Jan 2026: Mondays in range are the 5th, 12th, 19th; Thursdays the
	// 8th, 15th, 22nd. The walk emits them in calendar order.
	want := []struct {
		date string
		day  string
	}{
		{"2026-01-05", "Monday"},
		{"2026-01-08", "Thursday"},
		{"2026-01-12", "Monday"},
		{"2026-01-15", "Thursday"},
		{"2026-01-19", "Monday"},
		{"2026-01-22", "Thursday"},
	}
	require.Len(t, occs, len(want))
	for i, occ := range occs {
		assert.Equal(t, want[i].date, FormatDate(occ.Date))
		assert.Equal(t, want[i].day, WeekdayName(occ.Date))
	}
}

func TestExpandAcrossLeapDay(t *testing.T) {
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2028-02-28",
		EndDate:      "2028-03-01",
		TimeSlots:    []models.TimeSlot{slot("10:00", "11:00")},
	}
	occs, err := ExpandEntry(entry)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, "2028-02-29", FormatDate(occs[1].Date))
}

func TestExpandAcrossYearBoundary(t *testing.T) {
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-12-31",
		EndDate:      "2027-01-01",
		TimeSlots:    []models.TimeSlot{slot("10:00", "11:00")},
	}
	occs, err := ExpandEntry(entry)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, "2026-12-31", FormatDate(occs[0].Date))
	assert.Equal(t, "2027-01-01", FormatDate(occs[1].Date))
}

func TestExpandEntryNoMatchingWeekday(t *testing.T) {
	// 2026-01-05 (Monday) through 2026-01-09 (Friday) contains no Sunday.
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-01-05",
		EndDate:      "2026-01-09",
		Recurring: []models.RecurringDay{
			{Day: "Sunday", TimeSlots: []models.TimeSlot{slot("09:00", "12:00")}},
		},
	}
	occs, err := ExpandEntry(entry)
	require.NoError(t, err, "an empty expansion is not an error")
	assert.Empty(t, occs)
}

func TestExpandEntryErrors(t *testing.T) {
	base := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-01-05",
		EndDate:      "2026-01-09",
		TimeSlots:    []models.TimeSlot{slot("09:00", "12:00")},
	}

	bad := base
	bad.StartDate = "not-a-date"
	_, err := ExpandEntry(bad)
	assert.Error(t, err)

	inverted := base
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	_, err = ExpandEntry(inverted)
	assert.Error(t, err)

	empty := base
	empty.TimeSlots = nil
	_, err = ExpandEntry(empty)
	assert.Error(t, err, "entry needs time_slots or recurring")
}

func TestPatternOfRecurringWins(t *testing.T) {
	entry := models.BookingRequestEntry{
		TimeSlots: []models.TimeSlot{slot("09:00", "12:00")},
		Recurring: []models.RecurringDay{
			{Day: "Monday", TimeSlots: []models.TimeSlot{slot("14:00", "16:00")}},
		},
	}
	p, err := PatternOf(entry)
	require.NoError(t, err)
	_, ok := p.(Weekly)
	assert.True(t, ok, "recurring takes precedence when both are populated")
}

func TestGroupByWeekday(t *testing.T) {
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-01-05",
		EndDate:      "2026-01-18",
		Recurring: []models.RecurringDay{
			{Day: "Thursday", TimeSlots: []models.TimeSlot{slot("14:00", "16:00")}},
			{Day: "Monday", TimeSlots: []models.TimeSlot{slot("09:00", "12:00")}},
		},
	}
	occs, err := ExpandEntry(entry)
	require.NoError(t, err)
	require.Len(t, occs, 4, "two Mondays and two Thursdays")

	grouped := GroupByWeekday(occs)
	require.Len(t, grouped, 2)
	// Canonical Monday-first ordering, repeated weeks deduplicated.
	assert.Equal(t, "Monday", grouped[0].Day)
	require.Len(t, grouped[0].TimeSlots, 1)
	assert.Equal(t, "Thursday", grouped[1].Day)
	require.Len(t, grouped[1].TimeSlots, 1)
}
