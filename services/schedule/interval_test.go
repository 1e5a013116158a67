package schedule

import (
	"testing"
	"time"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(start, end string) models.TimeSlot {
	return models.TimeSlot{Start: start, End: end}
}

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"9am", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestValidateSlot(t *testing.T) {
	assert.NoError(t, ValidateSlot(slot("09:00", "17:00")))
	assert.Error(t, ValidateSlot(slot("17:00", "09:00")), "inverted slot")
	assert.Error(t, ValidateSlot(slot("09:00", "09:00")), "zero-length slot")
	assert.Error(t, ValidateSlot(slot("xx", "17:00")))
}

func TestOverlaps(t *testing.T) {
	a := slot("09:00", "12:00")
	b := slot("11:00", "14:00")

	assert.True(t, Overlaps(a, b))
	assert.True(t, Overlaps(b, a), "overlap must be symmetric")
	assert.True(t, Overlaps(a, a), "a slot overlaps itself")
	assert.True(t, Overlaps(slot("09:00", "17:00"), slot("10:00", "11:00")), "containment overlaps")

	// Half-open semantics: slots sharing only an endpoint do not overlap.
	assert.False(t, Overlaps(slot("09:00", "10:00"), slot("10:00", "11:00")))
	assert.False(t, Overlaps(slot("10:00", "11:00"), slot("09:00", "10:00")))

	assert.False(t, Overlaps(slot("09:00", "10:00"), slot("13:00", "14:00")))
	assert.False(t, Overlaps(slot("bad", "10:00"), slot("09:00", "14:00")), "malformed slot never overlaps")
}

func TestContains(t *testing.T) {
	outer := slot("09:00", "17:00")
	assert.True(t, Contains(outer, slot("10:00", "12:00")))
	assert.True(t, Contains(outer, outer), "exact match counts as contained")
	assert.True(t, Contains(outer, slot("09:00", "10:00")), "flush with the start edge")
	assert.False(t, Contains(outer, slot("08:00", "10:00")), "spills past the start")
	assert.False(t, Contains(outer, slot("16:00", "18:00")), "spills past the end")
	assert.False(t, Contains(slot("10:00", "12:00"), outer))
}

func TestSameSlot(t *testing.T) {
	assert.True(t, SameSlot(slot("09:00", "10:00"), slot("09:00", "10:00")))
	assert.False(t, SameSlot(slot("09:00", "10:00"), slot("09:00", "10:01")))
	assert.False(t, SameSlot(slot("bad", "10:00"), slot("bad", "10:00")))
}

func TestParseDateIsUTC(t *testing.T) {
	d, err := ParseDate("2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "Thursday", WeekdayName(d))
	assert.Equal(t, "2026-01-01", FormatDate(d))

	_, err = ParseDate("01/01/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}

func TestDateRangesOverlap(t *testing.T) {
	d := func(s string) time.Time {
		v, err := ParseDate(s)
		require.NoError(t, err)
		return v
	}

	// Closed ranges: touching on a boundary date counts as overlap,
	// unlike time slots.
	assert.True(t, DateRangesOverlap(d("2026-01-01"), d("2026-01-10"), d("2026-01-10"), d("2026-01-20")))
	assert.True(t, DateRangesOverlap(d("2026-01-10"), d("2026-01-20"), d("2026-01-01"), d("2026-01-10")))
	assert.True(t, DateRangesOverlap(d("2026-01-01"), d("2026-01-31"), d("2026-01-10"), d("2026-01-12")))
	assert.False(t, DateRangesOverlap(d("2026-01-01"), d("2026-01-09"), d("2026-01-10"), d("2026-01-20")))
}

func TestDateInRange(t *testing.T) {
	d := func(s string) time.Time {
		v, err := ParseDate(s)
		require.NoError(t, err)
		return v
	}
	start, end := d("2026-01-05"), d("2026-01-10")
	assert.True(t, DateInRange(start, start, end), "inclusive start")
	assert.True(t, DateInRange(end, start, end), "inclusive end")
	assert.True(t, DateInRange(d("2026-01-07"), start, end))
	assert.False(t, DateInRange(d("2026-01-04"), start, end))
	assert.False(t, DateInRange(d("2026-01-11"), start, end))
}
