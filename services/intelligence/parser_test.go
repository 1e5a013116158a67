package ai

import (
	"context"
	"errors"
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

const fencedResponse = "Here is your schedule:\n```json\n[\n  {\n    \"service_level\": \"Level 2\",\n    \"start_date\": \"2026-01-05\",\n    \"end_date\": \"2026-01-25\",\n    \"recurring\": [\n      {\"day\": \"Monday\", \"time_slots\": [{\"start\": \"09:00\", \"end\": \"12:00\"}]}\n    ]\n  }\n]\n```\nLet me know if you need changes."

func TestParseScheduleCommand(t *testing.T) {
	stub := &stubGenerator{response: fencedResponse}
	parser := NewGeminiCommandParser(stub)

	entries, err := parser.ParseScheduleCommand(context.Background(), "book a level 2 caregiver on Mondays in January", models.GeoPoint{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Level 2", e.ServiceLevel)
	assert.Equal(t, "2026-01-05", e.StartDate)
	assert.Equal(t, "2026-01-25", e.EndDate)
	require.Len(t, e.Recurring, 1)
	assert.Equal(t, "Monday", e.Recurring[0].Day)

	assert.Contains(t, stub.prompt, "book a level 2 caregiver", "user text is embedded in the prompt")
	assert.NotContains(t, stub.prompt, "Seeker location", "no location block without coordinates")
}

func TestParseScheduleCommandLocationContext(t *testing.T) {
	stub := &stubGenerator{response: fencedResponse}
	parser := NewGeminiCommandParser(stub)

	loc := models.NewGeoPoint(-1.2864, 36.8172)
	_, err := parser.ParseScheduleCommand(context.Background(), "book a caregiver near me on Mondays", loc)
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "Seeker location: lat -1.2864, lon 36.8172")
}

func TestParseScheduleCommandEmptyText(t *testing.T) {
	stub := &stubGenerator{response: fencedResponse}
	parser := NewGeminiCommandParser(stub)

	_, err := parser.ParseScheduleCommand(context.Background(), "   ", models.GeoPoint{})
	assert.Error(t, err)
	assert.Empty(t, stub.prompt, "the model is never called for an empty command")
}

func TestParseScheduleCommandGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	parser := NewGeminiCommandParser(&stubGenerator{err: boom})

	_, err := parser.ParseScheduleCommand(context.Background(), "book something", models.GeoPoint{})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeEntries(t *testing.T) {
	entries, err := decodeEntries(`[{"service_level":"Level 1","start_date":"2026-02-01","end_date":"2026-02-07","time_slots":[{"start":"08:00","end":"10:00"}]}]`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Level 1", entries[0].ServiceLevel)

	_, err = decodeEntries("I could not understand the request.")
	assert.Error(t, err, "no array in the response")

	_, err = decodeEntries("[{broken json]")
	assert.Error(t, err)
}

func TestValidateEntries(t *testing.T) {
	valid := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-02-01",
		EndDate:      "2026-02-07",
		TimeSlots:    []models.TimeSlot{{Start: "08:00", End: "10:00"}},
	}
	assert.NoError(t, ValidateEntries([]models.BookingRequestEntry{valid}))

	assert.Error(t, ValidateEntries(nil), "empty result is rejected")

	noLevel := valid
	noLevel.ServiceLevel = ""
	assert.Error(t, ValidateEntries([]models.BookingRequestEntry{noLevel}))

	noDates := valid
	noDates.EndDate = ""
	assert.Error(t, ValidateEntries([]models.BookingRequestEntry{noDates}))

	noPattern := valid
	noPattern.TimeSlots = nil
	assert.Error(t, ValidateEntries([]models.BookingRequestEntry{noPattern}))
}
