package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"carebook/models"
)

// ContentGenerator is the slice of the model client the parser needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiCommandParser implements CommandParser on top of Gemini.
type GeminiCommandParser struct {
	client ContentGenerator
}

func NewGeminiCommandParser(client ContentGenerator) *GeminiCommandParser {
	return &GeminiCommandParser{client: client}
}

const schedulePrompt = `You are a scheduling assistant for a caregiver booking service.
Convert the user's request into a JSON array of booking entries. Each entry:
{
  "service_level": "Level 1" | "Level 2" | "Level 3",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "time_slots": [{"start": "HH:MM", "end": "HH:MM"}],
  "recurring": [{"day": "Monday", "time_slots": [{"start": "HH:MM", "end": "HH:MM"}]}]
}
Use "time_slots" when the same hours apply to every day in the range, and
"recurring" when only specific weekdays are wanted. Never populate both.
Respond with the JSON array only, no prose.

User request: %s`

func (p *GeminiCommandParser) ParseScheduleCommand(ctx context.Context, text string, location models.GeoPoint) ([]models.BookingRequestEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty command")
	}
	raw, err := p.client.GenerateContent(ctx, buildPrompt(text, location))
	if err != nil {
		return nil, fmt.Errorf("schedule command parsing failed: %w", err)
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// buildPrompt renders the schedule prompt, appending the seeker's location
// when known so place-dependent phrasing ("near me", local holidays) has
// something to resolve against.
func buildPrompt(text string, location models.GeoPoint) string {
	prompt := fmt.Sprintf(schedulePrompt, text)
	if location.HasCoordinates() {
		prompt += fmt.Sprintf("\nSeeker location: lat %.4f, lon %.4f.", location.Lat(), location.Lon())
	}
	return prompt
}

// decodeEntries pulls the JSON array out of the model response, tolerating
// markdown fences and surrounding prose.
func decodeEntries(raw string) ([]models.BookingRequestEntry, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("model response contains no JSON array")
	}
	var entries []models.BookingRequestEntry
	if err := json.Unmarshal([]byte(raw[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode schedule entries: %w", err)
	}
	return entries, nil
}

// ValidateEntries rejects structurally incomplete entries rather than
// letting them crash the workflow downstream. Semantic validation (date
// order, slot bounds) happens in the reservation workflow itself.
func ValidateEntries(entries []models.BookingRequestEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("command produced no booking entries")
	}
	for i, e := range entries {
		if e.ServiceLevel == "" {
			return fmt.Errorf("entry %d: missing service_level", i)
		}
		if e.StartDate == "" || e.EndDate == "" {
			return fmt.Errorf("entry %d: missing start_date or end_date", i)
		}
		if len(e.TimeSlots) == 0 && len(e.Recurring) == 0 {
			return fmt.Errorf("entry %d: needs time_slots or recurring", i)
		}
	}
	return nil
}
