package booking

import (
	"context"
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Nairobi CBD and points at increasing distance from it.
var (
	seekerLoc = models.NewGeoPoint(-1.2864, 36.8172)
	nearLoc   = models.NewGeoPoint(-1.2921, 36.8219) // ~0.8 km
	midLoc    = models.NewGeoPoint(-1.3733, 36.8473) // ~10 km
	farLoc    = models.NewGeoPoint(-1.0396, 37.0834) // ~40 km
)

func activeProvider(id, name string, level string, loc models.GeoPoint) models.Provider {
	return models.Provider{
		ID: id,
		Profile: models.ProviderProfile{
			Name:        name,
			Email:       name + "@example.com",
			Status:      "active",
			LocationGeo: loc,
		},
		ServiceLevels: []models.ServiceOffering{{Level: level, PricePerHour: 20}},
		Availability: []models.AvailabilityEntry{
			{
				ID:        "avail-" + id,
				StartDate: "2026-01-01",
				EndDate:   "2026-12-31",
				Recurring: []models.RecurringDay{
					{Day: "Monday", TimeSlots: []models.TimeSlot{{Start: "08:00", End: "18:00"}}},
					{Day: "Wednesday", TimeSlots: []models.TimeSlot{{Start: "08:00", End: "18:00"}}},
				},
			},
		},
	}
}

func TestDistanceKm(t *testing.T) {
	assert.Zero(t, DistanceKm(-1.2864, 36.8172, -1.2864, 36.8172))

	d1 := DistanceKm(seekerLoc.Lat(), seekerLoc.Lon(), farLoc.Lat(), farLoc.Lon())
	d2 := DistanceKm(farLoc.Lat(), farLoc.Lon(), seekerLoc.Lat(), seekerLoc.Lon())
	assert.InDelta(t, d1, d2, 1e-9, "distance is symmetric")
	assert.Greater(t, d1, 30.0)
	assert.Less(t, d1, 60.0)

	// Nairobi to Mombasa is roughly 440 km as the crow flies.
	nm := DistanceKm(-1.2864, 36.8172, -4.0435, 39.6682)
	assert.InDelta(t, 440, nm, 15)
}

func TestCandidatesSortedAndFiltered(t *testing.T) {
	repo := &fakeProviderRepo{providers: []models.Provider{
		activeProvider("prov-far", "Far", "Level 1", farLoc),
		activeProvider("prov-near", "Near", "Level 1", nearLoc),
		activeProvider("prov-mid", "Mid", "Level 1", midLoc),
	}}
	svc := &DefaultMatchingService{ProviderRepo: repo, Logger: zap.NewNop()}

	candidates, details, err := svc.Candidates(context.Background(), "Level 1", seekerLoc, 30)
	require.NoError(t, err)

	// The 40 km provider falls outside the radius and is reported, not matched.
	require.Len(t, candidates, 2)
	assert.Equal(t, "prov-near", candidates[0].Provider.ID, "nearest first")
	assert.Equal(t, "prov-mid", candidates[1].Provider.ID)
	assert.Less(t, candidates[0].DistanceKm, candidates[1].DistanceKm)

	require.Len(t, details, 1)
	assert.Equal(t, models.ConflictLocation, details[0].Type)
	assert.Equal(t, "prov-far", details[0].ProviderID)
}

func TestCandidatesSkipsWrongLevelAndInactive(t *testing.T) {
	inactive := activeProvider("prov-off", "Off", "Level 1", nearLoc)
	inactive.Profile.Status = "suspended"
	noAvail := activeProvider("prov-empty", "Empty", "Level 1", nearLoc)
	noAvail.Availability = nil

	repo := &fakeProviderRepo{providers: []models.Provider{
		activeProvider("prov-l2", "LevelTwo", "Level 2", nearLoc),
		inactive,
		noAvail,
		activeProvider("prov-ok", "Ok", "Level 1", nearLoc),
	}}
	svc := &DefaultMatchingService{ProviderRepo: repo, Logger: zap.NewNop()}

	candidates, _, err := svc.Candidates(context.Background(), "Level 1", seekerLoc, 30)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "prov-ok", candidates[0].Provider.ID)
}

func TestCandidatesWithoutProviderCoordinatesRankLast(t *testing.T) {
	unlocated := activeProvider("prov-nowhere", "Nowhere", "Level 1", models.GeoPoint{})
	repo := &fakeProviderRepo{providers: []models.Provider{
		unlocated,
		activeProvider("prov-mid", "Mid", "Level 1", midLoc),
	}}
	svc := &DefaultMatchingService{ProviderRepo: repo, Logger: zap.NewNop()}

	candidates, details, err := svc.Candidates(context.Background(), "Level 1", seekerLoc, 30)
	require.NoError(t, err)
	assert.Empty(t, details)
	require.Len(t, candidates, 2)
	assert.Equal(t, "prov-mid", candidates[0].Provider.ID, "a located 10 km provider beats one at unknown distance")
	assert.Equal(t, "prov-nowhere", candidates[1].Provider.ID)
	assert.False(t, candidates[1].Located)
	assert.True(t, candidates[0].Located)
}

func TestCandidatesWithoutSeekerLocation(t *testing.T) {
	repo := &fakeProviderRepo{providers: []models.Provider{
		activeProvider("prov-far", "Far", "Level 1", farLoc),
	}}
	svc := &DefaultMatchingService{ProviderRepo: repo, Logger: zap.NewNop()}

	candidates, details, err := svc.Candidates(context.Background(), "Level 1", models.GeoPoint{}, 30)
	require.NoError(t, err)
	require.Len(t, candidates, 1, "no coordinates means no radius filtering")
	assert.Empty(t, details)
	assert.Zero(t, candidates[0].DistanceKm)
}

func TestMatchProvidersCoverage(t *testing.T) {
	covered := activeProvider("prov-cov", "Covered", "Level 1", nearLoc)
	// Only available Wednesdays, so a Monday request leaves gaps.
	partial := activeProvider("prov-gap", "Gappy", "Level 1", midLoc)
	partial.Availability = []models.AvailabilityEntry{
		{
			ID:        "avail-gap",
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
			Recurring: []models.RecurringDay{
				{Day: "Wednesday", TimeSlots: []models.TimeSlot{{Start: "08:00", End: "18:00"}}},
			},
		},
	}
	repo := &fakeProviderRepo{providers: []models.Provider{covered, partial}}
	svc := &DefaultMatchingService{ProviderRepo: repo, Logger: zap.NewNop()}

	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-01-05",
		EndDate:      "2026-01-12",
		Recurring: []models.RecurringDay{
			{Day: "Monday", TimeSlots: []models.TimeSlot{{Start: "09:00", End: "12:00"}}},
		},
	}

	result, err := svc.MatchProviders(context.Background(), entry, seekerLoc, 30)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "prov-cov", result.Matched[0].ID)

	// One gap per missed Monday, attributed to the provider that missed it.
	require.Len(t, result.ConflictDetails, 2)
	for _, c := range result.ConflictDetails {
		assert.Equal(t, models.ConflictDay, c.Type)
		assert.Equal(t, "prov-gap", c.ProviderID)
		assert.Equal(t, "Monday", c.Day)
	}
}

func TestMatchProvidersRejectsMalformedEntry(t *testing.T) {
	svc := &DefaultMatchingService{ProviderRepo: &fakeProviderRepo{}, Logger: zap.NewNop()}
	entry := models.BookingRequestEntry{
		ServiceLevel: "Level 1",
		StartDate:    "2026-01-12",
		EndDate:      "2026-01-05",
		TimeSlots:    []models.TimeSlot{{Start: "09:00", End: "12:00"}},
	}
	_, err := svc.MatchProviders(context.Background(), entry, seekerLoc, 30)
	assert.Error(t, err)
}
