package booking

import (
	"context"
	"fmt"
	"math"
	"sort"

	providerRepo "carebook/database/repository/provider"
	"carebook/models"
	"carebook/services/schedule"

	"go.uber.org/zap"
)

// Candidate pairs a provider with its distance from the seeker. Located is
// false when either side lacks coordinates and the distance is unknown.
type Candidate struct {
	Provider   models.Provider
	DistanceKm float64
	Located    bool
}

// MatchResult is the outcome of a provider match: providers that can fully
// cover the request, plus per-provider detail for those that cannot.
type MatchResult struct {
	Matched         []models.Provider `json:"matched"`
	ConflictDetails []models.Conflict `json:"conflictDetails"`
}

// MatchingService finds eligible, available, nearby providers.
type MatchingService interface {
	// MatchProviders returns every provider within radius that offers the
	// level and fully covers the entry, with conflict detail for the rest.
	MatchProviders(ctx context.Context, entry models.BookingRequestEntry, seekerLoc models.GeoPoint, maxDistanceKm float64) (*MatchResult, error)
	// Candidates returns providers offering the level within radius,
	// sorted nearest first for the first-fit reservation path.
	Candidates(ctx context.Context, level string, seekerLoc models.GeoPoint, maxDistanceKm float64) ([]Candidate, []models.Conflict, error)
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	ProviderRepo providerRepo.ProviderRepository
	Logger       *zap.Logger
}

// DistanceKm computes the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func (s *DefaultMatchingService) Candidates(ctx context.Context, level string, seekerLoc models.GeoPoint, maxDistanceKm float64) ([]Candidate, []models.Conflict, error) {
	criteria := providerRepo.SearchCriteria{ServiceLevel: level}
	if seekerLoc.HasCoordinates() {
		criteria.LocationGeo = seekerLoc
		criteria.MaxDistanceKm = maxDistanceKm
	}
	providers, err := s.ProviderRepo.Search(ctx, criteria)
	if err != nil {
		return nil, nil, fmt.Errorf("candidate search failed: %w", err)
	}

	var candidates []Candidate
	var details []models.Conflict
	for _, p := range providers {
		if p.OfferingFor(level) == nil {
			continue
		}
		var distance float64
		located := false
		if seekerLoc.HasCoordinates() && p.Profile.LocationGeo.HasCoordinates() {
			located = true
			distance = DistanceKm(
				seekerLoc.Lat(), seekerLoc.Lon(),
				p.Profile.LocationGeo.Lat(), p.Profile.LocationGeo.Lon(),
			)
			// The repo already filters by radius when it can use $geoNear;
			// re-check here so the result does not depend on that path.
			if distance > maxDistanceKm {
				details = append(details, models.Conflict{
					Type:       models.ConflictLocation,
					Message:    fmt.Sprintf("provider %s is %.1f km away, outside the %.0f km radius", p.Profile.Name, distance, maxDistanceKm),
					ProviderID: p.ID,
				})
				continue
			}
		}
		candidates = append(candidates, Candidate{Provider: p, DistanceKm: distance, Located: located})
	}

	// Nearest first; the reservation path takes the first fully available
	// fit. Providers with unknown distance rank behind every located one.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Located != candidates[j].Located {
			return candidates[i].Located
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	return candidates, details, nil
}

func (s *DefaultMatchingService) MatchProviders(ctx context.Context, entry models.BookingRequestEntry, seekerLoc models.GeoPoint, maxDistanceKm float64) (*MatchResult, error) {
	occs, err := schedule.ExpandEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("invalid request entry: %w", err)
	}

	candidates, details, err := s.Candidates(ctx, entry.ServiceLevel, seekerLoc, maxDistanceKm)
	if err != nil {
		return nil, err
	}

	result := &MatchResult{ConflictDetails: details}
	for _, cand := range candidates {
		gaps := schedule.CoverageConflicts(occs, cand.Provider.Availability)
		if len(gaps) == 0 {
			result.Matched = append(result.Matched, cand.Provider)
			continue
		}
		for i := range gaps {
			gaps[i].ProviderID = cand.Provider.ID
		}
		result.ConflictDetails = append(result.ConflictDetails, gaps...)
	}

	if s.Logger != nil {
		s.Logger.Debug("provider match completed",
			zap.String("serviceLevel", entry.ServiceLevel),
			zap.Int("matched", len(result.Matched)),
			zap.Int("conflicts", len(result.ConflictDetails)),
		)
	}
	return result, nil
}
