package providerRepo

import (
	"context"
	"fmt"
	"time"

	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Search runs the candidate aggregation. With a search center present the
// pipeline leads with $geoNear, which both filters by radius and returns
// documents nearest first; the matcher then only has to verify distances
// and availability. Without coordinates it degrades to a plain match on
// service level.
func (r *MongoProviderRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var pipeline mongo.Pipeline

	if criteria.MaxDistanceKm > 0 && criteria.LocationGeo.HasCoordinates() {
		pipeline = append(pipeline, bson.D{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: criteria.LocationGeo.Coordinates},
				}},
				{Key: "distanceField", Value: "distance"},
				{Key: "spherical", Value: true},
				{Key: "maxDistance", Value: criteria.MaxDistanceKm * 1000},
			}},
		})
	}

	matchFilter := bson.M{
		"profile.status": "active",
		"availability":   bson.M{"$exists": true, "$ne": bson.A{}},
	}
	if criteria.ServiceLevel != "" {
		matchFilter["serviceLevels.level"] = criteria.ServiceLevel
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("candidate aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return providers, nil
}
