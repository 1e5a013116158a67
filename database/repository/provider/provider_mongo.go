package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProviderNotFound is returned when a lookup matches no provider.
var ErrProviderNotFound = errors.New("provider not found")

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.MongoClient.Database(database.Name).Collection("providers")
	repo := &MongoProviderRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("provider repo: %v", err))
	}
	return repo
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"profile.email": email}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with email %s: %w", email, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByServiceLevel(ctx context.Context, level string) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{
		"profile.status":      "active",
		"serviceLevels.level": level,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers for level %s: %w", level, err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) AppendAvailability(ctx context.Context, providerID string, entries []models.AvailabilityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	update := bson.M{
		"$push": bson.M{"availability": bson.M{"$each": entries}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return fmt.Errorf("failed to append availability for provider %s: %w", providerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *MongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	provider.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"profile":                          provider.Profile,
		"serviceLevels":                    provider.ServiceLevels,
		"advanceNoticeHours":               provider.AdvanceNoticeHours,
		"bookingConfirmationDeadlineHours": provider.ConfirmationDeadlineHours,
		"updatedAt":                        provider.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": provider.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", provider.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProviderNotFound
	}
	return nil
}
