package seekerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSeekerNotFound is returned when a lookup matches no seeker.
var ErrSeekerNotFound = errors.New("seeker not found")

// MongoSeekerRepo implements SeekerRepository using MongoDB.
type MongoSeekerRepo struct {
	coll *mongo.Collection
}

// NewMongoSeekerRepo creates a new instance of SeekerRepository using MongoDB.
func NewMongoSeekerRepo() SeekerRepository {
	coll := database.MongoClient.Database(database.Name).Collection("seekers")
	repo := &MongoSeekerRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("seeker repo: %v", err))
	}
	return repo
}

func (r *MongoSeekerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSeekerRepo) Create(ctx context.Context, seeker *models.Seeker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	now := time.Now()
	seeker.CreatedAt = now
	seeker.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, seeker); err != nil {
		return fmt.Errorf("failed to insert seeker: %w", err)
	}
	return nil
}

func (r *MongoSeekerRepo) GetByID(ctx context.Context, id string) (*models.Seeker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var seeker models.Seeker
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&seeker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSeekerNotFound
		}
		return nil, fmt.Errorf("failed to fetch seeker with id %s: %w", id, err)
	}
	return &seeker, nil
}

func (r *MongoSeekerRepo) GetByEmail(ctx context.Context, email string) (*models.Seeker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var seeker models.Seeker
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&seeker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSeekerNotFound
		}
		return nil, fmt.Errorf("failed to fetch seeker with email %s: %w", email, err)
	}
	return &seeker, nil
}

func (r *MongoSeekerRepo) Update(ctx context.Context, seeker *models.Seeker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	seeker.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        seeker.Name,
		"phoneNumber": seeker.PhoneNumber,
		"address":     seeker.Address,
		"locationGeo": seeker.LocationGeo,
		"updatedAt":   seeker.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": seeker.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update seeker %s: %w", seeker.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSeekerNotFound
	}
	return nil
}
