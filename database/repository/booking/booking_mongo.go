package bookingRepo

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

// ErrBookingNotFound is returned when a lookup matches no booking.
var ErrBookingNotFound = errors.New("booking not found")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.Name).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repo: %v", err))
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_provider_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "service_seeker_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "confirmation_deadline", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) findByFilter(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) FindActiveByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.findByFilter(ctx, bson.M{
		"service_provider_id": providerID,
		"status":              bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
	})
}

func (r *MongoBookingRepo) FindByProviderAndStatus(ctx context.Context, providerID, status string) ([]models.Booking, error) {
	return r.findByFilter(ctx, bson.M{"service_provider_id": providerID, "status": status})
}

func (r *MongoBookingRepo) FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.findByFilter(ctx, bson.M{"service_provider_id": providerID})
}

func (r *MongoBookingRepo) FindBySeeker(ctx context.Context, seekerID string) ([]models.Booking, error) {
	return r.findByFilter(ctx, bson.M{"service_seeker_id": seekerID})
}

// MarkConfirmed conditionally flips a Pending booking to Confirmed. A
// MatchedCount of zero means the booking was not Pending anymore (or does
// not exist); the caller distinguishes via GetByID.
func (r *MongoBookingRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": at,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to confirm booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) MarkRejected(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusRejected}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reject booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) MarkCancelled(ctx context.Context, id string, at time.Time, note string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": bson.M{
		"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed},
	}}
	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": at,
		"notes":        note,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{
		"status":                models.BookingStatusPending,
		"confirmation_deadline": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
		"notes":        "Cancelled automatically: confirmation deadline passed",
	}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
