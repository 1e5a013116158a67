package bookingRepo

import (
	"context"
	"fmt"

	"carebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTransactional inserts a booking inside a Mongo session transaction.
// The workflow's conflict pre-check runs before this call; wrapping the
// insert means a concurrent second writer either observes the committed
// booking on its own pre-check or this transaction aborts cleanly, and the
// accept-time re-check closes the residual window between check and insert.
func (r *MongoBookingRepo) CreateTransactional(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
