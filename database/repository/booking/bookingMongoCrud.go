// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"fmt"
	"time"

	"carenest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByClientID retrieves all bookings made by a client.
func (r *MongoBookingRepo) GetByClientID(clientID string) ([]models.Booking, error) {
	return r.findAll(bson.M{"client_id": clientID})
}

// GetByNannyID retrieves all bookings assigned to a nanny.
func (r *MongoBookingRepo) GetByNannyID(nannyID string) ([]models.Booking, error) {
	return r.findAll(bson.M{"nanny_id": nannyID})
}

func (r *MongoBookingRepo) findAll(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
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

// UpdateStatus moves a booking from an expected status to a new one. The filter
// on the current status makes the update conditional, so a concurrent writer
// that already changed the status causes ErrStatusMismatch instead of a
// silent double-write.
func (r *MongoBookingRepo) UpdateStatus(id, from, to string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		if _, getErr := r.GetByID(id); getErr != nil {
			return ErrNotFound
		}
		return ErrStatusMismatch
	}
	return nil
}

// ApplyModification replaces the services snapshot and adjusts the recurring
// cost in one update, so an accepted modification mutates the booking exactly
// once.
func (r *MongoBookingRepo) ApplyModification(id string, services models.ServiceSelection, costDelta float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$set": bson.M{"services_snapshot": services, "updated_at": time.Now()},
		"$inc": bson.M{"total_cost": costDelta},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to apply modification to booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
