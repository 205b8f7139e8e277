// File: database/repository/modification/modificationMongoCrud.go
package modificationRepo

import (
	"fmt"
	"time"

	"carenest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// nonTerminalStatuses are the statuses an in-flight request can hold.
var nonTerminalStatuses = []string{
	models.ModStatusPendingAdminReview,
	models.ModStatusAdminApproved,
	models.ModStatusPendingNannyResponse,
}

// Create inserts a new modification request document. The request is marked
// active so the partial unique index rejects a second in-flight request for
// the same booking, including one racing this insert.
func (r *MongoModificationRepo) Create(req *models.ModificationRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Active = !models.IsTerminalModStatus(req.Status)

	_, err := r.coll.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return ErrActiveExists
	}
	if err != nil {
		return fmt.Errorf("failed to create modification request: %w", err)
	}
	return nil
}

// GetByID retrieves a modification request by its unique ID.
func (r *MongoModificationRepo) GetByID(id string) (*models.ModificationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ModificationRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modification request with id %s: %w", id, err)
	}
	return &req, nil
}

// GetActiveByBookingID returns the booking's non-terminal request, if any.
func (r *MongoModificationRepo) GetActiveByBookingID(bookingID string) (*models.ModificationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"booking_id": bookingID,
		"status":     bson.M{"$in": nonTerminalStatuses},
	}

	var req models.ModificationRequest
	err := r.coll.FindOne(ctx, filter).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active modification request for booking %s: %w", bookingID, err)
	}
	return &req, nil
}

// ListByBookingID retrieves all modification requests against a booking,
// newest first.
func (r *MongoModificationRepo) ListByBookingID(bookingID string) ([]models.ModificationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to query modification requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ModificationRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode modification requests: %w", err)
	}
	return reqs, nil
}

// UpdateStatus moves a request from an expected status to a new one. Filtering
// on the current status makes this a compare-and-swap: if another actor already
// resolved the request, MatchedCount is zero and ErrStatusMismatch is returned
// with no write performed.
func (r *MongoModificationRepo) UpdateStatus(id, from, to string, extra bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": to, "updated_at": time.Now()}
	if models.IsTerminalModStatus(to) {
		// Release the booking's active slot so a new request may be opened.
		set["active"] = false
	}
	for k, v := range extra {
		set[k] = v
	}

	filter := bson.M{"id": id, "status": from}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status of modification request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		if _, getErr := r.GetByID(id); getErr != nil {
			return ErrNotFound
		}
		return ErrStatusMismatch
	}
	return nil
}
