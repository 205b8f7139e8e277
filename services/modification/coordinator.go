package modification

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "carenest/database/repository/booking"
	modificationRepo "carenest/database/repository/modification"
	"carenest/models"
	"carenest/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateRequest opens a new modification request in pending_admin_review,
// computing the price adjustment and snapshotting the old and new service sets.
// At most one non-terminal request may exist per booking.
func (c *DefaultApprovalCoordinator) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ModificationRequest, error) {
	booking, err := c.BookingRepo.GetByID(input.BookingID)
	if err != nil {
		return nil, err
	}
	if input.ClientID != booking.ClientID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != models.BookingStatusActive && booking.Status != models.BookingStatusConfirmed {
		return nil, ErrBookingNotActive
	}

	// Reject a second concurrent request instead of silently queuing it.
	if _, err := c.ModRepo.GetActiveByBookingID(input.BookingID); err == nil {
		return nil, ErrActiveRequestExists
	} else if !errors.Is(err, modificationRepo.ErrNotFound) {
		return nil, err
	}

	adjustment, err := priceAdjustment(booking, input.ModificationType, input.NewServices)
	if err != nil {
		return nil, err
	}

	oldValues := booking.ServicesSnapshot
	newValues := input.NewServices
	if input.ModificationType == models.ModificationCancellation {
		// Cancellation changes no services; both snapshots mirror the booking.
		newValues = oldValues
	}

	req := &models.ModificationRequest{
		ID:               uuid.New().String(),
		BookingID:        booking.ID,
		ClientID:         input.ClientID,
		ModificationType: input.ModificationType,
		OldValues:        oldValues,
		NewValues:        newValues,
		PriceAdjustment:  adjustment,
		Status:           models.ModStatusPendingAdminReview,
		ClientNotes:      input.ClientNotes,
	}
	if err := c.ModRepo.Create(req); err != nil {
		// A request created between the check above and this insert trips the
		// repository's unique active index.
		if errors.Is(err, modificationRepo.ErrActiveExists) {
			return nil, ErrActiveRequestExists
		}
		return nil, err
	}

	if err := c.Notifier.NotifyAdminsModificationCreated(ctx, req); err != nil {
		utils.GetLogger().Warn("failed to notify admins of new modification request",
			zap.String("requestID", req.ID), zap.Error(err))
	}
	return req, nil
}

// ReviewByAdmin resolves the admin hop. Approval moves the request to
// pending_nanny_response in a single conditional update and notifies the
// assigned nanny; rejection is terminal and requires admin notes.
func (c *DefaultApprovalCoordinator) ReviewByAdmin(ctx context.Context, requestID string, approve bool, adminNotes string) (*models.ModificationRequest, error) {
	req, err := c.ModRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	target := models.ModStatusAdminRejected
	if approve {
		target = models.ModStatusPendingNannyResponse
	}
	if req.Status != models.ModStatusPendingAdminReview {
		return nil, &InvalidTransitionError{Current: req.Status, Attempted: target}
	}
	if !approve && adminNotes == "" {
		return nil, ErrAdminNotesRequired
	}

	extra := bson.M{}
	if adminNotes != "" {
		extra["admin_notes"] = adminNotes
	}
	if err := c.casUpdate(req, models.ModStatusPendingAdminReview, target, extra); err != nil {
		return nil, err
	}
	req.Status = target
	req.AdminNotes = adminNotes

	if approve {
		booking, err := c.BookingRepo.GetByID(req.BookingID)
		if err != nil {
			utils.GetLogger().Error("approved modification request references missing booking",
				zap.String("requestID", req.ID), zap.Error(err))
			return req, nil
		}
		if err := c.Notifier.NotifyNannyModificationApproved(ctx, booking.NannyID, req); err != nil {
			utils.GetLogger().Warn("failed to notify nanny of approved modification request",
				zap.String("requestID", req.ID), zap.Error(err))
		}
	} else {
		c.notifyClient(ctx, req)
	}
	return req, nil
}

// RespondByNanny resolves the nanny hop. Acceptance mutates the booking exactly
// once (services snapshot replaced, recurring cost adjusted) before the client
// is notified; decline leaves the booking unchanged.
func (c *DefaultApprovalCoordinator) RespondByNanny(ctx context.Context, requestID string, accept bool, nannyNotes string) (*models.ModificationRequest, error) {
	req, err := c.ModRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	target := models.ModStatusNannyDeclined
	if accept {
		target = models.ModStatusNannyAccepted
	}
	// Acting before admin approval, or on a terminal request, is illegal.
	if req.Status != models.ModStatusPendingNannyResponse {
		return nil, &InvalidTransitionError{Current: req.Status, Attempted: target}
	}

	extra := bson.M{}
	if nannyNotes != "" {
		extra["nanny_notes"] = nannyNotes
	}
	if err := c.casUpdate(req, models.ModStatusPendingNannyResponse, target, extra); err != nil {
		return nil, err
	}
	req.Status = target
	req.NannyNotes = nannyNotes

	if accept {
		if err := c.applyToBooking(req); err != nil {
			// The request is already terminal; surface the inconsistency loudly.
			utils.GetLogger().Error("accepted modification request could not be applied to booking",
				zap.String("requestID", req.ID), zap.String("bookingID", req.BookingID), zap.Error(err))
			return req, fmt.Errorf("modification accepted but booking update failed: %w", err)
		}
	}
	c.notifyClient(ctx, req)
	return req, nil
}

// GetRequest returns a modification request by ID.
func (c *DefaultApprovalCoordinator) GetRequest(requestID string) (*models.ModificationRequest, error) {
	return c.ModRepo.GetByID(requestID)
}

// ListForBooking returns all modification requests against a booking.
func (c *DefaultApprovalCoordinator) ListForBooking(bookingID string) ([]models.ModificationRequest, error) {
	return c.ModRepo.ListByBookingID(bookingID)
}

// casUpdate performs the conditional status update, translating a status
// mismatch into a ConcurrencyConflictError carrying the fresh status.
func (c *DefaultApprovalCoordinator) casUpdate(req *models.ModificationRequest, from, to string, extra bson.M) error {
	err := c.ModRepo.UpdateStatus(req.ID, from, to, extra)
	if err == nil {
		return nil
	}
	if errors.Is(err, modificationRepo.ErrStatusMismatch) {
		current := "unknown"
		if fresh, getErr := c.ModRepo.GetByID(req.ID); getErr == nil {
			current = fresh.Status
		}
		return &ConcurrencyConflictError{RequestID: req.ID, Current: current}
	}
	return err
}

// applyToBooking commits an accepted request to its booking. Cancellations also
// close the booking; service changes swap the snapshot and adjust the cost.
func (c *DefaultApprovalCoordinator) applyToBooking(req *models.ModificationRequest) error {
	if err := c.BookingRepo.ApplyModification(req.BookingID, req.NewValues, req.PriceAdjustment); err != nil {
		return err
	}
	if req.ModificationType == models.ModificationCancellation {
		booking, err := c.BookingRepo.GetByID(req.BookingID)
		if err != nil {
			return err
		}
		if err := c.BookingRepo.UpdateStatus(req.BookingID, booking.Status, models.BookingStatusCancelled); err != nil &&
			!errors.Is(err, bookingRepo.ErrStatusMismatch) {
			return err
		}
	}
	return nil
}

func (c *DefaultApprovalCoordinator) notifyClient(ctx context.Context, req *models.ModificationRequest) {
	if err := c.Notifier.NotifyClientModificationResolved(ctx, req.ClientID, req); err != nil {
		utils.GetLogger().Warn("failed to notify client of modification outcome",
			zap.String("requestID", req.ID), zap.Error(err))
	}
}
