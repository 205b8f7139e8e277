package notification

import (
	"context"
	"fmt"

	"carenest/models"
	"carenest/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
)

// adminTopic is the FCM topic every admin device subscribes to.
const adminTopic = "carenest-admins"

// NotificationService defines methods for sending FCM pushes around the booking
// and modification workflows. Delivery failures are side effects only: callers
// log them and never roll back state.
type NotificationService interface {
	NotifyAdminsModificationCreated(ctx context.Context, req *models.ModificationRequest) error
	NotifyNannyModificationApproved(ctx context.Context, nannyID string, req *models.ModificationRequest) error
	NotifyClientModificationResolved(ctx context.Context, clientID string, req *models.ModificationRequest) error
	NotifyClientBookingConfirmed(ctx context.Context, booking *models.Booking) error
	NotifyNannyBookingReminder(ctx context.Context, booking *models.Booking) error
}

// DefaultNotificationService is the production implementation. Device tokens
// are written to the cache by the auth layer under "fcm:<role>:<id>".
type DefaultNotificationService struct {
	Cache *redis.Client
}

func NewDefaultNotificationService(cache *redis.Client) (*DefaultNotificationService, error) {
	if cache == nil {
		return nil, fmt.Errorf("notification service initialization error: cache client is nil")
	}
	return &DefaultNotificationService{Cache: cache}, nil
}

// tokenFor looks up the cached FCM token for a recipient.
func (s *DefaultNotificationService) tokenFor(ctx context.Context, role, id string) (string, error) {
	token, err := s.Cache.Get(ctx, "fcm:"+role+":"+id).Result()
	if err != nil {
		return "", fmt.Errorf("no FCM token for %s %s: %w", role, id, err)
	}
	return token, nil
}

// sendPush delivers a push to a single device token.
func (s *DefaultNotificationService) sendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyAdminsModificationCreated broadcasts a new modification request to the
// admin topic for review.
func (s *DefaultNotificationService) NotifyAdminsModificationCreated(ctx context.Context, req *models.ModificationRequest) error {
	msg := &messaging.Message{
		Topic: adminTopic,
		Notification: &messaging.Notification{
			Title: "New booking modification request",
			Body:  fmt.Sprintf("A client requested a %s on booking %s.", req.ModificationType, req.BookingID),
		},
		Data: map[string]string{
			"type":       "modification_created",
			"request_id": req.ID,
			"booking_id": req.BookingID,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to notify admins: %w", err)
	}
	return nil
}

// NotifyNannyModificationApproved tells the assigned nanny a request awaits
// their response.
func (s *DefaultNotificationService) NotifyNannyModificationApproved(ctx context.Context, nannyID string, req *models.ModificationRequest) error {
	token, err := s.tokenFor(ctx, "nanny", nannyID)
	if err != nil {
		return err
	}
	return s.sendPush(ctx, token,
		"Booking change awaiting your response",
		fmt.Sprintf("An approved %s request on booking %s needs your acceptance.", req.ModificationType, req.BookingID),
		map[string]string{
			"type":       "modification_approved",
			"request_id": req.ID,
			"booking_id": req.BookingID,
			"role":       "nanny",
		},
	)
}

// NotifyClientModificationResolved tells the originating client how their
// request ended.
func (s *DefaultNotificationService) NotifyClientModificationResolved(ctx context.Context, clientID string, req *models.ModificationRequest) error {
	token, err := s.tokenFor(ctx, "client", clientID)
	if err != nil {
		return err
	}
	var body string
	switch req.Status {
	case models.ModStatusNannyAccepted:
		body = fmt.Sprintf("Your %s request was accepted. Your booking has been updated.", req.ModificationType)
	case models.ModStatusNannyDeclined:
		body = fmt.Sprintf("Your %s request was declined by the nanny.", req.ModificationType)
	case models.ModStatusAdminRejected:
		body = fmt.Sprintf("Your %s request was not approved: %s", req.ModificationType, req.AdminNotes)
	default:
		body = fmt.Sprintf("Your %s request was updated.", req.ModificationType)
	}
	return s.sendPush(ctx, token, "Booking modification update", body, map[string]string{
		"type":       "modification_resolved",
		"request_id": req.ID,
		"booking_id": req.BookingID,
		"status":     req.Status,
		"role":       "client",
	})
}

// NotifyClientBookingConfirmed confirms a new booking to its client.
func (s *DefaultNotificationService) NotifyClientBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	token, err := s.tokenFor(ctx, "client", booking.ClientID)
	if err != nil {
		return err
	}
	return s.sendPush(ctx, token,
		"Booking confirmed 🎉",
		fmt.Sprintf("Your %s booking is confirmed at R%.2f.", booking.Category, booking.TotalCost),
		map[string]string{
			"type":       "booking_confirmed",
			"booking_id": booking.ID,
			"role":       "client",
		},
	)
}

// NotifyNannyBookingReminder reminds the assigned nanny about an upcoming booking.
func (s *DefaultNotificationService) NotifyNannyBookingReminder(ctx context.Context, booking *models.Booking) error {
	token, err := s.tokenFor(ctx, "nanny", booking.NannyID)
	if err != nil {
		return err
	}
	return s.sendPush(ctx, token,
		"Upcoming booking reminder 🗓️",
		fmt.Sprintf("You have an upcoming %s booking. Check your schedule for details.", booking.Category),
		map[string]string{
			"type":       "booking_reminder",
			"booking_id": booking.ID,
			"role":       "nanny",
		},
	)
}
