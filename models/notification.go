package models

// ReminderPayload is the queued payload for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	NannyID   string `json:"nanny_id"`
}
