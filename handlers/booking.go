package handlers

import (
	"errors"
	"net/http"
	"time"

	bookingRepo "carenest/database/repository/booking"
	"carenest/services/booking"
	"carenest/services/pricing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type confirmBookingRequest struct {
	NannyID     string       `json:"nannyId"`
	Draft       quoteRequest `json:"draft"`
	StartAt     time.Time    `json:"startAt"`
	BaseRate    float64      `json:"baseRate"`
	MonthlyCost float64      `json:"monthlyCost"`
}

// ConfirmBookingHandler prices and persists a booking for the authenticated client.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	clientID := c.GetString("subjectID")
	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.NannyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nannyId is required"})
		return
	}

	draft, err := req.Draft.toDraft()
	if err != nil {
		if ve, ok := pricing.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "code": ve.Code})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Svc.ConfirmBooking(c.Request.Context(), booking.ConfirmBookingInput{
		ClientID:    clientID,
		NannyID:     req.NannyID,
		Draft:       draft,
		StartAt:     req.StartAt,
		BaseRate:    req.BaseRate,
		MonthlyCost: req.MonthlyCost,
	})
	if err != nil {
		if ve, ok := pricing.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "code": ve.Code})
			return
		}
		h.Logger.Error("failed to confirm booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm booking"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler fetches a single booking. Clients and nannies may only
// read their own bookings; admin tokens may read any.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")
	bk, err := h.Svc.GetBooking(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	if !c.GetBool("isAdmin") {
		subject := c.GetString("subjectID")
		if bk.ClientID != subject && bk.NannyID != subject {
			c.JSON(http.StatusForbidden, gin.H{"error": "booking does not belong to you"})
			return
		}
	}

	c.JSON(http.StatusOK, bk)
}

// ListMyBookingsHandler lists the caller's bookings by their token role.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	subject := c.GetString("subjectID")

	var err error
	var bookings interface{}
	switch c.GetString("role") {
	case "nanny":
		bookings, err = h.Svc.ListByNanny(subject)
	default:
		bookings, err = h.Svc.ListByClient(subject)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ActivateBookingHandler moves a confirmed booking into active service.
func (h *BookingHandler) ActivateBookingHandler(c *gin.Context) {
	h.transition(c, h.Svc.ActivateBooking)
}

// CompleteBookingHandler closes out an active booking.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.transition(c, h.Svc.CompleteBooking)
}

func (h *BookingHandler) transition(c *gin.Context, fn func(id string) error) {
	id := c.Param("id")
	if err := fn(id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		var se *booking.StatusError
		if errors.As(err, &se) {
			c.JSON(http.StatusConflict, gin.H{"error": se.Error()})
			return
		}
		h.Logger.Error("booking transition failed", zap.String("bookingID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// PlacementInvoiceHandler issues the placement-fee invoice for a long-term booking.
func (h *BookingHandler) PlacementInvoiceHandler(c *gin.Context) {
	id := c.Param("id")
	invoice, err := h.Svc.GeneratePlacementInvoice(id)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrNotLongTerm):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "placement invoices apply to long-term bookings only"})
		default:
			h.Logger.Error("failed to generate invoice", zap.String("bookingID", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}
