package handlers

import (
	"errors"
	"net/http"

	bookingRepo "carenest/database/repository/booking"
	modificationRepo "carenest/database/repository/modification"
	"carenest/models"
	"carenest/services/modification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModificationHandler serves the two-stage modification approval workflow.
type ModificationHandler struct {
	Coordinator modification.ApprovalCoordinator
	Logger      *zap.Logger
}

func NewModificationHandler(coordinator modification.ApprovalCoordinator, logger *zap.Logger) *ModificationHandler {
	return &ModificationHandler{Coordinator: coordinator, Logger: logger}
}

type createModificationRequest struct {
	ModificationType string                  `json:"modificationType"`
	NewServices      models.ServiceSelection `json:"newServices"`
	ClientNotes      string                  `json:"clientNotes"`
}

// CreateModificationHandler opens a modification request against a booking
// owned by the authenticated client.
func (h *ModificationHandler) CreateModificationHandler(c *gin.Context) {
	bookingID := c.Param("id")
	clientID := c.GetString("subjectID")

	var req createModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Coordinator.CreateRequest(c.Request.Context(), modification.CreateRequestInput{
		BookingID:        bookingID,
		ClientID:         clientID,
		ModificationType: req.ModificationType,
		NewServices:      req.NewServices,
		ClientNotes:      req.ClientNotes,
	})
	if err != nil {
		h.writeModificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

type reviewRequest struct {
	Approve    bool   `json:"approve"`
	AdminNotes string `json:"adminNotes"`
}

// ReviewModificationHandler records the admin decision on a pending request.
func (h *ModificationHandler) ReviewModificationHandler(c *gin.Context) {
	requestID := c.Param("id")

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Coordinator.ReviewByAdmin(c.Request.Context(), requestID, req.Approve, req.AdminNotes)
	if err != nil {
		h.writeModificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

type respondRequest struct {
	Accept     bool   `json:"accept"`
	NannyNotes string `json:"nannyNotes"`
}

// RespondModificationHandler records the nanny decision on an admin-approved
// request. Acceptance applies the price adjustment to the parent booking.
func (h *ModificationHandler) RespondModificationHandler(c *gin.Context) {
	requestID := c.Param("id")

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Coordinator.RespondByNanny(c.Request.Context(), requestID, req.Accept, req.NannyNotes)
	if err != nil {
		h.writeModificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetModificationHandler fetches a single modification request.
func (h *ModificationHandler) GetModificationHandler(c *gin.Context) {
	requestID := c.Param("id")
	req, err := h.Coordinator.GetRequest(requestID)
	if err != nil {
		h.writeModificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListModificationsHandler lists all modification requests for a booking.
func (h *ModificationHandler) ListModificationsHandler(c *gin.Context) {
	bookingID := c.Param("id")
	requests, err := h.Coordinator.ListForBooking(bookingID)
	if err != nil {
		h.writeModificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// writeModificationError maps coordinator failures onto HTTP statuses. Guard
// failures are client errors; lost optimistic races are conflicts.
func (h *ModificationHandler) writeModificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, modificationRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "modification request not found"})
	case errors.Is(err, bookingRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, modification.ErrBookingNotActive),
		errors.Is(err, modification.ErrUnknownModificationType),
		errors.Is(err, modification.ErrAdminNotesRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, modification.ErrNotBookingOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, modification.ErrActiveRequestExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if cce, ok := modification.AsConcurrencyConflict(err); ok {
			c.JSON(http.StatusConflict, gin.H{"error": "request was already processed", "currentStatus": cce.Current})
			return
		}
		if ite, ok := modification.AsInvalidTransition(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ite.Error(), "currentStatus": ite.Current})
			return
		}
		h.Logger.Error("modification workflow error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
