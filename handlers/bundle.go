package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so routes can be
// registered without importing every handler constructor.
type HandlerBundle struct {
	// Pricing endpoints.
	QuoteHandler    gin.HandlerFunc
	ClassifyHandler gin.HandlerFunc

	// Booking endpoints.
	ConfirmBookingHandler   gin.HandlerFunc
	GetBookingHandler       gin.HandlerFunc
	ListMyBookingsHandler   gin.HandlerFunc
	ActivateBookingHandler  gin.HandlerFunc
	CompleteBookingHandler  gin.HandlerFunc
	PlacementInvoiceHandler gin.HandlerFunc

	// Modification endpoints.
	CreateModificationHandler  gin.HandlerFunc
	GetModificationHandler     gin.HandlerFunc
	ListModificationsHandler   gin.HandlerFunc
	ReviewModificationHandler  gin.HandlerFunc
	RespondModificationHandler gin.HandlerFunc
}
