package routes

import (
	"carenest/handlers"
	"carenest/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		// Client and nanny endpoints require a valid bearer token.
		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware("client", "nanny"))
		authed.GET("", hb.ListMyBookingsHandler)
		authed.GET("/:id", hb.GetBookingHandler)
		authed.GET("/:id/modifications", hb.ListModificationsHandler)

		client := api.Group("")
		client.Use(middleware.JWTAuthMiddleware("client"))
		client.POST("", hb.ConfirmBookingHandler)
		client.POST("/:id/modifications", hb.CreateModificationHandler)

		// Lifecycle transitions and invoicing are operator actions.
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.PUT("/:id/activate", hb.ActivateBookingHandler)
		admin.PUT("/:id/complete", hb.CompleteBookingHandler)
		admin.GET("/:id/invoice", hb.PlacementInvoiceHandler)
	}
}
