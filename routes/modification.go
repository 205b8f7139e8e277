package routes

import (
	"carenest/handlers"
	"carenest/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterModificationRoutes registers the modification review endpoints.
// Creation and listing live under the parent booking in RegisterBookingRoutes.
func RegisterModificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/modifications")
	{
		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware("client", "nanny"))
		authed.GET("/:id", hb.GetModificationHandler)

		nanny := api.Group("")
		nanny.Use(middleware.JWTAuthMiddleware("nanny"))
		nanny.PUT("/:id/respond", hb.RespondModificationHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.PUT("/:id/review", hb.ReviewModificationHandler)
	}
}
