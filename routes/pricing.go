package routes

import (
	"carenest/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPricingRoutes registers the quote and classification endpoints.
// Quotes are public so the intake flow can price drafts before signup.
func RegisterPricingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pricing")
	{
		api.POST("/quote", hb.QuoteHandler)
		api.POST("/classify", hb.ClassifyHandler)
	}
}
