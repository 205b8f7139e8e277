package handlers

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"carenest/models"
	"carenest/services/booking"
	"carenest/services/pricing"
	"carenest/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PricingHandler serves quote and classification endpoints.
type PricingHandler struct {
	Svc    booking.BookingService
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewPricingHandler(svc booking.BookingService, cache *redis.Client, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{Svc: svc, Cache: cache, Logger: logger}
}

// quoteRequest is the wire form of a pricing request. Dates arrive as plain
// YYYY-MM-DD strings; the engine interprets them in SAST.
type quoteRequest struct {
	BookingType   string                  `json:"bookingType"`
	TotalHours    float64                 `json:"totalHours"`
	TotalDays     int                     `json:"totalDays"`
	SelectedDates []string                `json:"selectedDates"`
	Services      models.ServiceSelection `json:"services"`
	HomeSize      string                  `json:"homeSize"`
}

func (req *quoteRequest) toDraft() (models.BookingDraft, error) {
	draft := models.BookingDraft{
		Category:     models.Category(req.BookingType),
		TotalHours:   req.TotalHours,
		DayCount:     req.TotalDays,
		Services:     req.Services,
		HomeSizeTier: req.HomeSize,
	}
	for _, d := range req.SelectedDates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return draft, pricing.NewValidationError("selectedDates must be YYYY-MM-DD")
		}
		draft.SelectedDates = append(draft.SelectedDates, parsed)
	}
	return draft, nil
}

// cacheKey memoizes by the exact request payload; identical inputs always
// price identically, so a hash of the canonical JSON is a safe key.
func (req *quoteRequest) cacheKey() string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha1.Sum(data)
	return utils.QuoteCachePrefix + hex.EncodeToString(sum[:])
}

// QuoteHandler prices a booking draft without persisting anything.
func (h *PricingHandler) QuoteHandler(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	key := req.cacheKey()
	if key != "" && h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	draft, err := req.toDraft()
	if err == nil {
		var breakdown *models.PriceBreakdown
		breakdown, err = h.Svc.Quote(draft)
		if err == nil {
			payload, mErr := json.Marshal(breakdown)
			if mErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode quote"})
				return
			}
			if key != "" && h.Cache != nil {
				if cErr := h.Cache.Set(ctx, key, payload, utils.QuoteCacheTTL).Err(); cErr != nil {
					h.Logger.Warn("failed to cache quote", zap.Error(cErr))
				}
			}
			c.Data(http.StatusOK, "application/json", payload)
			return
		}
	}

	if ve, ok := pricing.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "code": ve.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to price booking", "details": err.Error()})
}

// classifyRequest mirrors pricing.ClassifierInput on the wire.
type classifyRequest struct {
	DurationType      string            `json:"durationType"`
	BookingSubType    string            `json:"bookingSubType"`
	LivingArrangement string            `json:"livingArrangement"`
	HomeSize          string            `json:"homeSize"`
	ContextHints      map[string]string `json:"contextHints"`
}

// ClassifyHandler resolves a booking category from partial intake signals.
func (h *PricingHandler) ClassifyHandler(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	category := pricing.Classify(pricing.ClassifierInput{
		DurationType:      req.DurationType,
		BookingSubType:    req.BookingSubType,
		LivingArrangement: req.LivingArrangement,
		HomeSize:          req.HomeSize,
		ContextHints:      req.ContextHints,
	})

	c.JSON(http.StatusOK, gin.H{"category": category})
}
