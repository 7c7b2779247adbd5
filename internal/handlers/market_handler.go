package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/services"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
	"github.com/NishantRana07/Krishi-Mitra/internal/utils"
)

// MarketHandler serves both price surfaces: the AI-generated market
// intelligence (POST) and real data.gov.in mandi records (GET).
type MarketHandler struct {
	advisoryService services.IAdvisoryService
	mandiService    services.IMandiService
	store           *storage.Store
}

func NewMarketHandler(advisoryService services.IAdvisoryService, mandiService services.IMandiService, store *storage.Store) *MarketHandler {
	return &MarketHandler{
		advisoryService: advisoryService,
		mandiService:    mandiService,
		store:           store,
	}
}

func (h *MarketHandler) RegisterRoutes(router *gin.Engine) {
	marketGroup := router.Group("/api/v1")
	marketGroup.POST("/market-prices", h.GenerateMarketPrices)
	marketGroup.GET("/market-prices", h.GetMandiPrices)
	marketGroup.GET("/market-prices/history", h.GetPriceHistory)
	marketGroup.GET("/market-prices/trends", h.GetCommodityTrends)
}

// GenerateMarketPrices fans out one AI generation per crop; individual crop
// failures fall back to base prices inside the service, so only the outer
// analysis step can fail the request.
func (h *MarketHandler) GenerateMarketPrices(c *gin.Context) {
	var req models.MarketPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Crops) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Crops are required"})
		return
	}

	prices, analysis, err := h.advisoryService.GetMarketPrices(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Market prices error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch market prices",
			"message": err.Error(),
		})
		return
	}

	h.recordPriceHistory(c, prices)

	state := req.State
	if state == "" {
		state = "All States"
	}
	district := req.District
	if district == "" {
		district = "All Districts"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"prices":   prices,
			"analysis": analysis,
			"location": gin.H{
				"state":    state,
				"district": district,
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"source":    "Gemini AI - Powered Market Intelligence",
	})
}

// recordPriceHistory appends the average quotation per crop to the capped
// price history. Best effort; a storage failure never fails the request.
func (h *MarketHandler) recordPriceHistory(c *gin.Context, prices []models.CropPriceData) {
	for _, data := range prices {
		if len(data.RealPrices) == 0 {
			continue
		}
		top := data.RealPrices[0]
		entry := &models.MarketPrice{
			CropName: data.CropName,
			Price:    data.Trends.AveragePrice,
			Unit:     top.Unit,
			Market:   top.Market,
			Date:     top.Date,
			Trend:    models.TrendStable,
		}
		if err := h.store.SaveMarketPrice(c.Request.Context(), entry); err != nil {
			log.Printf("Error saving market price for %s: %v", data.CropName, err)
		}
	}
}

func (h *MarketHandler) GetMandiPrices(c *gin.Context) {
	commodity := c.Query("commodity")
	state := c.Query("state")
	district := c.Query("district")

	if commodity == "" {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Commodity is required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	records, err := h.mandiService.GetCommodityPrices(commodity, state, district)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to fetch mandi prices")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(records))
}

func (h *MarketHandler) GetCommodityTrends(c *gin.Context) {
	commodity := c.Query("commodity")
	state := c.Query("state")

	if commodity == "" {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Commodity is required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	trends, err := h.mandiService.GetCommodityTrends(commodity, state)
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to fetch commodity trends")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(trends))
}

func (h *MarketHandler) GetPriceHistory(c *gin.Context) {
	prices, err := h.store.GetAllMarketPrices(c.Request.Context())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load price history")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	if cropName := c.Query("crop"); cropName != "" {
		filtered := make([]models.MarketPrice, 0, len(prices))
		for _, price := range prices {
			if price.CropName == cropName {
				filtered = append(filtered, price)
			}
		}
		prices = filtered
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(prices))
}
