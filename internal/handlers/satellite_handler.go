package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/services"
	"github.com/NishantRana07/Krishi-Mitra/internal/utils"
)

type SatelliteHandler struct {
	satelliteService services.ISatelliteService
}

func NewSatelliteHandler(satelliteService services.ISatelliteService) *SatelliteHandler {
	return &SatelliteHandler{satelliteService: satelliteService}
}

func (h *SatelliteHandler) RegisterRoutes(router *gin.Engine) {
	satelliteGroup := router.Group("/api/v1")
	satelliteGroup.POST("/satellite", h.PostSatelliteData)
	satelliteGroup.GET("/satellite", h.GetSatelliteData)
}

// PostSatelliteData dispatches on the requested data type. Boundary checks
// additionally require a polygon id.
func (h *SatelliteHandler) PostSatelliteData(c *gin.Context) {
	var req models.SatelliteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Lat == 0 || req.Lon == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude required"})
		return
	}

	var data any
	switch req.Type {
	case "ndvi":
		data = h.satelliteService.GetNDVIData(req.Lat, req.Lon)
	case "soil-moisture":
		data = h.satelliteService.GetSoilMoistureData(req.Lat, req.Lon)
	case "heat-stress":
		data = h.satelliteService.GetHeatStressData(req.Lat, req.Lon)
	case "crop-detection":
		data = h.satelliteService.DetectCropType(req.Lat, req.Lon)
	case "boundary-check":
		if req.PolygonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Polygon ID required for boundary check"})
			return
		}
		data = h.satelliteService.DetectBoundaryChanges(req.PolygonID)
	default:
		data = h.satelliteService.GetSatelliteInsights(req.Lat, req.Lon)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"source":    "Satellite API (OpenWeather + Simulated Sentinel Data)",
	})
}

// GetSatelliteData is the query-string variant; it serves the read-only
// subset of types.
func (h *SatelliteHandler) GetSatelliteData(c *gin.Context) {
	lat, errLat := utils.GetQueryParamAsFloat(c, "lat", 0)
	lon, errLon := utils.GetQueryParamAsFloat(c, "lon", 0)
	if errLat != nil || errLon != nil || lat == 0 || lon == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude required"})
		return
	}

	var data any
	switch c.DefaultQuery("type", "full") {
	case "ndvi":
		data = h.satelliteService.GetNDVIData(lat, lon)
	case "soil-moisture":
		data = h.satelliteService.GetSoilMoistureData(lat, lon)
	case "heat-stress":
		data = h.satelliteService.GetHeatStressData(lat, lon)
	default:
		data = h.satelliteService.GetSatelliteInsights(lat, lon)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
