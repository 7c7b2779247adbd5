package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
	"github.com/NishantRana07/Krishi-Mitra/internal/utils"
)

// FarmHandler is the persistence surface: farmer profile, crops, alerts and
// monitoring history.
type FarmHandler struct {
	store *storage.Store
}

func NewFarmHandler(store *storage.Store) *FarmHandler {
	return &FarmHandler{store: store}
}

func (h *FarmHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/checkhealth", h.CheckHealth)

	farmGroup := router.Group("/api/v1")
	farmGroup.GET("/farmer/profile", h.GetProfile)
	farmGroup.PUT("/farmer/profile", h.SaveProfile)
	farmGroup.DELETE("/farmer/profile", h.DeleteProfile)
	farmGroup.GET("/crops", h.ListCrops)
	farmGroup.POST("/crops", h.SaveCrop)
	farmGroup.GET("/crops/:id", h.GetCrop)
	farmGroup.PUT("/crops/:id", h.UpdateCrop)
	farmGroup.DELETE("/crops/:id", h.DeleteCrop)
	farmGroup.GET("/alerts", h.ListAlerts)
	farmGroup.POST("/alerts/:id/resolve", h.ResolveAlert)
	farmGroup.GET("/monitoring", h.GetMonitoringHistory)
}

func (h *FarmHandler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Server is running"})
}

func (h *FarmHandler) GetProfile(c *gin.Context) {
	profile, err := h.store.GetFarmerProfile(c.Request.Context())
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			errorResponse := utils.CreateErrorResponse("Not Found", "Farmer profile not found")
			c.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load farmer profile")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profile))
}

func (h *FarmHandler) SaveProfile(c *gin.Context) {
	var profile models.FarmerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Invalid profile payload")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if profile.Name == "" {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Name is required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if profile.Email != "" {
		if ok, _ := utils.ValidateEmail(profile.Email); !ok {
			errorResponse := utils.CreateErrorResponse("Bad Request", "Email format incorrect")
			c.JSON(http.StatusBadRequest, errorResponse)
			return
		}
	}

	if err := h.store.SaveFarmerProfile(c.Request.Context(), &profile); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to save farmer profile")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	if err := h.store.SetOnboardingComplete(c.Request.Context()); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to complete onboarding")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profile))
}

// DeleteProfile wipes every collection, matching the legacy client's
// "clear all data" action.
func (h *FarmHandler) DeleteProfile(c *gin.Context) {
	if err := h.store.ClearFarmerData(c.Request.Context()); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to clear farmer data")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"cleared": true}))
}

func (h *FarmHandler) ListCrops(c *gin.Context) {
	crops, err := h.store.GetAllCrops(c.Request.Context())
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load crops")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(crops))
}

func (h *FarmHandler) GetCrop(c *gin.Context) {
	crop, err := h.store.GetCrop(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load crop")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}
	if crop == nil {
		errorResponse := utils.CreateErrorResponse("Not Found", "Crop not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(crop))
}

func (h *FarmHandler) SaveCrop(c *gin.Context) {
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Invalid crop payload")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if crop.Name == "" {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Crop name is required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}
	if crop.CurrentStage != "" && !crop.CurrentStage.IsValid() {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Invalid crop stage")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	// Legacy clients generated millisecond-timestamp ids; keep the format
	// for crops created server-side.
	if crop.ID == "" {
		crop.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if crop.CurrentStage == "" {
		crop.CurrentStage = models.StagePlanted
	}
	if crop.HealthStatus == "" {
		crop.HealthStatus = models.HealthHealthy
	}

	if err := h.store.SaveCrop(c.Request.Context(), &crop); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to save crop")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(crop))
}

func (h *FarmHandler) UpdateCrop(c *gin.Context) {
	var crop models.Crop
	if err := c.ShouldBindJSON(&crop); err != nil {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Invalid crop payload")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	crop.ID = c.Param("id")
	existing, err := h.store.GetCrop(c.Request.Context(), crop.ID)
	if err != nil || existing == nil {
		errorResponse := utils.CreateErrorResponse("Not Found", "Crop not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}
	if crop.CurrentStage != "" && !crop.CurrentStage.IsValid() {
		errorResponse := utils.CreateErrorResponse("Bad Request", "Invalid crop stage")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := h.store.SaveCrop(c.Request.Context(), &crop); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to update crop")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(crop))
}

func (h *FarmHandler) DeleteCrop(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteCrop(c.Request.Context(), id); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to delete crop")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"deleted": id}))
}

func (h *FarmHandler) ListAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		alerts []models.Alert
		err    error
	)
	switch c.Query("resolved") {
	case "false":
		alerts, err = h.store.GetUnresolvedAlerts(ctx)
	default:
		alerts, err = h.store.GetAllAlerts(ctx)
	}
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load alerts")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(alerts))
}

func (h *FarmHandler) ResolveAlert(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.ResolveAlert(c.Request.Context(), id); err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", fmt.Sprintf("Failed to resolve alert %s", id))
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"resolved": id}))
}

func (h *FarmHandler) GetMonitoringHistory(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		history []models.MonitoringData
		err     error
	)
	if cropID := c.Query("cropId"); cropID != "" {
		history, err = h.store.GetMonitoringDataForCrop(ctx, cropID)
	} else {
		history, err = h.store.GetAllMonitoringData(ctx)
	}
	if err != nil {
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load monitoring history")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(history))
}
