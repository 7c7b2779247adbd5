package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NishantRana07/Krishi-Mitra/internal/event"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/notify"
	"github.com/NishantRana07/Krishi-Mitra/internal/services"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
)

// MonitorHandler runs the monitoring analysis and owns its side effects:
// persisting the snapshot and alerts, publishing alert events and sending
// alert mail. All side effects are best effort; only the analysis result
// shapes the response.
type MonitorHandler struct {
	advisoryService services.IAdvisoryService
	store           *storage.Store
	publisher       *event.AlertPublisher
	emailService    *notify.EmailService
}

func NewMonitorHandler(advisoryService services.IAdvisoryService, store *storage.Store, publisher *event.AlertPublisher, emailService *notify.EmailService) *MonitorHandler {
	return &MonitorHandler{
		advisoryService: advisoryService,
		store:           store,
		publisher:       publisher,
		emailService:    emailService,
	}
}

func (h *MonitorHandler) RegisterRoutes(router *gin.Engine) {
	monitorGroup := router.Group("/api/v1")
	monitorGroup.POST("/monitor-crops", h.MonitorCrops)
}

func (h *MonitorHandler) MonitorCrops(c *gin.Context) {
	var req models.MonitorCropsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Crops) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No crops to monitor"})
		return
	}

	analysis, err := h.advisoryService.MonitorCrops(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Monitoring error, returning basic response: %v", err)
		analysis = services.FallbackMonitoringAnalysis()
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	alerts := h.persistFindings(c, &req, analysis, timestamp)
	h.notify(c, alerts)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"analysis":  analysis,
		"timestamp": timestamp,
	})
}

// persistFindings saves one monitoring snapshot per crop plus an alert record
// per finding. Findings are attached to the crop named in the message, or to
// the first crop when no name matches.
func (h *MonitorHandler) persistFindings(c *gin.Context, req *models.MonitorCropsRequest, analysis *models.MonitoringAnalysis, timestamp string) []models.Alert {
	ctx := c.Request.Context()

	alerts := make([]models.Alert, 0, len(analysis.Alerts))
	for _, finding := range analysis.Alerts {
		alert := models.Alert{
			ID:        uuid.NewString(),
			CropID:    matchCrop(req.Crops, finding.Message),
			Type:      finding.Type,
			Severity:  finding.Severity,
			Message:   finding.Message,
			Timestamp: timestamp,
		}
		if err := h.store.SaveAlert(ctx, &alert); err != nil {
			log.Printf("Error saving alert for crop %s: %v", alert.CropID, err)
			continue
		}
		alerts = append(alerts, alert)

		if err := h.publisher.PublishEvent(ctx, event.AlertEvent{
			ID:        uuid.NewString(),
			EventType: event.AlertRaised,
			CropID:    alert.CropID,
			AlertID:   alert.ID,
			Severity:  string(alert.Severity),
		}); err != nil {
			log.Printf("Error publishing alert event %s: %v", alert.ID, err)
		}
	}

	for _, crop := range req.Crops {
		snapshot := &models.MonitoringData{
			CropID:       crop.ID,
			Timestamp:    timestamp,
			SoilMoisture: numberFrom(req.SoilData, "moisture"),
			SoilPH:       crop.SoilPH,
			Temperature:  numberFrom(req.WeatherData, "temperature"),
			Humidity:     numberFrom(req.WeatherData, "humidity"),
			Rainfall:     numberFrom(req.WeatherData, "rainfall"),
			Alerts:       alertsForCrop(alerts, crop.ID),
		}
		if err := h.store.SaveMonitoringData(ctx, snapshot); err != nil {
			log.Printf("Error saving monitoring snapshot for crop %s: %v", crop.ID, err)
		}
	}

	return alerts
}

// notify mails warning and critical alerts to the onboarded farmer, marking
// each alert once delivery succeeds.
func (h *MonitorHandler) notify(c *gin.Context, alerts []models.Alert) {
	ctx := c.Request.Context()

	profile, err := h.store.GetFarmerProfile(ctx)
	if err != nil || profile.Email == "" {
		return
	}

	for _, alert := range alerts {
		if alert.Severity == models.SeverityInfo {
			continue
		}

		crop := models.Crop{Name: "Your crop"}
		if found, err := h.store.GetCrop(ctx, alert.CropID); err == nil && found != nil {
			crop = *found
		}

		if h.emailService.SendAlertEmail(profile.Email, alert, crop, profile.Name) {
			if err := h.store.MarkAlertEmailSent(ctx, alert.ID); err != nil {
				log.Printf("Error marking alert %s as emailed: %v", alert.ID, err)
			}
		}
	}
}

func matchCrop(crops []models.Crop, message string) string {
	if len(crops) == 0 {
		return ""
	}
	for _, crop := range crops {
		if crop.Name != "" && containsFold(message, crop.Name) {
			return crop.ID
		}
	}
	return crops[0].ID
}

func alertsForCrop(alerts []models.Alert, cropID string) []models.Alert {
	matched := make([]models.Alert, 0)
	for _, alert := range alerts {
		if alert.CropID == cropID {
			matched = append(matched, alert)
		}
	}
	return matched
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func numberFrom(data map[string]any, key string) float64 {
	if data == nil {
		return 0
	}
	if value, ok := data[key].(float64); ok {
		return value
	}
	return 0
}
