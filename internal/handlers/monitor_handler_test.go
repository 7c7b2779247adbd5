package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newMonitorRouter(service *stubAdvisoryService, store *storage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewMonitorHandler(service, store, nil, nil).RegisterRoutes(router)
	return router
}

func monitorRequestBody() gin.H {
	return gin.H{
		"crops": []gin.H{
			{"id": "c1", "name": "Wheat", "soilPH": 6.5},
			{"id": "c2", "name": "Rice", "soilPH": 6.0},
		},
		"weatherData": gin.H{"temperature": 34.0, "humidity": 70.0},
		"soilData":    gin.H{"moisture": 22.0},
	}
}

// ============================================================================
// TEST SUITE 1: VALIDATION AND FALLBACK
// ============================================================================

func TestMonitorCrops_EmptyCropsRejected(t *testing.T) {
	router := newMonitorRouter(&stubAdvisoryService{}, storage.NewStore(storage.NewMemoryBackend()))

	resp := postJSON(router, "/api/v1/monitor-crops", gin.H{"crops": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No crops to monitor")
}

func TestMonitorCrops_ExhaustionServesHealthyBaseline(t *testing.T) {
	router := newMonitorRouter(&stubAdvisoryService{err: errors.New("quota exceeded")},
		storage.NewStore(storage.NewMemoryBackend()))

	resp := postJSON(router, "/api/v1/monitor-crops", monitorRequestBody())

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success   bool                      `json:"success"`
		Analysis  models.MonitoringAnalysis `json:"analysis"`
		Timestamp string                    `json:"timestamp"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, models.HealthHealthy, body.Analysis.OverallHealth)
	assert.Empty(t, body.Analysis.Alerts)
	assert.NotEmpty(t, body.Timestamp)
}

// ============================================================================
// TEST SUITE 2: PERSISTENCE SIDE EFFECTS
// ============================================================================

func TestMonitorCrops_PersistsAlertsAndSnapshots(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	service := &stubAdvisoryService{monitoring: &models.MonitoringAnalysis{
		Alerts: []models.MonitoringAlert{
			{
				Type:     models.AlertSoilMoisture,
				Severity: models.SeverityWarning,
				Message:  "Wheat field moisture dropping fast",
			},
		},
		OverallHealth: models.HealthWarning,
		Summary:       "One field needs irrigation",
	}}
	router := newMonitorRouter(service, store)

	resp := postJSON(router, "/api/v1/monitor-crops", monitorRequestBody())
	assert.Equal(t, http.StatusOK, resp.Code)

	ctx := context.Background()

	alerts, err := store.GetAllAlerts(ctx)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "c1", alerts[0].CropID, "alert must attach to the crop named in the message")
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.NotEmpty(t, alerts[0].ID)

	snapshots, err := store.GetAllMonitoringData(ctx)
	assert.NoError(t, err)
	assert.Len(t, snapshots, 2, "one snapshot per monitored crop")

	wheat, err := store.GetMonitoringDataForCrop(ctx, "c1")
	assert.NoError(t, err)
	assert.Len(t, wheat, 1)
	assert.Equal(t, 34.0, wheat[0].Temperature)
	assert.Equal(t, 22.0, wheat[0].SoilMoisture)
	assert.Len(t, wheat[0].Alerts, 1, "the crop's alerts are embedded in its snapshot")

	rice, err := store.GetMonitoringDataForCrop(ctx, "c2")
	assert.NoError(t, err)
	assert.Empty(t, rice[0].Alerts)
}

func TestMonitorCrops_UnmatchedAlertGoesToFirstCrop(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	service := &stubAdvisoryService{monitoring: &models.MonitoringAnalysis{
		Alerts: []models.MonitoringAlert{
			{Type: models.AlertWeather, Severity: models.SeverityInfo, Message: "Storm approaching the region"},
		},
		OverallHealth: models.HealthHealthy,
	}}
	router := newMonitorRouter(service, store)

	resp := postJSON(router, "/api/v1/monitor-crops", monitorRequestBody())
	assert.Equal(t, http.StatusOK, resp.Code)

	alerts, _ := store.GetAllAlerts(context.Background())
	assert.Len(t, alerts, 1)
	assert.Equal(t, "c1", alerts[0].CropID)
}
