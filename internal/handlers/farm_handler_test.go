package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
	"github.com/NishantRana07/Krishi-Mitra/internal/utils"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newFarmRouter(store *storage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFarmHandler(store).RegisterRoutes(router)
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func putJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// ============================================================================
// TEST SUITE 1: HEALTH AND PROFILE
// ============================================================================

func TestCheckHealth(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := getPath(router, "/checkhealth")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Server is running")
}

func TestProfile_NotFoundBeforeOnboarding(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := getPath(router, "/api/v1/farmer/profile")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProfile_SaveCompletesOnboarding(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	router := newFarmRouter(store)

	resp := putJSON(router, "/api/v1/farmer/profile", gin.H{
		"name": "Asha", "email": "asha@example.com", "location": "Nashik",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, store.IsOnboardingComplete(context.Background()))

	loaded := getPath(router, "/api/v1/farmer/profile")
	assert.Equal(t, http.StatusOK, loaded.Code)

	var body utils.SuccessResponse
	assert.NoError(t, json.Unmarshal(loaded.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestProfile_RejectsBadEmail(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := putJSON(router, "/api/v1/farmer/profile", gin.H{"name": "Asha", "email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProfile_DeleteClearsEverything(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	router := newFarmRouter(store)

	putJSON(router, "/api/v1/farmer/profile", gin.H{"name": "Asha"})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/farmer/profile", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, store.IsOnboardingComplete(context.Background()))
}

// ============================================================================
// TEST SUITE 2: CROP CRUD
// ============================================================================

func TestCrops_CreateAssignsDefaults(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := postJSON(router, "/api/v1/crops", gin.H{"name": "Wheat", "landArea": 2.5})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool        `json:"success"`
		Data    models.Crop `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID, "server must assign an id")
	assert.Equal(t, models.StagePlanted, body.Data.CurrentStage)
	assert.Equal(t, models.HealthHealthy, body.Data.HealthStatus)
}

func TestCrops_RejectsInvalidStage(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := postJSON(router, "/api/v1/crops", gin.H{"name": "Wheat", "currentStage": "blooming"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid crop stage")
}

func TestCrops_UpdateMissingIs404(t *testing.T) {
	router := newFarmRouter(storage.NewStore(storage.NewMemoryBackend()))

	resp := putJSON(router, "/api/v1/crops/ghost", gin.H{"name": "Wheat"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCrops_DeleteThenGone(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	router := newFarmRouter(store)

	assert.NoError(t, store.SaveCrop(context.Background(), &models.Crop{ID: "c1", Name: "Wheat"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/crops/c1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := getPath(router, "/api/v1/crops/c1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// ============================================================================
// TEST SUITE 3: ALERT LISTING
// ============================================================================

func TestAlerts_ResolvedFilter(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	router := newFarmRouter(store)

	ctx := context.Background()
	assert.NoError(t, store.SaveAlert(ctx, &models.Alert{ID: "a1", Severity: models.SeverityInfo}))
	assert.NoError(t, store.SaveAlert(ctx, &models.Alert{ID: "a2", Severity: models.SeverityWarning}))

	resolve := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/a2/resolve", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, resolve)
	assert.Equal(t, http.StatusOK, recorder.Code)

	all := getPath(router, "/api/v1/alerts")
	var allBody struct {
		Data []models.Alert `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(all.Body.Bytes(), &allBody))
	assert.Len(t, allBody.Data, 2)

	open := getPath(router, "/api/v1/alerts?resolved=false")
	var openBody struct {
		Data []models.Alert `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(open.Body.Bytes(), &openBody))
	assert.Len(t, openBody.Data, 1)
	assert.Equal(t, "a1", openBody.Data[0].ID)
}
