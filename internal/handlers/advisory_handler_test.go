package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
	"github.com/NishantRana07/Krishi-Mitra/internal/services"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// stubAdvisoryService fails every operation when err is set; otherwise it
// returns the prepared payloads.
type stubAdvisoryService struct {
	err            error
	chatText       string
	soilAnalysis   *models.SoilAnalysis
	yield          *models.YieldPrediction
	validation     *models.CropValidation
	monitoring     *models.MonitoringAnalysis
	recommendation *models.RecommendationsList
	disease        *models.DiseaseAnalysis
}

func (s *stubAdvisoryService) Chat(ctx context.Context, req *models.ChatRequest) (string, error) {
	return s.chatText, s.err
}

func (s *stubAdvisoryService) GetRecommendations(ctx context.Context, req *models.RecommendationsRequest) (*models.RecommendationsList, error) {
	return s.recommendation, s.err
}

func (s *stubAdvisoryService) AnalyzeSoil(ctx context.Context, req *models.SoilAnalysisRequest) (*models.SoilAnalysis, error) {
	return s.soilAnalysis, s.err
}

func (s *stubAdvisoryService) PredictYield(ctx context.Context, req *models.YieldPredictionRequest) (*models.YieldPrediction, error) {
	return s.yield, s.err
}

func (s *stubAdvisoryService) DetectDisease(ctx context.Context, req *models.DiseaseDetectionRequest) (*models.DiseaseAnalysis, error) {
	return s.disease, s.err
}

func (s *stubAdvisoryService) ValidateCrop(ctx context.Context, req *models.ValidateCropRequest) (*models.CropValidation, error) {
	return s.validation, s.err
}

func (s *stubAdvisoryService) MonitorCrops(ctx context.Context, req *models.MonitorCropsRequest) (*models.MonitoringAnalysis, error) {
	return s.monitoring, s.err
}

func (s *stubAdvisoryService) GetMarketPrices(ctx context.Context, req *models.MarketPricesRequest) ([]models.CropPriceData, *models.MarketAnalysis, error) {
	return nil, nil, s.err
}

func newAdvisoryRouter(service services.IAdvisoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAdvisoryHandler(service).RegisterRoutes(router)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// ============================================================================
// TEST SUITE 1: REQUIRED FIELD VALIDATION
// ============================================================================

func TestAnalyzeSoil_MissingFieldsRejected(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{})

	resp := postJSON(router, "/api/v1/soil-analysis", gin.H{"ph": 6.5})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "pH and moisture are required fields")
}

func TestValidateCrop_EmptyNameRejected(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{})

	resp := postJSON(router, "/api/v1/validate-crop", gin.H{"cropName": "   "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Crop name is required")
}

func TestChat_MissingQuestionRejected(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{})

	resp := postJSON(router, "/api/v1/chat", gin.H{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// ============================================================================
// TEST SUITE 2: FALLBACK MASKING
// ============================================================================

func TestChat_ExhaustionServesApology(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{err: errors.New("quota exceeded")})

	resp := postJSON(router, "/api/v1/chat", gin.H{"question": "When should I water wheat?"})

	assert.Equal(t, http.StatusOK, resp.Code, "downstream failure must not surface as an error status")

	var body models.ChatResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, services.FallbackChatResponse, body.Response)
}

func TestPredictYield_ExhaustionServesLiteralFallback(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{err: errors.New("quota exceeded")})

	resp := postJSON(router, "/api/v1/yield-prediction", gin.H{
		"crop": "Wheat", "area": 5, "soilPH": 6.5, "soilMoisture": 45,
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.YieldPrediction
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, *services.FallbackYieldPrediction(), body)
}

func TestAnalyzeSoil_ExhaustionServesHeuristic(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{err: errors.New("quota exceeded")})

	resp := postJSON(router, "/api/v1/soil-analysis", gin.H{"ph": 6.5, "moisture": 50})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.SoilAnalysis
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Optimal", body.PHAnalysis.Status, "fallback must be computed from the submitted readings")
	assert.NotEmpty(t, body.BestCrops)
	assert.NotEmpty(t, body.NutrientAnalysis.Nitrogen.Level, "fallback must be schema-complete")
}

func TestGetRecommendations_ExhaustionServesCannedList(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{err: errors.New("quota exceeded")})

	resp := postJSON(router, "/api/v1/recommendations", gin.H{})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.RecommendationsList
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Recommendations, 4)
	assert.Equal(t, "Wheat", body.Recommendations[0].Crop)
}

func TestDetectDisease_ExhaustionServesEarlyBlight(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{err: errors.New("quota exceeded")})

	resp := postJSON(router, "/api/v1/disease-detection", gin.H{"imageBase64": "aGVsbG8="})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.DiseaseAnalysis
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Early Blight", body.Disease)
}

// ============================================================================
// TEST SUITE 3: SUCCESS PASSTHROUGH
// ============================================================================

func TestChat_Success(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{chatText: "Water early in the morning."})

	resp := postJSON(router, "/api/v1/chat", gin.H{"question": "When should I water wheat?"})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.ChatResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Water early in the morning.", body.Response)
}

func TestValidateCrop_SuccessPassesThrough(t *testing.T) {
	router := newAdvisoryRouter(&stubAdvisoryService{validation: &models.CropValidation{
		IsValid:      true,
		StandardName: "Wheat",
	}})

	resp := postJSON(router, "/api/v1/validate-crop", gin.H{"cropName": "wheat"})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body models.CropValidation
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Wheat", body.StandardName)
}
