package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

func soilRequest(ph, moisture float64) *models.SoilAnalysisRequest {
	return &models.SoilAnalysisRequest{PH: &ph, Moisture: &moisture}
}

// ============================================================================
// TEST SUITE 1: HEURISTIC SOIL ANALYSIS
// ============================================================================

func TestHeuristicSoilAnalysis_OptimalReadings(t *testing.T) {
	req := soilRequest(6.8, 50)
	n, p, k := 100.0, 30.0, 150.0
	req.Nitrogen, req.Phosphorus, req.Potassium = &n, &p, &k

	analysis := HeuristicSoilAnalysis(req)

	// 70 base + 10 pH + 10 moisture + 5 nitrogen + 5 phosphorus
	assert.Equal(t, 100.0, analysis.HealthScore)
	assert.Equal(t, "Excellent", analysis.OverallHealth)
	assert.Equal(t, "Optimal", analysis.PHAnalysis.Status)
	assert.Equal(t, "Optimal", analysis.MoistureAnalysis.Status)
	assert.Empty(t, analysis.Warnings)
}

func TestHeuristicSoilAnalysis_PHStatusLadder(t *testing.T) {
	cases := []struct {
		ph     float64
		status string
	}{
		{5.0, "Too Acidic"},
		{5.8, "Slightly Acidic"},
		{6.5, "Optimal"},
		{7.8, "Slightly Alkaline"},
		{8.5, "Too Alkaline"},
	}
	for _, tc := range cases {
		analysis := HeuristicSoilAnalysis(soilRequest(tc.ph, 50))
		assert.Equal(t, tc.status, analysis.PHAnalysis.Status, "pH %.1f", tc.ph)
	}
}

func TestHeuristicSoilAnalysis_NutrientThresholds(t *testing.T) {
	req := soilRequest(6.5, 50)
	n, p, k := 50.0, 45.0, 150.0
	req.Nitrogen, req.Phosphorus, req.Potassium = &n, &p, &k

	analysis := HeuristicSoilAnalysis(req)

	assert.Equal(t, "Low", analysis.NutrientAnalysis.Nitrogen.Level)
	assert.Equal(t, "High", analysis.NutrientAnalysis.Phosphorus.Level)
	assert.Equal(t, "Medium", analysis.NutrientAnalysis.Potassium.Level)
}

func TestHeuristicSoilAnalysis_BestCropsFollowPH(t *testing.T) {
	assert.Contains(t, HeuristicSoilAnalysis(soilRequest(6.5, 50)).BestCrops, "Wheat")
	assert.Contains(t, HeuristicSoilAnalysis(soilRequest(5.2, 50)).BestCrops, "Potato")
	assert.Contains(t, HeuristicSoilAnalysis(soilRequest(8.2, 50)).BestCrops, "Barley")
}

func TestHeuristicSoilAnalysis_PoorSoilStaysAtBase(t *testing.T) {
	// Everything outside the bonus windows: score stays at the 70 base.
	req := soilRequest(4.0, 10)
	n, p := 20.0, 5.0
	req.Nitrogen, req.Phosphorus = &n, &p

	analysis := HeuristicSoilAnalysis(req)

	assert.Equal(t, 70.0, analysis.HealthScore)
	assert.Equal(t, "Good", analysis.OverallHealth)
	assert.Empty(t, analysis.Warnings, "the base score never drops below the warning threshold")
	assert.NotEmpty(t, analysis.Recommendations)
	assert.NotEmpty(t, analysis.NutrientAnalysis.Nitrogen.Recommendation)
}

// ============================================================================
// TEST SUITE 2: CANNED PAYLOADS
// ============================================================================

func TestFallbackYieldPrediction_Literal(t *testing.T) {
	prediction := FallbackYieldPrediction()

	assert.Equal(t, 42.5, prediction.YieldPerHectare)
	assert.Equal(t, 212.5, prediction.TotalYield)
	assert.Equal(t, 5312500.0, prediction.Revenue)
	assert.Equal(t, 2812500.0, prediction.Profit)
	assert.Equal(t, "52.9", prediction.ProfitMargin)
	assert.Equal(t, 2500.0, prediction.MarketPrice)
	assert.Len(t, prediction.RiskFactors, 3)
}

func TestFallbackRecommendations_FourCrops(t *testing.T) {
	list := FallbackRecommendations()

	assert.Len(t, list.Recommendations, 4)
	assert.Equal(t, "Wheat", list.Recommendations[0].Crop)
	assert.Equal(t, "Soybean", list.Recommendations[3].Crop)
}

func TestFallbackDiseaseAnalysis(t *testing.T) {
	analysis := FallbackDiseaseAnalysis()

	assert.Equal(t, "Early Blight", analysis.Disease)
	assert.Equal(t, 92.0, analysis.Confidence)
	assert.Equal(t, "High", analysis.Severity)
}

func TestFallbackBasePrices(t *testing.T) {
	cases := map[string]float64{
		"Wheat":       2200,
		"Basmati":     2500, // unknown crop falls back to the default
		"Rice":        2000,
		"Cotton":      6500,
		"Sugarcane":   350,
		"Maize":       1800,
		"Soybean":     4200,
		"wheat flour": 2200, // substring match
	}
	for crop, expected := range cases {
		assert.Equal(t, expected, fallbackBasePrice(crop), crop)
	}
}

func TestFallbackCropPriceData_Shape(t *testing.T) {
	data := FallbackCropPriceData("Wheat", "Punjab", "Ludhiana")

	assert.Equal(t, "Wheat", data.CropName)
	assert.Len(t, data.RealPrices, 2)
	assert.Equal(t, 2200.0, data.RealPrices[0].Price)
	assert.Equal(t, 2350.0, data.RealPrices[1].Price)
	assert.Equal(t, "Punjab Mandi", data.RealPrices[0].Market)
	assert.Equal(t, "Ludhiana Market", data.RealPrices[1].Market)
	assert.Equal(t, 2200.0, data.Trends.AveragePrice)
	assert.Equal(t, 2, data.Trends.TotalMarkets)
}

func TestFallbackCropPriceData_DefaultsLocation(t *testing.T) {
	data := FallbackCropPriceData("Rice", "", "")

	assert.Equal(t, "Delhi Mandi", data.RealPrices[0].Market)
	assert.Equal(t, "Central Market", data.RealPrices[1].Market)
}
