package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// Canned responses served when every Gemini credential is exhausted. The
// dashboard renders these like any other advisory payload, so the shapes
// must stay wire-compatible with the AI-generated ones.

const FallbackChatResponse = "I'm having trouble connecting to the AI service right now. Please try again in a moment, or check our recommendations page for general farming advice."

func FallbackYieldPrediction() *models.YieldPrediction {
	return &models.YieldPrediction{
		YieldPerHectare: 42.5,
		TotalYield:      212.5,
		Revenue:         5312500,
		Profit:          2812500,
		ProfitMargin:    "52.9",
		MarketPrice:     2500,
		RiskFactors: []string{
			"Using fallback prediction (API quota exceeded)",
			"Soil pH slightly below optimal range",
			"Monitor moisture levels during dry season",
		},
	}
}

func FallbackRecommendations() *models.RecommendationsList {
	return &models.RecommendationsList{
		Recommendations: []models.CropRecommendation{
			{
				Crop:           "Wheat",
				Yield:          "45 tons/ha",
				Profit:         "₹85,000",
				Season:         "Winter",
				WaterNeeded:    "450mm",
				Fertilizer:     "NPK 20:20:20",
				DaysToMaturity: 120,
				MarketPrice:    "₹2,500/quintal",
				Risk:           "Low",
				Reason:         "Optimal soil pH and moisture for wheat cultivation",
			},
			{
				Crop:           "Rice",
				Yield:          "38 tons/ha",
				Profit:         "₹72,000",
				Season:         "Monsoon",
				WaterNeeded:    "1200mm",
				Fertilizer:     "NPK 15:15:15",
				DaysToMaturity: 135,
				MarketPrice:    "₹3,200/quintal",
				Risk:           "Medium",
				Reason:         "Requires more water management",
			},
			{
				Crop:           "Corn",
				Yield:          "52 tons/ha",
				Profit:         "₹95,000",
				Season:         "Summer",
				WaterNeeded:    "600mm",
				Fertilizer:     "NPK 25:15:15",
				DaysToMaturity: 110,
				MarketPrice:    "₹2,800/quintal",
				Risk:           "Low",
				Reason:         "Excellent soil conditions for corn",
			},
			{
				Crop:           "Soybean",
				Yield:          "28 tons/ha",
				Profit:         "₹65,000",
				Season:         "Monsoon",
				WaterNeeded:    "600mm",
				Fertilizer:     "NPK 10:20:20",
				DaysToMaturity: 100,
				MarketPrice:    "₹4,500/quintal",
				Risk:           "Low",
				Reason:         "Good nitrogen fixation potential",
			},
		},
	}
}

func FallbackDiseaseAnalysis() *models.DiseaseAnalysis {
	return &models.DiseaseAnalysis{
		Disease:    "Early Blight",
		Confidence: 92,
		CropHealth: 65,
		Severity:   "High",
		Cause:      "Fungal infection caused by Alternaria solani",
		WhyHappened: []string{
			"High humidity and warm temperature favor fungal growth",
			"Soil moisture creates ideal conditions for spore germination",
			"Crop has been growing for extended period without fungicide application",
		},
		Harmfulness: "Can cause 30-50% yield loss if left untreated",
		Treatment: []string{
			"Apply fungicide spray (Mancozeb or Chlorothalonil) every 7-10 days",
			"Remove infected leaves and destroy them",
			"Improve air circulation by pruning lower branches",
			"Reduce overhead watering to minimize leaf wetness",
		},
		Prevention: []string{
			"Maintain proper plant spacing for air circulation",
			"Avoid overhead irrigation",
			"Remove plant debris after harvest",
			"Rotate crops annually",
			"Use disease-resistant varieties",
		},
		AffectedArea: "25% of crop",
		Recommendations: []string{
			"Start treatment immediately to prevent spread",
			"Monitor weather for favorable conditions for fungal growth",
			"Consider preventive spraying on healthy plants",
		},
	}
}

func FallbackCropValidation() *models.CropValidation {
	return &models.CropValidation{
		IsValid:             true,
		StandardName:        "Unknown Crop",
		ScientificName:      "Unknown",
		Category:            "General",
		SuitableForPH:       models.PHRange{Min: 6.0, Max: 7.5},
		SuitableForLocation: true,
		GrowingSeasons:      []string{"Monsoon", "Winter"},
		AverageYield:        "Variable",
		WaterRequirement:    "medium",
		Suggestions:         "Please verify crop details with local agricultural experts.",
	}
}

func FallbackMonitoringAnalysis() *models.MonitoringAnalysis {
	return &models.MonitoringAnalysis{
		Alerts:        []models.MonitoringAlert{},
		OverallHealth: "healthy",
		Summary:       "Monitoring system is running. No critical issues detected.",
	}
}

// FallbackCropPriceData builds two synthetic quotations around a per-crop
// base price so a single failed crop still renders in the price table.
func FallbackCropPriceData(cropName, state, district string) models.CropPriceData {
	basePrice := fallbackBasePrice(cropName)
	now := time.Now().UTC().Format(time.RFC3339)

	if state == "" {
		state = "Delhi"
	}
	if district == "" {
		district = "Central"
	}

	prices := []models.QuotedPrice{
		{
			CropName: cropName,
			Variety:  "Local",
			Grade:    "A",
			Price:    basePrice,
			MinPrice: basePrice - 200,
			MaxPrice: basePrice + 200,
			Unit:     "quintal",
			Market:   fmt.Sprintf("%s Mandi", state),
			District: district,
			State:    state,
			Date:     now,
		},
		{
			CropName: cropName,
			Variety:  "Hybrid",
			Grade:    "A",
			Price:    basePrice + 150,
			MinPrice: basePrice - 50,
			MaxPrice: basePrice + 300,
			Unit:     "quintal",
			Market:   fmt.Sprintf("%s Market", district),
			District: district,
			State:    state,
			Date:     now,
		},
	}

	return models.CropPriceData{
		CropName:   cropName,
		RealPrices: prices,
		Trends: models.CropPriceTrends{
			BestMarkets:  []models.MarketRef{{Market: prices[1].Market, ModalPrice: prices[1].Price}},
			WorstMarkets: []models.MarketRef{{Market: prices[0].Market, ModalPrice: prices[0].Price}},
			AveragePrice: basePrice,
			TotalMarkets: 2,
		},
	}
}

func fallbackBasePrice(cropName string) float64 {
	name := strings.ToLower(cropName)
	switch {
	case strings.Contains(name, "wheat"):
		return 2200
	case strings.Contains(name, "rice"):
		return 2000
	case strings.Contains(name, "cotton"):
		return 6500
	case strings.Contains(name, "sugarcane"):
		return 350
	case strings.Contains(name, "maize"):
		return 1800
	case strings.Contains(name, "soybean"):
		return 4200
	default:
		return 2500
	}
}

// HeuristicSoilAnalysis is the offline substitute for the AI soil report,
// computed from the submitted readings with simple agronomic thresholds.
func HeuristicSoilAnalysis(req *models.SoilAnalysisRequest) *models.SoilAnalysis {
	ph := floatOrDefault(req.PH, 7)
	moisture := floatOrDefault(req.Moisture, 50)
	nitrogen := floatOrDefault(req.Nitrogen, 100)
	phosphorus := floatOrDefault(req.Phosphorus, 30)
	potassium := floatOrDefault(req.Potassium, 150)
	organicMatter := floatOrDefault(req.OrganicMatter, 2)

	healthScore := 70.0
	if ph >= 6.0 && ph <= 7.5 {
		healthScore += 10
	}
	if moisture >= 40 && moisture <= 60 {
		healthScore += 10
	}
	if nitrogen >= 80 {
		healthScore += 5
	}
	if phosphorus >= 25 {
		healthScore += 5
	}

	analysis := &models.SoilAnalysis{
		OverallHealth:    healthBand(healthScore),
		HealthScore:      healthScore,
		PHAnalysis:       phAnalysis(ph),
		MoistureAnalysis: moistureAnalysis(moisture),
		NutrientAnalysis: models.NutrientAnalysis{
			Nitrogen:   nutrientLevel(nitrogen, 60, 120, "Apply nitrogen fertilizer (urea or ammonium sulfate) at 100-150 kg/ha.", "Nitrogen levels are adequate. Maintain with organic matter."),
			Phosphorus: nutrientLevel(phosphorus, 20, 40, "Apply phosphorus fertilizer (DAP or SSP) at 50-75 kg/ha.", "Phosphorus levels are sufficient."),
			Potassium:  nutrientLevel(potassium, 100, 200, "Apply potassium fertilizer (MOP or SOP) at 50-100 kg/ha.", "Potassium levels are good."),
		},
		OrganicMatter: models.NutrientLevel{
			Level:          bandLowMediumHigh(organicMatter, 2, 4),
			Recommendation: "Add compost or farmyard manure to improve soil structure and fertility.",
		},
		Recommendations: []string{
			"Test soil every 6 months to monitor changes",
			"Add organic compost to improve soil structure",
			"Practice crop rotation to maintain soil health",
			"Use mulching to retain moisture and prevent erosion",
			"Consider cover crops during off-season",
		},
		BestCrops: bestCropsForPH(ph),
		Warnings:  []string{},
	}

	if healthScore < 60 {
		analysis.Warnings = []string{
			"Soil health needs immediate attention",
			"Consider professional soil testing",
			"Nutrient deficiencies detected",
		}
	}

	return analysis
}

func healthBand(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}

func phAnalysis(ph float64) models.AspectAnalysis {
	var status string
	switch {
	case ph < 5.5:
		status = "Too Acidic"
	case ph < 6.0:
		status = "Slightly Acidic"
	case ph <= 7.5:
		status = "Optimal"
	case ph <= 8.0:
		status = "Slightly Alkaline"
	default:
		status = "Too Alkaline"
	}

	recommendation := "Add sulfur or organic matter to lower pH."
	if status == "Optimal" {
		recommendation = "pH level is ideal for most crops. Maintain current practices."
	} else if ph < 6.0 {
		recommendation = "Add lime to raise pH. Apply 2-3 tons per hectare."
	}

	return models.AspectAnalysis{Status: status, Recommendation: recommendation}
}

func moistureAnalysis(moisture float64) models.AspectAnalysis {
	switch {
	case moisture < 30:
		return models.AspectAnalysis{
			Status:         "Too Dry",
			Recommendation: "Increase irrigation frequency. Consider drip irrigation.",
		}
	case moisture > 70:
		return models.AspectAnalysis{
			Status:         "Too Wet",
			Recommendation: "Reduce watering. Improve drainage.",
		}
	default:
		return models.AspectAnalysis{
			Status:         "Optimal",
			Recommendation: "Moisture level is good. Continue regular irrigation schedule.",
		}
	}
}

func nutrientLevel(value, low, high float64, deficientAdvice, adequateAdvice string) models.NutrientLevel {
	level := bandLowMediumHigh(value, low, high)
	recommendation := adequateAdvice
	if level == "Low" {
		recommendation = deficientAdvice
	}
	return models.NutrientLevel{Level: level, Recommendation: recommendation}
}

func bandLowMediumHigh(value, low, high float64) string {
	switch {
	case value < low:
		return "Low"
	case value < high:
		return "Medium"
	default:
		return "High"
	}
}

func bestCropsForPH(ph float64) []string {
	switch {
	case ph >= 6.0 && ph <= 7.5:
		return []string{"Wheat", "Rice", "Corn", "Soybean", "Cotton", "Vegetables"}
	case ph < 6.0:
		return []string{"Potato", "Blueberry", "Tea", "Rice", "Oats"}
	default:
		return []string{"Barley", "Beet", "Asparagus", "Spinach"}
	}
}

func floatOrDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
