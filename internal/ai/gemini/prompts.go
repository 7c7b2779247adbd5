package gemini

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

const ChatPromptTemplate = `You are an expert agricultural advisor for farmers. Provide helpful, practical farming advice based on the farmer's specific context. Respond in %s.

Farmer Context:
- Name: %s
- Current Crop: %s
- Location: %s
- Soil pH: %s
- Soil Moisture: %s%%

Farmer's Question: %s

Provide a concise, practical response (2-3 sentences) that is specific to their farm conditions and location. Focus on actionable advice.`

const RecommendationsPromptTemplate = `You are an expert agricultural advisor. Based on the farmer's soil and location, recommend 4 best crops to plant. Respond in %s.

Farmer Context:
- Location: %s
- Soil pH: %s
- Soil Moisture: %s%%
- Current Crop: %s
- Land Area: %s hectares

For each recommended crop, provide:
1. Expected yield in tons/ha
2. Estimated profit in rupees per hectare
3. Best season to plant
4. Water requirement in mm
5. Recommended NPK fertilizer ratio
6. Days to maturity
7. Current market price per quintal
8. Risk level (Low/Medium/High)
9. Reason why this crop is recommended for their specific conditions

Return exactly 4 crop recommendations in JSON format.`

const SoilAnalysisPromptTemplate = `You are an expert soil scientist and agronomist. Analyze the following soil test results and provide detailed recommendations.

Soil Test Results:
- pH Level: %s
- Moisture: %s%%
- Nitrogen (N): %s ppm
- Phosphorus (P): %s ppm
- Potassium (K): %s ppm
- Organic Matter: %s%%
- Soil Texture: %s
- Location: %s

Provide a comprehensive soil analysis including:
1. Overall soil health assessment (Excellent/Good/Fair/Poor) with a health score (0-100)
2. pH analysis with status and specific recommendations
3. Moisture analysis with status and irrigation recommendations
4. Nutrient analysis for N, P, K with levels and fertilizer recommendations
5. Organic matter assessment with improvement suggestions
6. List of 3-5 actionable recommendations to improve soil health
7. List of 4-6 crops best suited for this soil condition
8. Any warnings or concerns about the soil condition

Be specific, practical, and provide actionable advice for farmers.`

const YieldPredictionPromptTemplate = `You are an expert agricultural yield prediction AI. Based on the farmer's conditions, predict the crop yield. Respond in %s.

Farmer Context:
- Location: %s
- Crop: %s
- Land Area: %g hectares
- Soil pH: %g
- Soil Moisture: %g%%

Based on these conditions, provide:
1. Predicted yield per hectare in tons
2. Total yield for %g hectares
3. Estimated revenue (use current market prices)
4. Estimated profit (subtract ₹15,000 per hectare for costs)
5. Profit margin percentage
6. Current market price per quintal
7. List of risk factors that could affect yield

Consider soil pH (optimal 6.5-7.5), moisture levels, and crop-specific requirements.`

const DiseaseDetectionPromptTemplate = `You are an expert agricultural disease detection AI. Analyze this crop image and provide detailed disease analysis. Respond in %s.

Farmer Context:
- Crop: %s
- Location: %s
- Soil pH: %s
- Soil Moisture: %s%%

Based on the image and farm context, provide:
1. Disease name and confidence level
2. Crop health percentage
3. Severity assessment
4. Root cause analysis
5. Why this disease occurred given the farm conditions
6. Potential yield impact
7. Detailed treatment steps
8. Prevention measures
9. Affected area percentage
10. Specific recommendations for this farm

If no disease is detected, indicate "Healthy Crop" with 100%% health.`

const ValidateCropPromptTemplate = `You are an expert agricultural advisor. Validate if "%s" is a real, cultivable crop.

Context:
- Location: %s
- Soil pH: %s
- Land Area: %s hectares

Analyze:
1. Is this a valid crop name?
2. What is the standardized/common name?
3. What is the scientific name?
4. What category does it belong to?
5. What is the suitable pH range for this crop?
6. Is it suitable for the given location and soil pH?
7. What are the best growing seasons?
8. What is the average yield per hectare?
9. What is the water requirement level?
10. Any suggestions or warnings?

Return detailed validation information in JSON format.`

const MonitorCropsPromptTemplate = `You are an expert agricultural monitoring system. Analyze the following crop and environmental data to detect any issues or anomalies that require farmer attention.

Crops Data:
%s

Weather Data:
%s

Soil Data:
%s

Analyze for:
1. Soil moisture levels (critical if below 30%% or above 80%%)
2. Soil pH imbalances (optimal range varies by crop)
3. Temperature extremes (too hot or too cold for the crop)
4. Adverse weather conditions (heavy rain, drought, storms)
5. Potential disease indicators
6. Pest risk based on conditions
7. Market opportunities (if applicable)

For each issue found, provide:
- Type of alert
- Severity (info/warning/critical)
- Clear message for the farmer
- Specific recommendations

Also provide:
- Overall health status
- Summary of findings

Return analysis in JSON format.`

const MarketDataPromptTemplate = `You are an expert agricultural market analyst in India. Generate REALISTIC and CURRENT market price data for %s.

Location Context:
- State: %s
- District: %s
- Date: %s

Generate 4-6 different market/mandi prices with:
1. Real Indian mandi names (like Azadpur Mandi, APMC Market, etc.)
2. Actual districts and states in India
3. Realistic current market prices per quintal in ₹
4. Min and max prices showing natural market variation (±10-15%%)
5. Common varieties (Local, Hybrid, Basmati, etc.)
6. Standard grades (A, B, FAQ, etc.)

Be accurate with current %s prices in India. Consider seasonal factors and regional variations.`

const MarketAnalysisPromptTemplate = `You are an agricultural market analyst in India. Analyze this market data and provide insights:

%s

Location: %s, %s
Date: %s

Based on this market data, provide:
1. Market summary - What are the current trends?
2. Strategic recommendations - Should farmers sell now or wait?
3. Price forecast - What's expected in the next 2-4 weeks?
4. Best time to sell - Specific actionable advice

Be specific and practical. Use the actual prices shown above.`

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func ctxOrEmpty(fc *models.FarmerContext) models.FarmerContext {
	if fc == nil {
		return models.FarmerContext{}
	}
	return *fc
}

func BuildChatPrompt(question string, farmerContext *models.FarmerContext) string {
	fc := ctxOrEmpty(farmerContext)
	return fmt.Sprintf(ChatPromptTemplate,
		orDefault(fc.Language, "English"),
		orDefault(fc.Name, "Farmer"),
		orUnknown(fc.Crop),
		orUnknown(fc.Location),
		orUnknown(fc.SoilPH),
		orUnknown(fc.SoilMoisture),
		question)
}

func BuildRecommendationsPrompt(farmerContext *models.FarmerContext) string {
	fc := ctxOrEmpty(farmerContext)
	return fmt.Sprintf(RecommendationsPromptTemplate,
		orDefault(fc.Language, "English"),
		orUnknown(fc.Location),
		orDefault(fc.SoilPH, "6.8"),
		orDefault(fc.SoilMoisture, "45"),
		orUnknown(fc.Crop),
		orDefault(fc.LandArea, "1"))
}

func BuildSoilAnalysisPrompt(req *models.SoilAnalysisRequest) string {
	return fmt.Sprintf(SoilAnalysisPromptTemplate,
		floatOrNotTested(req.PH),
		floatOrNotTested(req.Moisture),
		floatOrNotTested(req.Nitrogen),
		floatOrNotTested(req.Phosphorus),
		floatOrNotTested(req.Potassium),
		floatOrNotTested(req.OrganicMatter),
		orUnknown(req.Texture),
		orDefault(req.Location, "Not specified"))
}

func floatOrNotTested(value *float64) string {
	if value == nil {
		return "Not tested"
	}
	return fmt.Sprintf("%g", *value)
}

func BuildYieldPredictionPrompt(req *models.YieldPredictionRequest) string {
	fc := ctxOrEmpty(req.FarmerContext)
	return fmt.Sprintf(YieldPredictionPromptTemplate,
		orDefault(fc.Language, "English"),
		orUnknown(fc.Location),
		req.Crop,
		req.Area,
		req.SoilPH,
		req.SoilMoisture,
		req.Area)
}

func BuildDiseaseDetectionPrompt(farmerContext *models.FarmerContext) string {
	fc := ctxOrEmpty(farmerContext)
	return fmt.Sprintf(DiseaseDetectionPromptTemplate,
		orDefault(fc.Language, "English"),
		orUnknown(fc.Crop),
		orUnknown(fc.Location),
		orUnknown(fc.SoilPH),
		orUnknown(fc.SoilMoisture))
}

func BuildValidateCropPrompt(req *models.ValidateCropRequest) string {
	soilPH := "6.5"
	if req.SoilPH != 0 {
		soilPH = fmt.Sprintf("%g", req.SoilPH)
	}
	landArea := "1"
	if req.LandArea != 0 {
		landArea = fmt.Sprintf("%g", req.LandArea)
	}
	return fmt.Sprintf(ValidateCropPromptTemplate,
		req.CropName,
		orDefault(req.Location, "India"),
		soilPH,
		landArea)
}

func BuildMonitorCropsPrompt(req *models.MonitorCropsRequest) string {
	cropsJSON, _ := json.MarshalIndent(req.Crops, "", "  ")
	weatherJSON, _ := json.MarshalIndent(req.WeatherData, "", "  ")
	soilJSON, _ := json.MarshalIndent(req.SoilData, "", "  ")
	return fmt.Sprintf(MonitorCropsPromptTemplate, cropsJSON, weatherJSON, soilJSON)
}

func BuildMarketDataPrompt(cropName, state, district string) string {
	return fmt.Sprintf(MarketDataPromptTemplate,
		cropName,
		orDefault(state, "India (multiple states)"),
		orDefault(district, "Various districts"),
		time.Now().Format("02/01/2006"),
		cropName)
}

func BuildMarketAnalysisPrompt(cropSummary, state, district string) string {
	return fmt.Sprintf(MarketAnalysisPromptTemplate,
		cropSummary,
		orDefault(state, "India"),
		district,
		time.Now().Format("02/01/2006"))
}
