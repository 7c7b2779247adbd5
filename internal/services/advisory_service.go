package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/ai/gemini"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// AdvisoryService runs every Gemini-backed feature. All methods return the
// upstream error on credential exhaustion; substituting a canned payload is
// the caller's decision, made visibly at the HTTP layer.
type AdvisoryService struct {
	selector *gemini.GeminiClientSelector
}

type IAdvisoryService interface {
	Chat(ctx context.Context, req *models.ChatRequest) (string, error)
	GetRecommendations(ctx context.Context, req *models.RecommendationsRequest) (*models.RecommendationsList, error)
	AnalyzeSoil(ctx context.Context, req *models.SoilAnalysisRequest) (*models.SoilAnalysis, error)
	PredictYield(ctx context.Context, req *models.YieldPredictionRequest) (*models.YieldPrediction, error)
	DetectDisease(ctx context.Context, req *models.DiseaseDetectionRequest) (*models.DiseaseAnalysis, error)
	ValidateCrop(ctx context.Context, req *models.ValidateCropRequest) (*models.CropValidation, error)
	MonitorCrops(ctx context.Context, req *models.MonitorCropsRequest) (*models.MonitoringAnalysis, error)
	GetMarketPrices(ctx context.Context, req *models.MarketPricesRequest) ([]models.CropPriceData, *models.MarketAnalysis, error)
}

func NewAdvisoryService(selector *gemini.GeminiClientSelector) IAdvisoryService {
	return &AdvisoryService{selector: selector}
}

func (a *AdvisoryService) Chat(ctx context.Context, req *models.ChatRequest) (string, error) {
	prompt := gemini.BuildChatPrompt(req.Question, req.FarmerContext)
	return gemini.GenerateTextWithRetry(ctx, prompt, a.selector)
}

func (a *AdvisoryService) GetRecommendations(ctx context.Context, req *models.RecommendationsRequest) (*models.RecommendationsList, error) {
	prompt := gemini.BuildRecommendationsPrompt(req.FarmerContext)

	var result models.RecommendationsList
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.RecommendationsListSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdvisoryService) AnalyzeSoil(ctx context.Context, req *models.SoilAnalysisRequest) (*models.SoilAnalysis, error) {
	prompt := gemini.BuildSoilAnalysisPrompt(req)

	var result models.SoilAnalysis
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.SoilAnalysisSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdvisoryService) PredictYield(ctx context.Context, req *models.YieldPredictionRequest) (*models.YieldPrediction, error) {
	prompt := gemini.BuildYieldPredictionPrompt(req)

	var result models.YieldPrediction
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.YieldPredictionSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdvisoryService) DetectDisease(ctx context.Context, req *models.DiseaseDetectionRequest) (*models.DiseaseAnalysis, error) {
	prompt := gemini.BuildDiseaseDetectionPrompt(req.FarmerContext)

	var result models.DiseaseAnalysis
	if err := gemini.GenerateStructuredWithImageAndRetry(ctx, prompt, req.ImageBase64, gemini.DiseaseAnalysisSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdvisoryService) ValidateCrop(ctx context.Context, req *models.ValidateCropRequest) (*models.CropValidation, error) {
	prompt := gemini.BuildValidateCropPrompt(req)

	var result models.CropValidation
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.CropValidationSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdvisoryService) MonitorCrops(ctx context.Context, req *models.MonitorCropsRequest) (*models.MonitoringAnalysis, error) {
	prompt := gemini.BuildMonitorCropsPrompt(req)

	var result models.MonitoringAnalysis
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.MonitoringAnalysisSchema, a.selector, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMarketPrices generates per-crop market data in parallel, one goroutine
// per crop. A crop whose generation fails gets a base-price fallback inside
// its own branch so one failing crop never fails the batch. The combined
// summary is then analyzed in a second pass.
func (a *AdvisoryService) GetMarketPrices(ctx context.Context, req *models.MarketPricesRequest) ([]models.CropPriceData, *models.MarketAnalysis, error) {
	priceData := make([]models.CropPriceData, len(req.Crops))

	var wg sync.WaitGroup
	for i, cropRef := range req.Crops {
		wg.Add(1)
		go func(i int, cropName string) {
			defer wg.Done()
			priceData[i] = a.generateCropPriceData(ctx, cropName, req.State, req.District)
		}(i, cropRef.Name)
	}
	wg.Wait()

	analysisPrompt := gemini.BuildMarketAnalysisPrompt(summarizeCropPrices(priceData), req.State, req.District)

	var analysis models.MarketAnalysis
	if err := gemini.GenerateStructuredWithRetry(ctx, analysisPrompt, gemini.MarketAnalysisSchema, a.selector, &analysis); err != nil {
		return nil, nil, err
	}

	return priceData, &analysis, nil
}

func (a *AdvisoryService) generateCropPriceData(ctx context.Context, cropName, state, district string) models.CropPriceData {
	prompt := gemini.BuildMarketDataPrompt(cropName, state, district)

	var marketData models.MarketData
	if err := gemini.GenerateStructuredWithRetry(ctx, prompt, gemini.MarketDataSchema, a.selector, &marketData); err != nil {
		log.Printf("AI market data generation failed for %s, using basic fallback: %v", cropName, err)
		return FallbackCropPriceData(cropName, state, district)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	realPrices := make([]models.QuotedPrice, len(marketData.Markets))
	bestPrice, worstPrice := 0.0, 0.0
	for i, market := range marketData.Markets {
		realPrices[i] = models.QuotedPrice{
			CropName: cropName,
			Variety:  market.Variety,
			Grade:    market.Grade,
			Price:    market.ModalPrice,
			MinPrice: market.MinPrice,
			MaxPrice: market.MaxPrice,
			Unit:     "quintal",
			Market:   market.Market,
			District: market.District,
			State:    market.State,
			Date:     now,
		}
		if i == 0 || market.ModalPrice > bestPrice {
			bestPrice = market.ModalPrice
		}
		if i == 0 || market.ModalPrice < worstPrice {
			worstPrice = market.ModalPrice
		}
	}

	return models.CropPriceData{
		CropName:   cropName,
		RealPrices: realPrices,
		Trends: models.CropPriceTrends{
			BestMarkets:  []models.MarketRef{{Market: marketData.BestMarket, ModalPrice: bestPrice}},
			WorstMarkets: []models.MarketRef{{Market: marketData.WorstMarket, ModalPrice: worstPrice}},
			AveragePrice: marketData.AveragePrice,
			TotalMarkets: len(marketData.Markets),
		},
	}
}

func summarizeCropPrices(priceData []models.CropPriceData) string {
	lines := make([]string, 0, len(priceData))
	for _, data := range priceData {
		if len(data.RealPrices) == 0 {
			lines = append(lines, fmt.Sprintf("%s: No data available", data.CropName))
			continue
		}
		top := data.RealPrices[0]
		lines = append(lines, fmt.Sprintf("%s: ₹%.0f/quintal avg, Top market: %s (₹%.0f)",
			data.CropName, data.Trends.AveragePrice, top.Market, top.Price))
	}
	return strings.Join(lines, "\n")
}
