package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// MandiService queries the Indian government market price resource for
// real mandi quotations.
type MandiService struct {
	cfg    config.MandiAPIConfig
	client *http.Client
}

type IMandiService interface {
	FetchMandiPrices(filters models.MandiFilters) (*models.MandiAPIResponse, error)
	GetCommodityPrices(commodity, state, district string) (*models.MandiAPIResponse, error)
	GetCommodityTrends(commodity, state string) (*models.MandiTrends, error)
	CalculateProfitPotential(commodity, state string, estimatedYield float64) (*models.ProfitPotential, error)
}

func NewMandiService(cfg config.MandiAPIConfig) IMandiService {
	return &MandiService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *MandiService) FetchMandiPrices(filters models.MandiFilters) (*models.MandiAPIResponse, error) {
	if m.cfg.APIKey == "" {
		log.Println("Mandi API key not configured")
		return nil, fmt.Errorf("mandi API key not configured")
	}

	limit := filters.Limit
	if limit == 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("api-key", m.cfg.APIKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(filters.Offset))

	if filters.State != "" {
		params.Set("filters[state.keyword]", filters.State)
	}
	if filters.District != "" {
		params.Set("filters[district]", filters.District)
	}
	if filters.Market != "" {
		params.Set("filters[market]", filters.Market)
	}
	if filters.Commodity != "" {
		params.Set("filters[commodity]", filters.Commodity)
	}
	if filters.Variety != "" {
		params.Set("filters[variety]", filters.Variety)
	}
	if filters.Grade != "" {
		params.Set("filters[grade]", filters.Grade)
	}

	requestURL := fmt.Sprintf("%s?%s", m.cfg.BaseURL, params.Encode())

	resp, err := m.client.Get(requestURL)
	if err != nil {
		log.Printf("Error fetching Mandi prices: %v", err)
		return nil, fmt.Errorf("failed to call Mandi API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response body: %v", err)
		return nil, fmt.Errorf("failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Mandi API returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("mandi API error: %d %s", resp.StatusCode, resp.Status)
	}

	var apiResponse models.MandiAPIResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		log.Printf("Error unmarshaling Mandi response: %v", err)
		return nil, fmt.Errorf("failed to parse response")
	}

	return &apiResponse, nil
}

func (m *MandiService) GetCommodityPrices(commodity, state, district string) (*models.MandiAPIResponse, error) {
	return m.FetchMandiPrices(models.MandiFilters{
		Commodity: commodity,
		State:     state,
		District:  district,
		Limit:     50,
	})
}

// GetCommodityTrends ranks markets for a commodity by modal price.
func (m *MandiService) GetCommodityTrends(commodity, state string) (*models.MandiTrends, error) {
	data, err := m.FetchMandiPrices(models.MandiFilters{
		Commodity: commodity,
		State:     state,
		Limit:     100,
	})
	if err != nil {
		return nil, err
	}

	prices := make([]models.MandiMarketPrice, 0, len(data.Records))
	total := 0.0
	for _, record := range data.Records {
		price := models.MandiMarketPrice{
			Market:     record.Market,
			District:   record.District,
			MinPrice:   parsePrice(record.MinPrice),
			MaxPrice:   parsePrice(record.MaxPrice),
			ModalPrice: parsePrice(record.ModalPrice),
			Date:       record.ArrivalDate,
		}
		prices = append(prices, price)
		total += price.ModalPrice
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].ModalPrice > prices[j].ModalPrice
	})

	trends := &models.MandiTrends{
		TotalMarkets: len(prices),
	}
	if len(prices) > 0 {
		trends.AveragePrice = total / float64(len(prices))
		trends.BestMarkets = prices[:minInt(5, len(prices))]

		worstStart := maxInt(0, len(prices)-5)
		worst := make([]models.MandiMarketPrice, 0, 5)
		for i := len(prices) - 1; i >= worstStart; i-- {
			worst = append(worst, prices[i])
		}
		trends.WorstMarkets = worst
	}

	return trends, nil
}

func (m *MandiService) CalculateProfitPotential(commodity, state string, estimatedYield float64) (*models.ProfitPotential, error) {
	trends, err := m.GetCommodityTrends(commodity, state)
	if err != nil {
		return nil, err
	}

	potential := &models.ProfitPotential{
		AverageCaseRevenue: trends.AveragePrice * estimatedYield,
		PriceRange: models.PriceRange{
			Average: trends.AveragePrice,
		},
	}
	if len(trends.BestMarkets) > 0 {
		potential.BestCaseRevenue = trends.BestMarkets[0].ModalPrice * estimatedYield
		potential.PriceRange.Max = trends.BestMarkets[0].ModalPrice
		potential.RecommendedMarkets = trends.BestMarkets[:minInt(3, len(trends.BestMarkets))]
	}
	if len(trends.WorstMarkets) > 0 {
		potential.WorstCaseRevenue = trends.WorstMarkets[0].ModalPrice * estimatedYield
		potential.PriceRange.Min = trends.WorstMarkets[0].ModalPrice
	}

	return potential, nil
}

func parsePrice(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
