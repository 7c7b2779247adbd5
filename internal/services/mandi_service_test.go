package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func mandiRecord(market string, modal string) models.MandiPrice {
	return models.MandiPrice{
		State:       "Punjab",
		District:    "Ludhiana",
		Market:      market,
		Commodity:   "Wheat",
		ArrivalDate: "28/08/2026",
		MinPrice:    "2000",
		MaxPrice:    "2500",
		ModalPrice:  modal,
	}
}

func newMandiServer(t *testing.T, records []models.MandiPrice, capture *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			params := map[string]string{}
			for key, values := range r.URL.Query() {
				params[key] = values[0]
			}
			*capture = params
		}
		response := models.MandiAPIResponse{
			Total:   len(records),
			Count:   len(records),
			Records: records,
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

// ============================================================================
// TEST SUITE 1: UPSTREAM REQUEST SHAPE
// ============================================================================

func TestFetchMandiPrices_BuildsFilterParams(t *testing.T) {
	var captured map[string]string
	server := newMandiServer(t, nil, &captured)
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	_, err := service.FetchMandiPrices(models.MandiFilters{
		Commodity: "Wheat",
		State:     "Punjab",
		District:  "Ludhiana",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-key", captured["api-key"])
	assert.Equal(t, "json", captured["format"])
	assert.Equal(t, "100", captured["limit"], "limit defaults to 100")
	assert.Equal(t, "Wheat", captured["filters[commodity]"])
	assert.Equal(t, "Punjab", captured["filters[state.keyword]"])
	assert.Equal(t, "Ludhiana", captured["filters[district]"])
}

func TestFetchMandiPrices_RequiresAPIKey(t *testing.T) {
	service := NewMandiService(config.MandiAPIConfig{BaseURL: "http://unused"})

	_, err := service.FetchMandiPrices(models.MandiFilters{Commodity: "Wheat"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFetchMandiPrices_Non200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	_, err := service.FetchMandiPrices(models.MandiFilters{Commodity: "Wheat"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// ============================================================================
// TEST SUITE 2: TREND RANKING
// ============================================================================

func TestGetCommodityTrends_RanksMarketsByModalPrice(t *testing.T) {
	records := []models.MandiPrice{
		mandiRecord("Khanna", "2100"),
		mandiRecord("Ludhiana", "2500"),
		mandiRecord("Moga", "2300"),
	}
	server := newMandiServer(t, records, nil)
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	trends, err := service.GetCommodityTrends("Wheat", "Punjab")

	assert.NoError(t, err)
	assert.Equal(t, 3, trends.TotalMarkets)
	assert.Equal(t, 2300.0, trends.AveragePrice)
	assert.Equal(t, "Ludhiana", trends.BestMarkets[0].Market)
	assert.Equal(t, 2500.0, trends.BestMarkets[0].ModalPrice)
	assert.Equal(t, "Khanna", trends.WorstMarkets[0].Market, "worst list starts with the cheapest market")
}

func TestGetCommodityTrends_CapsBestAndWorstAtFive(t *testing.T) {
	records := make([]models.MandiPrice, 0, 8)
	modals := []string{"2000", "2100", "2200", "2300", "2400", "2500", "2600", "2700"}
	markets := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i := range modals {
		records = append(records, mandiRecord(markets[i], modals[i]))
	}
	server := newMandiServer(t, records, nil)
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	trends, err := service.GetCommodityTrends("Wheat", "Punjab")

	assert.NoError(t, err)
	assert.Len(t, trends.BestMarkets, 5)
	assert.Len(t, trends.WorstMarkets, 5)
	assert.Equal(t, "H", trends.BestMarkets[0].Market)
	assert.Equal(t, "A", trends.WorstMarkets[0].Market)
}

func TestGetCommodityTrends_UnparseablePricesBecomeZero(t *testing.T) {
	records := []models.MandiPrice{mandiRecord("Khanna", "NR")}
	server := newMandiServer(t, records, nil)
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	trends, err := service.GetCommodityTrends("Wheat", "Punjab")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, trends.BestMarkets[0].ModalPrice)
}

// ============================================================================
// TEST SUITE 3: PROFIT POTENTIAL
// ============================================================================

func TestCalculateProfitPotential(t *testing.T) {
	records := []models.MandiPrice{
		mandiRecord("Khanna", "2000"),
		mandiRecord("Ludhiana", "2400"),
	}
	server := newMandiServer(t, records, nil)
	defer server.Close()

	service := NewMandiService(config.MandiAPIConfig{BaseURL: server.URL, APIKey: "test-key"})

	potential, err := service.CalculateProfitPotential("Wheat", "Punjab", 10)

	assert.NoError(t, err)
	assert.Equal(t, 24000.0, potential.BestCaseRevenue)
	assert.Equal(t, 22000.0, potential.AverageCaseRevenue)
	assert.Equal(t, 20000.0, potential.WorstCaseRevenue)
	assert.Equal(t, 2400.0, potential.PriceRange.Max)
	assert.Equal(t, 2000.0, potential.PriceRange.Min)
	assert.NotEmpty(t, potential.RecommendedMarkets)
}
