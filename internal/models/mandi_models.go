package models

// MandiPrice is one record from the data.gov.in market price resource.
// Prices arrive as strings in the upstream payload.
type MandiPrice struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	Grade       string `json:"grade"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}

type MandiAPIResponse struct {
	Total   int          `json:"total"`
	Count   int          `json:"count"`
	Offset  int          `json:"offset"`
	Limit   int          `json:"limit"`
	Records []MandiPrice `json:"records"`
}

type MandiFilters struct {
	State     string
	District  string
	Market    string
	Commodity string
	Variety   string
	Grade     string
	Limit     int
	Offset    int
}

type MandiMarketPrice struct {
	Market     string  `json:"market"`
	District   string  `json:"district"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
	ModalPrice float64 `json:"modalPrice"`
	Date       string  `json:"date"`
}

type MandiTrends struct {
	BestMarkets  []MandiMarketPrice `json:"bestMarkets"`
	WorstMarkets []MandiMarketPrice `json:"worstMarkets"`
	AveragePrice float64            `json:"averagePrice"`
	TotalMarkets int                `json:"totalMarkets"`
}

type ProfitPotential struct {
	BestCaseRevenue    float64            `json:"bestCaseRevenue"`
	AverageCaseRevenue float64            `json:"averageCaseRevenue"`
	WorstCaseRevenue   float64            `json:"worstCaseRevenue"`
	RecommendedMarkets []MandiMarketPrice `json:"recommendedMarkets"`
	PriceRange         PriceRange         `json:"priceRange"`
}

type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}
