package models

// Structured shapes returned by the Gemini advisory features. Field names
// match what the dashboard reads, so they stay camelCase on the wire.

type SoilAnalysis struct {
	OverallHealth    string           `json:"overallHealth"`
	HealthScore      float64          `json:"healthScore"`
	PHAnalysis       AspectAnalysis   `json:"phAnalysis"`
	MoistureAnalysis AspectAnalysis   `json:"moistureAnalysis"`
	NutrientAnalysis NutrientAnalysis `json:"nutrientAnalysis"`
	OrganicMatter    NutrientLevel    `json:"organicMatter"`
	Recommendations  []string         `json:"recommendations"`
	BestCrops        []string         `json:"bestCrops"`
	Warnings         []string         `json:"warnings"`
}

type AspectAnalysis struct {
	Status         string `json:"status"`
	Recommendation string `json:"recommendation"`
}

type NutrientAnalysis struct {
	Nitrogen   NutrientLevel `json:"nitrogen"`
	Phosphorus NutrientLevel `json:"phosphorus"`
	Potassium  NutrientLevel `json:"potassium"`
}

type NutrientLevel struct {
	Level          string `json:"level"`
	Recommendation string `json:"recommendation"`
}

type CropRecommendation struct {
	Crop           string `json:"crop"`
	Yield          string `json:"yield"`
	Profit         string `json:"profit"`
	Season         string `json:"season"`
	WaterNeeded    string `json:"waterNeeded"`
	Fertilizer     string `json:"fertilizer"`
	DaysToMaturity int    `json:"daysToMaturity"`
	MarketPrice    string `json:"marketPrice"`
	Risk           string `json:"risk"`
	Reason         string `json:"reason"`
}

type RecommendationsList struct {
	Recommendations []CropRecommendation `json:"recommendations"`
}

type YieldPrediction struct {
	YieldPerHectare float64  `json:"yieldPerHectare"`
	TotalYield      float64  `json:"totalYield"`
	Revenue         float64  `json:"revenue"`
	Profit          float64  `json:"profit"`
	ProfitMargin    string   `json:"profitMargin"`
	MarketPrice     float64  `json:"marketPrice"`
	RiskFactors     []string `json:"riskFactors"`
}

type DiseaseAnalysis struct {
	Disease         string   `json:"disease"`
	Confidence      float64  `json:"confidence"`
	CropHealth      float64  `json:"cropHealth"`
	Severity        string   `json:"severity"`
	Cause           string   `json:"cause"`
	WhyHappened     []string `json:"whyHappened"`
	Harmfulness     string   `json:"harmfulness"`
	Treatment       []string `json:"treatment"`
	Prevention      []string `json:"prevention"`
	AffectedArea    string   `json:"affectedArea"`
	Recommendations []string `json:"recommendations"`
}

type CropValidation struct {
	IsValid             bool     `json:"isValid"`
	StandardName        string   `json:"standardName"`
	ScientificName      string   `json:"scientificName"`
	Category            string   `json:"category"`
	SuitableForPH       PHRange  `json:"suitableForPH"`
	SuitableForLocation bool     `json:"suitableForLocation"`
	GrowingSeasons      []string `json:"growingSeasons"`
	AverageYield        string   `json:"averageYield"`
	WaterRequirement    string   `json:"waterRequirement"`
	Suggestions         string   `json:"suggestions"`
}

type PHRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type MonitoringAnalysis struct {
	Alerts        []MonitoringAlert `json:"alerts"`
	OverallHealth HealthStatus      `json:"overallHealth"`
	Summary       string            `json:"summary"`
}

type MonitoringAlert struct {
	Type            AlertType     `json:"type"`
	Severity        AlertSeverity `json:"severity"`
	Message         string        `json:"message"`
	Recommendations string        `json:"recommendations"`
}

type MarketData struct {
	CropName     string            `json:"cropName"`
	Markets      []MarketQuotation `json:"markets"`
	AveragePrice float64           `json:"averagePrice"`
	BestMarket   string            `json:"bestMarket"`
	WorstMarket  string            `json:"worstMarket"`
	PriceRange   string            `json:"priceRange"`
}

type MarketQuotation struct {
	Market     string  `json:"market"`
	District   string  `json:"district"`
	State      string  `json:"state"`
	Variety    string  `json:"variety"`
	Grade      string  `json:"grade"`
	ModalPrice float64 `json:"modalPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

type MarketAnalysis struct {
	MarketSummary   string `json:"marketSummary"`
	Recommendations string `json:"recommendations"`
	Forecast        string `json:"forecast"`
	BestTimeToSell  string `json:"bestTimeToSell"`
}

// CropPriceData is the per-crop element of the market prices response,
// keeping the legacy wire layout the dashboard charts read.
type CropPriceData struct {
	CropName   string          `json:"cropName"`
	RealPrices []QuotedPrice   `json:"realPrices"`
	Trends     CropPriceTrends `json:"trends"`
}

type QuotedPrice struct {
	CropName string  `json:"cropName"`
	Variety  string  `json:"variety"`
	Grade    string  `json:"grade"`
	Price    float64 `json:"price"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	Unit     string  `json:"unit"`
	Market   string  `json:"market"`
	District string  `json:"district"`
	State    string  `json:"state"`
	Date     string  `json:"date"`
}

type CropPriceTrends struct {
	BestMarkets  []MarketRef `json:"bestMarkets"`
	WorstMarkets []MarketRef `json:"worstMarkets"`
	AveragePrice float64     `json:"averagePrice"`
	TotalMarkets int         `json:"totalMarkets"`
}

type MarketRef struct {
	Market     string  `json:"market"`
	ModalPrice float64 `json:"modalPrice"`
}
