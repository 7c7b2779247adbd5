package models

import "encoding/json"

// FarmerContext is the free-form farm context the UI attaches to advisory
// requests. All fields are optional; prompt builders substitute "Unknown".
type FarmerContext struct {
	Name         string `json:"name,omitempty"`
	Crop         string `json:"crop,omitempty"`
	Location     string `json:"location,omitempty"`
	SoilPH       string `json:"soilPH,omitempty"`
	SoilMoisture string `json:"soilMoisture,omitempty"`
	LandArea     string `json:"landArea,omitempty"`
	Language     string `json:"language,omitempty"`
}

type ChatRequest struct {
	Question      string         `json:"question" binding:"required"`
	FarmerContext *FarmerContext `json:"farmerContext"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type RecommendationsRequest struct {
	FarmerContext *FarmerContext `json:"farmerContext"`
}

type SoilAnalysisRequest struct {
	PH            *float64 `json:"ph"`
	Moisture      *float64 `json:"moisture"`
	Nitrogen      *float64 `json:"nitrogen"`
	Phosphorus    *float64 `json:"phosphorus"`
	Potassium     *float64 `json:"potassium"`
	OrganicMatter *float64 `json:"organicMatter"`
	Texture       string   `json:"texture"`
	Location      string   `json:"location"`
}

type YieldPredictionRequest struct {
	Crop          string         `json:"crop" binding:"required"`
	Area          float64        `json:"area"`
	SoilPH        float64        `json:"soilPH"`
	SoilMoisture  float64        `json:"soilMoisture"`
	FarmerContext *FarmerContext `json:"farmerContext"`
}

type DiseaseDetectionRequest struct {
	ImageBase64   string         `json:"imageBase64"`
	FarmerContext *FarmerContext `json:"farmerContext"`
}

type ValidateCropRequest struct {
	CropName string  `json:"cropName"`
	Location string  `json:"location"`
	SoilPH   float64 `json:"soilPH"`
	LandArea float64 `json:"landArea"`
}

type MonitorCropsRequest struct {
	Crops       []Crop         `json:"crops"`
	WeatherData map[string]any `json:"weatherData"`
	SoilData    map[string]any `json:"soilData"`
}

type MarketPricesRequest struct {
	Crops    []MarketCropRef `json:"crops"`
	Location string          `json:"location"`
	State    string          `json:"state"`
	District string          `json:"district"`
}

/// MarketCropRef accepts both `{"name":"Wheat"}` objects and plain strings
// the legacy client sent interchangeably.
type MarketCropRef struct {
	Name string `json:"name"`
}

func (m *MarketCropRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &m.Name)
	}
	type alias MarketCropRef
	return json.Unmarshal(data, (*alias)(m))
}

type SatelliteRequest struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Type      string  `json:"type"`
	PolygonID string  `json:"polygonId"`
}
