package models

// NDVIData classifies a normalized difference vegetation index reading.
type NDVIData struct {
	Value       float64    `json:"value"`
	Status      NDVIStatus `json:"status"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	Timestamp   string     `json:"timestamp"`
}

type SoilMoistureData struct {
	Moisture         float64        `json:"moisture"`
	Status           MoistureStatus `json:"status"`
	IrrigationNeeded bool           `json:"irrigation_needed"`
	LastUpdated      string         `json:"last_updated"`
}

type HeatStressData struct {
	Temperature     float64         `json:"temperature"`
	HeatIndex       float64         `json:"heat_index"`
	StressLevel     HeatStressLevel `json:"stress_level"`
	RiskDescription string          `json:"risk_description"`
	Recommendations []string        `json:"recommendations"`
}

type SatelliteWeatherData struct {
	CloudCoverage       float64 `json:"cloud_coverage"`
	RainfallProbability float64 `json:"rainfall_probability"`
	RainfallAmount      float64 `json:"rainfall_amount"`
	SatelliteImageryURL string  `json:"satellite_imagery_url,omitempty"`
}

// SatelliteInsights is the "full" bundle: all estimators plus an aggregate
// health score and derived alert strings. Source names the data provenance,
// including the explicit fallback label when everything upstream failed.
type SatelliteInsights struct {
	NDVI         NDVIData             `json:"ndvi"`
	SoilMoisture SoilMoistureData     `json:"soilMoisture"`
	HeatStress   HeatStressData       `json:"heatStress"`
	Weather      SatelliteWeatherData `json:"weather"`
	HealthScore  int                  `json:"healthScore"`
	Alerts       []string             `json:"alerts"`
	Timestamp    string               `json:"timestamp"`
	Source       string               `json:"source"`
}

type CropDetection struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
	Icon       string  `json:"icon"`
}

type BoundaryCheck struct {
	Changed          bool    `json:"changed"`
	ChangePercentage float64 `json:"changePercentage"`
	Location         string  `json:"location"`
	Alert            string  `json:"alert"`
}
