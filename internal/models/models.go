package models

// FarmerProfile holds the single onboarded farmer. Saved wholesale on edit.
type FarmerProfile struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Location     string  `json:"location"`
	State        string  `json:"state,omitempty"`
	District     string  `json:"district,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	SoilPH       float64 `json:"soilPH"`
	SoilMoisture float64 `json:"soilMoisture"`
	CurrentCrop  string  `json:"currentCrop"`
	LandArea     float64 `json:"landArea"`
	CreatedAt    string  `json:"createdAt"`
	Language     string  `json:"language,omitempty"`
}

type Crop struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	PlantedDate         string       `json:"plantedDate"`
	ExpectedHarvestDate string       `json:"expectedHarvestDate"`
	LandArea            float64      `json:"landArea"`
	SoilPH              float64      `json:"soilPH"`
	CurrentStage        CropStage    `json:"currentStage"`
	HealthStatus        HealthStatus `json:"healthStatus"`
	LastWatered         string       `json:"lastWatered,omitempty"`
	LastFertilized      string       `json:"lastFertilized,omitempty"`
	Notes               string       `json:"notes,omitempty"`
	CreatedAt           string       `json:"createdAt"`
	UpdatedAt           string       `json:"updatedAt"`
}

type Alert struct {
	ID        string        `json:"id"`
	CropID    string        `json:"cropId"`
	Type      AlertType     `json:"type"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
	Resolved  bool          `json:"resolved"`
	EmailSent bool          `json:"emailSent"`
}

type MarketPrice struct {
	CropName string     `json:"cropName"`
	Price    float64    `json:"price"`
	Unit     string     `json:"unit"`
	Market   string     `json:"market"`
	Date     string     `json:"date"`
	Trend    PriceTrend `json:"trend"`
}

// MonitoringData is one snapshot per monitoring run; alerts raised by the run
// are embedded as well as stored in the alert collection.
type MonitoringData struct {
	CropID       string  `json:"cropId"`
	Timestamp    string  `json:"timestamp"`
	SoilMoisture float64 `json:"soilMoisture"`
	SoilPH       float64 `json:"soilPH"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	Rainfall     float64 `json:"rainfall"`
	Alerts       []Alert `json:"alerts"`
}
