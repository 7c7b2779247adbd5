package models

type CropStage string

const (
	StagePlanted    CropStage = "planted"
	StageGrowing    CropStage = "growing"
	StageFlowering  CropStage = "flowering"
	StageHarvesting CropStage = "harvesting"
	StageHarvested  CropStage = "harvested"
)

func (s CropStage) IsValid() bool {
	switch s {
	case StagePlanted, StageGrowing, StageFlowering, StageHarvesting, StageHarvested:
		return true
	}
	return false
}

type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

func (h HealthStatus) IsValid() bool {
	switch h {
	case HealthHealthy, HealthWarning, HealthCritical:
		return true
	}
	return false
}

type AlertType string

const (
	AlertSoilMoisture AlertType = "soil_moisture"
	AlertSoilPH       AlertType = "soil_ph"
	AlertTemperature  AlertType = "temperature"
	AlertWeather      AlertType = "weather"
	AlertDisease      AlertType = "disease"
	AlertPest         AlertType = "pest"
	AlertMarket       AlertType = "market"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

type PriceTrend string

const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

type NDVIStatus string

const (
	NDVIHealthy  NDVIStatus = "healthy"
	NDVIModerate NDVIStatus = "moderate"
	NDVIStressed NDVIStatus = "stressed"
	NDVICritical NDVIStatus = "critical"
)

type MoistureStatus string

const (
	MoistureDry     MoistureStatus = "dry"
	MoistureOptimal MoistureStatus = "optimal"
	MoistureWet     MoistureStatus = "wet"
)

type HeatStressLevel string

const (
	HeatStressNone     HeatStressLevel = "none"
	HeatStressLow      HeatStressLevel = "low"
	HeatStressModerate HeatStressLevel = "moderate"
	HeatStressHigh     HeatStressLevel = "high"
	HeatStressExtreme  HeatStressLevel = "extreme"
)
