package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type stubWeatherService struct {
	weather *CurrentWeather
	err     error
}

func (s *stubWeatherService) FetchCurrentWeather(lat, lon float64) (*CurrentWeather, error) {
	return s.weather, s.err
}

func weatherFixture(temp, humidity, clouds float64) *CurrentWeather {
	w := &CurrentWeather{Name: "Test Station"}
	w.Main.Temp = temp
	w.Main.Humidity = humidity
	w.Clouds.All = clouds
	return w
}

func newTestSatelliteService(weather *CurrentWeather, err error) ISatelliteService {
	return NewSatelliteService(config.SentinelHubConfig{}, &stubWeatherService{weather: weather, err: err})
}

// ============================================================================
// TEST SUITE 1: NDVI CLASSIFICATION
// ============================================================================

func TestCalculateNDVI_Value(t *testing.T) {
	data := CalculateNDVI(0.8, 0.2)
	assert.InDelta(t, 0.6, data.Value, 0.0001, "NDVI should be (nir-red)/(nir+red)")
}

func TestCalculateNDVI_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		nir, red float64
		status   models.NDVIStatus
	}{
		{"above 0.6 is healthy", 0.9, 0.1, models.NDVIHealthy},
		{"exactly 0.6 is moderate", 0.8, 0.2, models.NDVIModerate},
		{"above 0.4 is moderate", 0.75, 0.25, models.NDVIModerate},
		{"exactly 0.4 is stressed", 0.7, 0.3, models.NDVIStressed},
		{"above 0.2 is stressed", 0.65, 0.35, models.NDVIStressed},
		{"exactly 0.2 is critical", 0.6, 0.4, models.NDVICritical},
		{"negative is critical", 0.2, 0.8, models.NDVICritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := CalculateNDVI(tc.nir, tc.red)
			assert.Equal(t, tc.status, data.Status)
			assert.NotEmpty(t, data.Color)
			assert.NotEmpty(t, data.Description)
		})
	}
}

// ============================================================================
// TEST SUITE 2: HEAT STRESS
// ============================================================================

func TestComputeHeatIndex_HumidityRaisesPerceivedHeat(t *testing.T) {
	dry := ComputeHeatIndex(35, 20)
	humid := ComputeHeatIndex(35, 90)
	assert.Greater(t, humid, dry, "Higher humidity must raise the heat index")
}

func TestClassifyHeatStress_Bands(t *testing.T) {
	cases := []struct {
		heatIndex float64
		level     models.HeatStressLevel
	}{
		{20, models.HeatStressNone},
		{26.9, models.HeatStressNone},
		{27, models.HeatStressLow},
		{31.9, models.HeatStressLow},
		{32, models.HeatStressModerate},
		{37.9, models.HeatStressModerate},
		{38, models.HeatStressHigh},
		{44.9, models.HeatStressHigh},
		{45, models.HeatStressExtreme},
		{55, models.HeatStressExtreme},
	}

	for _, tc := range cases {
		data := ClassifyHeatStress(30, tc.heatIndex)
		assert.Equal(t, tc.level, data.StressLevel, "heat index %.1f", tc.heatIndex)
		assert.NotEmpty(t, data.Recommendations)
	}
}

func TestClassifyHeatStress_SeverityIsMonotone(t *testing.T) {
	order := map[models.HeatStressLevel]int{
		models.HeatStressNone:     0,
		models.HeatStressLow:      1,
		models.HeatStressModerate: 2,
		models.HeatStressHigh:     3,
		models.HeatStressExtreme:  4,
	}

	previous := -1
	for heatIndex := 10.0; heatIndex <= 60; heatIndex += 0.5 {
		level := order[ClassifyHeatStress(30, heatIndex).StressLevel]
		assert.GreaterOrEqual(t, level, previous, "severity must not decrease as heat index rises")
		previous = level
	}
}

// ============================================================================
// TEST SUITE 3: SOIL MOISTURE
// ============================================================================

func TestClassifySoilMoisture(t *testing.T) {
	dry := ClassifySoilMoisture(29.9)
	assert.Equal(t, models.MoistureDry, dry.Status)
	assert.True(t, dry.IrrigationNeeded)

	lowOptimal := ClassifySoilMoisture(30)
	assert.Equal(t, models.MoistureOptimal, lowOptimal.Status)
	assert.False(t, lowOptimal.IrrigationNeeded)

	highOptimal := ClassifySoilMoisture(70)
	assert.Equal(t, models.MoistureOptimal, highOptimal.Status)

	wet := ClassifySoilMoisture(70.1)
	assert.Equal(t, models.MoistureWet, wet.Status)
	assert.False(t, wet.IrrigationNeeded)
}

func TestGetSoilMoistureData_EstimatesFromHumidityAndRain(t *testing.T) {
	weather := weatherFixture(25, 60, 50)
	weather.Rain = &struct {
		OneHour float64 `json:"1h"`
	}{OneHour: 2}
	service := newTestSatelliteService(weather, nil)

	data := service.GetSoilMoistureData(10, 76)

	// 60*0.6 + 2*10 = 56
	assert.InDelta(t, 56, data.Moisture, 0.0001)
	assert.Equal(t, models.MoistureOptimal, data.Status)
}

func TestGetSoilMoistureData_CapsAtHundred(t *testing.T) {
	weather := weatherFixture(25, 100, 50)
	weather.Rain = &struct {
		OneHour float64 `json:"1h"`
	}{OneHour: 20}
	service := newTestSatelliteService(weather, nil)

	data := service.GetSoilMoistureData(10, 76)

	assert.Equal(t, 100.0, data.Moisture)
	assert.Equal(t, models.MoistureWet, data.Status)
}

func TestGetSoilMoistureData_WeatherFailure(t *testing.T) {
	service := newTestSatelliteService(nil, errors.New("upstream down"))

	data := service.GetSoilMoistureData(10, 76)

	assert.Equal(t, 50.0, data.Moisture)
	assert.Equal(t, models.MoistureOptimal, data.Status)
}

// ============================================================================
// TEST SUITE 4: WEATHER-BASED NDVI ESTIMATE
// ============================================================================

func TestGetNDVIData_ClearWarmWeatherReadsHealthy(t *testing.T) {
	// 0% clouds and 25C: estimate = 0.3 + 0.4 + 0.2 = 0.9
	service := newTestSatelliteService(weatherFixture(25, 50, 0), nil)

	data := service.GetNDVIData(10, 76)

	assert.Equal(t, models.NDVIHealthy, data.Status)
}

func TestGetNDVIData_OvercastColdWeatherReadsLower(t *testing.T) {
	// 100% clouds and 5C: estimate = 0.3, rendered via CalculateNDVI(0.8, 0.5)
	service := newTestSatelliteService(weatherFixture(5, 50, 100), nil)

	data := service.GetNDVIData(10, 76)

	assert.InDelta(t, (0.8-0.5)/(0.8+0.5), data.Value, 0.0001)
	assert.Equal(t, models.NDVIStressed, data.Status)
}

func TestGetNDVIData_WeatherFailureDefaultsModerate(t *testing.T) {
	service := newTestSatelliteService(nil, errors.New("upstream down"))

	data := service.GetNDVIData(10, 76)

	assert.InDelta(t, 0.2, data.Value, 0.0001)
}

// ============================================================================
// TEST SUITE 5: INSIGHTS AGGREGATION
// ============================================================================

func TestGetSatelliteInsights_HealthScoreAndSource(t *testing.T) {
	// 50% clouds, 25C, 60% humidity, no rain:
	// NDVI estimate 0.3+0.2+0.2=0.7 -> value (0.8-0.1)/0.9 = 0.7778
	// moisture 36 (optimal), heat index ~30 (low stress)
	service := newTestSatelliteService(weatherFixture(25, 60, 50), nil)

	insights := service.GetSatelliteInsights(10, 76)

	// (0.7778+1)*25 + 25 + 25 = 94.4 -> 94
	assert.Equal(t, 94, insights.HealthScore)
	assert.Equal(t, "OpenWeather (Estimated)", insights.Source)
	assert.Empty(t, insights.Alerts)
}

func TestGetSatelliteInsights_RaisesIrrigationAlert(t *testing.T) {
	// 20% humidity, no rain -> moisture 12 -> dry, irrigation needed
	service := newTestSatelliteService(weatherFixture(25, 20, 50), nil)

	insights := service.GetSatelliteInsights(10, 76)

	assert.Contains(t, insights.Alerts, "Irrigation recommended - soil moisture is low")
}

func TestFallbackSatelliteInsights(t *testing.T) {
	insights := FallbackSatelliteInsights()

	assert.Equal(t, "Fallback (Estimated)", insights.Source)
	assert.Equal(t, 65, insights.HealthScore)
	assert.Equal(t, models.MoistureOptimal, insights.SoilMoisture.Status)
	assert.Equal(t, models.HeatStressLow, insights.HeatStress.StressLevel)
	assert.NotEmpty(t, insights.Alerts)
}

// ============================================================================
// TEST SUITE 6: PLACEHOLDER DETECTORS
// ============================================================================

func TestDetectCropType_ReturnsKnownCrop(t *testing.T) {
	service := newTestSatelliteService(weatherFixture(25, 50, 0), nil)

	detection := service.DetectCropType(10, 76)

	names := make([]string, 0, len(detectableCrops))
	for _, crop := range detectableCrops {
		names = append(names, crop.Crop)
	}
	assert.Contains(t, names, detection.Crop)
	assert.Greater(t, detection.Confidence, 0.0)
}

func TestDetectBoundaryChanges_AlwaysHasAlertText(t *testing.T) {
	service := newTestSatelliteService(weatherFixture(25, 50, 0), nil)

	for i := 0; i < 50; i++ {
		check := service.DetectBoundaryChanges("polygon-1")
		assert.NotEmpty(t, check.Alert)
		if check.Changed {
			assert.LessOrEqual(t, check.ChangePercentage, 5.0)
		}
	}
}
