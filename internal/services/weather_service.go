package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
)

type WeatherService struct {
	cfg    config.WeatherAPIConfig
	client *http.Client
}

type IWeatherService interface {
	FetchCurrentWeather(lat, lon float64) (*CurrentWeather, error)
}

func NewWeatherService(cfg config.WeatherAPIConfig) IWeatherService {
	return &WeatherService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// CurrentWeather is the subset of the OpenWeather current-conditions payload
// the estimators read.
type CurrentWeather struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Name string `json:"name"`
}

// FetchCurrentWeather retrieves current conditions in metric units.
func (w *WeatherService) FetchCurrentWeather(lat, lon float64) (*CurrentWeather, error) {
	if w.cfg.APIKey == "" {
		log.Println("OpenWeather API key not configured")
		return nil, fmt.Errorf("API key not configured")
	}

	url := fmt.Sprintf("%s/weather?lat=%g&lon=%g&appid=%s&units=metric",
		w.cfg.BaseURL, lat, lon, w.cfg.APIKey)

	resp, err := w.client.Get(url)
	if err != nil {
		log.Printf("Error fetching weather data: %v", err)
		return nil, fmt.Errorf("failed to call API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response body: %v", err)
		return nil, fmt.Errorf("failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("API 3rd party returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API 3rd party error")
	}

	var weather CurrentWeather
	if err := json.Unmarshal(body, &weather); err != nil {
		log.Println("Error unmarshaling JSON:", err)
		return nil, fmt.Errorf("failed to parse JSON")
	}

	return &weather, nil
}

// Rain1h returns the last-hour rainfall, zero when the block is absent.
func (c *CurrentWeather) Rain1h() float64 {
	if c.Rain == nil {
		return 0
	}
	return c.Rain.OneHour
}
