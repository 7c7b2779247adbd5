package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NishantRana07/Krishi-Mitra/internal/models"
)

// Collection keys mirror the legacy client storage layout so exported data
// stays importable.
const (
	KeyFarmerProfile      = "agrisense_farmer_profile"
	KeyCrops              = "agrisense_crops"
	KeyMonitoringData     = "agrisense_monitoring_data"
	KeyAlerts             = "agrisense_alerts"
	KeyMarketPrices       = "agrisense_market_prices"
	KeyOnboardingComplete = "agrisense_onboarding_complete"
)

const (
	marketPriceRetention    = 50
	monitoringDataRetention = 100
)

// ErrProfileNotFound is returned when no farmer has onboarded yet.
var ErrProfileNotFound = errors.New("storage: farmer profile not found")

// Store provides the typed collection operations on top of a Backend. Every
// operation is a whole-collection read-modify-write with no indexing; the
// collections are small by contract (retention caps above).
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func getCollection[T any](ctx context.Context, b Backend, key string) ([]T, error) {
	raw, err := b.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return items, nil
}

func setCollection[T any](ctx context.Context, b Backend, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}
	return b.Set(ctx, key, raw)
}

// ---------------------------------------------------------------------------
// Farmer profile
// ---------------------------------------------------------------------------

func (s *Store) GetFarmerProfile(ctx context.Context) (*models.FarmerProfile, error) {
	raw, err := s.backend.Get(ctx, KeyFarmerProfile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	var profile models.FarmerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode farmer profile: %w", err)
	}
	return &profile, nil
}

// SaveFarmerProfile overwrites the profile wholesale, as the onboarding and
// edit flows both submit the complete record.
func (s *Store) SaveFarmerProfile(ctx context.Context, profile *models.FarmerProfile) error {
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode farmer profile: %w", err)
	}
	return s.backend.Set(ctx, KeyFarmerProfile, raw)
}

func (s *Store) IsOnboardingComplete(ctx context.Context) bool {
	raw, err := s.backend.Get(ctx, KeyOnboardingComplete)
	if err != nil {
		return false
	}
	return string(raw) == "true"
}

func (s *Store) SetOnboardingComplete(ctx context.Context) error {
	return s.backend.Set(ctx, KeyOnboardingComplete, []byte("true"))
}

// ClearFarmerData removes every collection, the explicit reset action.
func (s *Store) ClearFarmerData(ctx context.Context) error {
	keys := []string{
		KeyFarmerProfile,
		KeyCrops,
		KeyMonitoringData,
		KeyAlerts,
		KeyMarketPrices,
		KeyOnboardingComplete,
	}
	for _, key := range keys {
		if err := s.backend.Delete(ctx, key); err != nil {
			log.Printf("Error clearing collection %s: %v", key, err)
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Crops
// ---------------------------------------------------------------------------

func (s *Store) GetAllCrops(ctx context.Context) ([]models.Crop, error) {
	return getCollection[models.Crop](ctx, s.backend, KeyCrops)
}

func (s *Store) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	crops, err := s.GetAllCrops(ctx)
	if err != nil {
		return nil, err
	}
	for i := range crops {
		if crops[i].ID == id {
			return &crops[i], nil
		}
	}
	return nil, nil
}

// SaveCrop upserts by id and refreshes UpdatedAt on replace.
func (s *Store) SaveCrop(ctx context.Context, crop *models.Crop) error {
	crops, err := s.GetAllCrops(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	existing := -1
	for i := range crops {
		if crops[i].ID == crop.ID {
			existing = i
			break
		}
	}

	if existing >= 0 {
		crop.UpdatedAt = now
		crops[existing] = *crop
	} else {
		if crop.CreatedAt == "" {
			crop.CreatedAt = now
		}
		if crop.UpdatedAt == "" {
			crop.UpdatedAt = now
		}
		crops = append(crops, *crop)
	}

	return setCollection(ctx, s.backend, KeyCrops, crops)
}

func (s *Store) DeleteCrop(ctx context.Context, id string) error {
	crops, err := s.GetAllCrops(ctx)
	if err != nil {
		return err
	}
	filtered := crops[:0]
	for _, crop := range crops {
		if crop.ID != id {
			filtered = append(filtered, crop)
		}
	}
	return setCollection(ctx, s.backend, KeyCrops, filtered)
}

// ---------------------------------------------------------------------------
// Alerts
// ---------------------------------------------------------------------------

func (s *Store) GetAllAlerts(ctx context.Context) ([]models.Alert, error) {
	return getCollection[models.Alert](ctx, s.backend, KeyAlerts)
}

func (s *Store) GetUnresolvedAlerts(ctx context.Context) ([]models.Alert, error) {
	alerts, err := s.GetAllAlerts(ctx)
	if err != nil {
		return nil, err
	}
	unresolved := make([]models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if !alert.Resolved {
			unresolved = append(unresolved, alert)
		}
	}
	return unresolved, nil
}

// SaveAlert appends; alerts are never deleted, only resolved.
func (s *Store) SaveAlert(ctx context.Context, alert *models.Alert) error {
	alerts, err := s.GetAllAlerts(ctx)
	if err != nil {
		return err
	}
	alerts = append(alerts, *alert)
	return setCollection(ctx, s.backend, KeyAlerts, alerts)
}

// ResolveAlert flips exactly the matching alert to resolved.
func (s *Store) ResolveAlert(ctx context.Context, id string) error {
	return s.updateAlert(ctx, id, func(a *models.Alert) { a.Resolved = true })
}

func (s *Store) MarkAlertEmailSent(ctx context.Context, id string) error {
	return s.updateAlert(ctx, id, func(a *models.Alert) { a.EmailSent = true })
}

func (s *Store) updateAlert(ctx context.Context, id string, apply func(*models.Alert)) error {
	alerts, err := s.GetAllAlerts(ctx)
	if err != nil {
		return err
	}
	for i := range alerts {
		if alerts[i].ID == id {
			apply(&alerts[i])
		}
	}
	return setCollection(ctx, s.backend, KeyAlerts, alerts)
}

// ---------------------------------------------------------------------------
// Market prices
// ---------------------------------------------------------------------------

func (s *Store) GetAllMarketPrices(ctx context.Context) ([]models.MarketPrice, error) {
	return getCollection[models.MarketPrice](ctx, s.backend, KeyMarketPrices)
}

// SaveMarketPrice appends, keeping only the most recent entries.
func (s *Store) SaveMarketPrice(ctx context.Context, price *models.MarketPrice) error {
	prices, err := s.GetAllMarketPrices(ctx)
	if err != nil {
		return err
	}
	prices = append(prices, *price)
	if len(prices) > marketPriceRetention {
		prices = prices[len(prices)-marketPriceRetention:]
	}
	return setCollection(ctx, s.backend, KeyMarketPrices, prices)
}

// GetMarketPriceForCrop returns the latest cached snapshot for a crop name,
// or nil when none is cached.
func (s *Store) GetMarketPriceForCrop(ctx context.Context, cropName string) (*models.MarketPrice, error) {
	prices, err := s.GetAllMarketPrices(ctx)
	if err != nil {
		return nil, err
	}
	var latest *models.MarketPrice
	for i := range prices {
		if strings.EqualFold(prices[i].CropName, cropName) {
			latest = &prices[i]
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// Monitoring data
// ---------------------------------------------------------------------------

func (s *Store) GetAllMonitoringData(ctx context.Context) ([]models.MonitoringData, error) {
	return getCollection[models.MonitoringData](ctx, s.backend, KeyMonitoringData)
}

func (s *Store) SaveMonitoringData(ctx context.Context, data *models.MonitoringData) error {
	all, err := s.GetAllMonitoringData(ctx)
	if err != nil {
		return err
	}
	all = append(all, *data)
	if len(all) > monitoringDataRetention {
		all = all[len(all)-monitoringDataRetention:]
	}
	return setCollection(ctx, s.backend, KeyMonitoringData, all)
}

func (s *Store) GetMonitoringDataForCrop(ctx context.Context, cropID string) ([]models.MonitoringData, error) {
	all, err := s.GetAllMonitoringData(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.MonitoringData, 0, len(all))
	for _, entry := range all {
		if entry.CropID == cropID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}
