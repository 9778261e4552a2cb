package weather

import (
	"context"
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// Service ties the configuration store to the provider for the steady-state
// fetch: resolve credential and location, fetch, normalize.
type Service struct {
	store    Store
	provider Provider
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Credentials loads the record and requires an API key to be present.
func (s *Service) Credentials() (ConfigRecord, error) {
	rec, err := s.store.Load()
	if err != nil {
		return ConfigRecord{}, err
	}
	if rec.APIKey == "" {
		return ConfigRecord{}, ErrMissingCredential
	}
	return rec, nil
}

// Snapshot fetches current conditions for the configured location.
func (s *Service) Snapshot(ctx context.Context) (WeatherSnapshot, error) {
	rec, err := s.Credentials()
	if err != nil {
		return WeatherSnapshot{}, err
	}
	if rec.QueryLocation == "" {
		return WeatherSnapshot{}, ErrMissingLocation
	}

	s.logger.Debug("fetching current conditions",
		zap.String("provider", s.provider.Name()),
		zap.String("location", rec.QueryLocation))

	snap, err := s.provider.FetchCurrent(ctx, rec.APIKey, rec.QueryLocation)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	if snap.TemperatureC == nil && snap.TemperatureF == nil && snap.TemperatureK == nil {
		return WeatherSnapshot{}, fmt.Errorf("%w: payload carries no temperature", ErrFetch)
	}

	if ce := s.logger.Check(zap.DebugLevel, "snapshot"); ce != nil {
		ce.Write(zap.String("dump", spew.Sdump(snap)))
	}
	return snap, nil
}

// Current fetches and converts the configured location's conditions.
func (s *Service) Current(ctx context.Context, units Units) (DisplayRecord, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return DisplayRecord{}, err
	}
	rec := ToUnits(snap, units)
	if math.IsNaN(rec.FeelsLike) {
		// Some payloads omit feels-like; fall back to the air temperature.
		rec.FeelsLike = rec.Temperature
	}
	return rec, nil
}

// Search delegates a free-text location search to the provider using the
// stored credential.
func (s *Service) Search(ctx context.Context, query string) ([]Location, error) {
	rec, err := s.Credentials()
	if err != nil {
		return nil, err
	}
	return s.provider.Search(ctx, rec.APIKey, query)
}
