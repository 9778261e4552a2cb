package weather

import (
	"context"
	"errors"
)

var (
	// ErrFetch covers every failure talking to the weather service: network,
	// non-2xx status and payloads that do not match the expected schema.
	ErrFetch = errors.New("weather fetch failed")

	ErrMissingCredential = errors.New("api key is not configured")
	ErrMissingLocation   = errors.New("location is not configured")
	ErrInvalidUnits      = errors.New("invalid units")
)

// Provider abstracts the remote weather service.
type Provider interface {
	Name() string
	Search(ctx context.Context, apiKey, query string) ([]Location, error)
	FetchCurrent(ctx context.Context, apiKey, reference string) (WeatherSnapshot, error)
}

// Store is the contract the on-disk configuration store satisfies.
type Store interface {
	Load() (ConfigRecord, error)
	SetField(name, value string) error
}
