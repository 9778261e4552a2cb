package location

//go:generate mockgen -destination=../mocks/location.go -package=mocks github.com/i474232898/wfetch/internal/location Prompter,Searcher,FieldWriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/wfetch/internal/weather"
)

var (
	// ErrNoMatches is returned when a search yields zero candidates.
	ErrNoMatches = errors.New("no locations match the query")
	// ErrInvalidSelection is returned for a selection outside the candidate list.
	ErrInvalidSelection = errors.New("invalid location selection")
	// ErrEmptyQuery is returned when the user enters a blank search.
	ErrEmptyQuery = errors.New("search query is empty")
)

// Prompter is the interactive console capability the resolver needs.
type Prompter interface {
	// Input asks for a line of free text.
	Input(label string) (string, error)
	// Select offers items and returns the zero-based index of the choice.
	Select(label string, items []string) (int, error)
}

// Searcher finds location candidates for a free-text query.
type Searcher interface {
	Search(ctx context.Context, apiKey, query string) ([]weather.Location, error)
}

// FieldWriter persists a single configuration field.
type FieldWriter interface {
	SetField(name, value string) error
}

// Resolver runs the interactive setup: ask, search, choose, persist.
type Resolver struct {
	searcher Searcher
	prompter Prompter
	store    FieldWriter
	logger   *zap.Logger
}

func NewResolver(searcher Searcher, prompter Prompter, store FieldWriter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		searcher: searcher,
		prompter: prompter,
		store:    store,
		logger:   logger,
	}
}

// PromptFreeTextQuery asks the user what to search for.
func (r *Resolver) PromptFreeTextQuery() (string, error) {
	query, err := r.prompter.Input("Search your location")
	if err != nil {
		return "", fmt.Errorf("read search query: %w", err)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}

// Search returns the ranked candidates for query. Zero candidates is not an error here.
func (r *Resolver) Search(ctx context.Context, apiKey, query string) ([]weather.Location, error) {
	if apiKey == "" {
		return nil, weather.ErrMissingCredential
	}
	return r.searcher.Search(ctx, apiKey, query)
}

// PromptSelect offers the candidates and returns a validated index into them.
func (r *Resolver) PromptSelect(candidates []weather.Location) (int, error) {
	if len(candidates) == 0 {
		return -1, ErrNoMatches
	}

	items := make([]string, len(candidates))
	for i, c := range candidates {
		items[i] = c.Label()
	}

	idx, err := r.prompter.Select("Choose the location", items)
	if err != nil {
		return -1, fmt.Errorf("read selection: %w", err)
	}
	if err := checkIndex(idx, len(candidates)); err != nil {
		return -1, err
	}
	return idx, nil
}

func checkIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSelection, idx, n)
	}
	return nil
}

// Resolve runs the whole setup flow and stores the chosen candidate's reference.
func (r *Resolver) Resolve(ctx context.Context, apiKey string) (weather.Location, error) {
	if apiKey == "" {
		return weather.Location{}, weather.ErrMissingCredential
	}

	query, err := r.PromptFreeTextQuery()
	if err != nil {
		return weather.Location{}, err
	}

	candidates, err := r.Search(ctx, apiKey, query)
	if err != nil {
		return weather.Location{}, err
	}
	r.logger.Debug("location search", zap.String("query", query), zap.Int("candidates", len(candidates)))
	if len(candidates) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", ErrNoMatches, query)
	}

	idx, err := r.PromptSelect(candidates)
	if err != nil {
		return weather.Location{}, err
	}
	chosen := candidates[idx]

	if err := r.store.SetField("query_location", chosen.URL); err != nil {
		return weather.Location{}, fmt.Errorf("save location: %w", err)
	}
	r.logger.Info("location saved", zap.String("label", chosen.Label()), zap.String("reference", chosen.URL))
	return chosen, nil
}
