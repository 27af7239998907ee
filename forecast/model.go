// Package forecast turns trained per-ticker model artifacts into price
// predictions and discrete buy/hold/sell recommendations.
package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrModelNotFound is returned when no trained model exists for a
// ticker.
var ErrModelNotFound = errors.New("forecast: model not found")

// Model is the capability a trained forecaster exposes: one prediction
// at a horizon measured in trading days from the end of its training
// window.
type Model interface {
	Predict(horizonDays int) (float64, error)
}

// Artifact is the serialized form of a trained model, produced offline
// by the training command and loaded read-only at serving time.
type Artifact struct {
	Ticker    string    `json:"ticker"`
	Intercept float64   `json:"intercept"`
	Slope     float64   `json:"slope"`
	LastIndex int       `json:"last_index"`
	Samples   int       `json:"samples"`
	TrainedAt time.Time `json:"trained_at"`
}

func (a *Artifact) validate() error {
	if a.Ticker == "" {
		return fmt.Errorf("artifact missing ticker")
	}
	if a.Samples < 2 {
		return fmt.Errorf("artifact for %s trained on %d samples, need at least 2", a.Ticker, a.Samples)
	}
	return nil
}

// Write serializes the artifact to <dir>/<TICKER>.json.
func (a *Artifact) Write(dir string) (string, error) {
	if err := a.validate(); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, a.Ticker+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact for %s: %w", a.Ticker, err)
	}
	return path, nil
}

// linearModel evaluates a least-squares fit over the training day
// index, extended past the end of the training window.
type linearModel struct {
	artifact Artifact
}

func (m *linearModel) Predict(horizonDays int) (float64, error) {
	day := float64(m.artifact.LastIndex + horizonDays)
	return m.artifact.Intercept + m.artifact.Slope*day, nil
}

// Registry maps tickers to loaded models. It is built once at startup
// and never mutated, so concurrent readers need no locking.
type Registry struct {
	models map[string]Model
}

// NewRegistry builds a registry from an explicit model map; keys are
// uppercased.
func NewRegistry(models map[string]Model) *Registry {
	normalized := make(map[string]Model, len(models))
	for ticker, model := range models {
		normalized[strings.ToUpper(ticker)] = model
	}
	return &Registry{models: normalized}
}

// LoadRegistry reads every *.json artifact in dir. A malformed
// artifact fails the whole load; a bad file should stop the server at
// startup rather than surface as per-request not-found errors.
func LoadRegistry(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read models dir: %w", err)
	}

	models := make(map[string]Model)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", entry.Name(), err)
		}

		var artifact Artifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			return nil, fmt.Errorf("parse artifact %s: %w", entry.Name(), err)
		}
		if err := artifact.validate(); err != nil {
			return nil, fmt.Errorf("invalid artifact %s: %w", entry.Name(), err)
		}

		models[strings.ToUpper(artifact.Ticker)] = &linearModel{artifact: artifact}
	}

	return &Registry{models: models}, nil
}

// Lookup returns the model for a ticker.
func (r *Registry) Lookup(ticker string) (Model, error) {
	model, ok := r.models[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, ticker)
	}
	return model, nil
}

// Tickers lists all tickers with a loaded model, sorted.
func (r *Registry) Tickers() []string {
	tickers := make([]string, 0, len(r.models))
	for ticker := range r.models {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// Len reports how many models are loaded.
func (r *Registry) Len() int {
	return len(r.models)
}
