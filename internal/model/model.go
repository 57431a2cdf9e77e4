// Package model wraps the trained pricing regressor behind a single
// capability interface so the pipeline never depends on the artifact's shape.
package model

import (
	"encoding/json"
	"fmt"
	"os"

	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

// Regressor is the single capability the pricing pipeline needs: predict a
// price per aligned feature vector, and optionally declare the schema the
// model was fit on. An empty FeatureNames result means no declared schema.
type Regressor interface {
	Predict(rows [][]float64) ([]float64, error)
	FeatureNames() []string
}

// LinearModel is the serialized regressor artifact: a linear model exported
// by the offline training job as JSON. Immutable after load.
type LinearModel struct {
	intercept float64
	features  []string
	weights   []float64
}

type artifact struct {
	Intercept float64   `json:"intercept"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
}

// Load reads the model artifact from disk. A missing file is reported via
// os.IsNotExist so callers can degrade instead of failing startup.
func Load(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(art.Features) == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(art.Features) != len(art.Weights) {
		return nil, fmt.Errorf("model artifact has %d features but %d weights", len(art.Features), len(art.Weights))
	}

	return &LinearModel{
		intercept: art.Intercept,
		features:  append([]string(nil), art.Features...),
		weights:   append([]float64(nil), art.Weights...),
	}, nil
}

// NewLinear builds a model in memory, used by tests and tooling.
func NewLinear(intercept float64, features []string, weights []float64) (*LinearModel, error) {
	if len(features) == 0 || len(features) != len(weights) {
		return nil, fmt.Errorf("features and weights must be non-empty and equal length")
	}
	return &LinearModel{
		intercept: intercept,
		features:  append([]string(nil), features...),
		weights:   append([]float64(nil), weights...),
	}, nil
}

// Predict computes one price per row. Rows must already be aligned to
// FeatureNames order.
func (m *LinearModel) Predict(rows [][]float64) ([]float64, error) {
	if m == nil {
		return nil, pkgerrors.New(pkgerrors.CodeModelMissing, "no trained model loaded")
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.weights) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("row %d has %d features, model expects %d", i, len(row), len(m.weights)))
		}
		sum := m.intercept
		for j, v := range row {
			sum += v * m.weights[j]
		}
		out[i] = sum
	}
	return out, nil
}

// FeatureNames returns the ordered schema the model was fit on.
func (m *LinearModel) FeatureNames() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.features...)
}
