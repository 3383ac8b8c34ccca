package model

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/smartmandi/inference/internal/domain"
)

// LinearModel is a serialized linear regressor: intercept + coefficients . row
type LinearModel struct {
	Name         string    `json:"name"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

// DecodeLinearModel reads and validates a JSON model artifact
func DecodeLinearModel(r io.Reader) (*LinearModel, error) {
	var m LinearModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("model %q has no coefficients", m.Name)
	}

	if len(m.FeatureNames) > 0 && len(m.FeatureNames) != len(m.Coefficients) {
		return nil, fmt.Errorf("model %q declares %d feature names for %d coefficients",
			m.Name, len(m.FeatureNames), len(m.Coefficients))
	}

	return &m, nil
}

// Width returns the number of features the model expects per row
func (m *LinearModel) Width() int {
	return len(m.Coefficients)
}

// Predict scores each row. Rows of the wrong width fail the whole call.
func (m *LinearModel) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("%w: row %d has %d features, model %q expects %d",
				domain.ErrFeatureMismatch, i, len(row), m.Name, len(m.Coefficients))
		}

		y := m.Intercept
		for j, x := range row {
			y += m.Coefficients[j] * x
		}
		out = append(out, y)
	}
	return out, nil
}
