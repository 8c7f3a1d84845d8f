package regression

import (
	"context"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

// Unavailable stands in for a model whose artifact could not be loaded.
// Every call fails with a PredictionError so the process stays up.
type Unavailable struct {
	source string
	err    error
}

// NewUnavailable records why loading failed.
func NewUnavailable(source string, err error) *Unavailable {
	return &Unavailable{source: source, err: err}
}

// Info implements footprint.Predictor.
func (u *Unavailable) Info() footprint.ModelInfo {
	info := footprint.ModelInfo{Name: "unavailable", Source: u.source}
	if u.err != nil {
		info.Error = u.err.Error()
	}
	return info
}

// Predict implements footprint.Predictor.
func (u *Unavailable) Predict(context.Context, footprint.FeatureRecord) (float64, error) {
	return 0, footprint.NewPredictionError("model artifact not loaded", "", u.err)
}

var _ footprint.Predictor = (*Unavailable)(nil)
