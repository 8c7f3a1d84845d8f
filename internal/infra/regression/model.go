package regression

import (
	"context"
	"fmt"
	"math"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

// Model scores FeatureRecords with a loaded Artifact. It is read-only after
// construction and safe for concurrent use.
type Model struct {
	artifact Artifact
	source   string
	digest   string
}

// NewModel wraps a decoded artifact.
func NewModel(artifact Artifact, source string) *Model {
	return &Model{artifact: artifact, source: source}
}

// Info implements footprint.Predictor.
func (m *Model) Info() footprint.ModelInfo {
	return footprint.ModelInfo{
		Name:    m.artifact.Name,
		Version: m.artifact.Version,
		Digest:  m.digest,
		Target:  m.artifact.Target,
		Unit:    m.artifact.Unit,
		Source:  m.source,
		Ready:   true,
	}
}

// Predict implements footprint.Predictor.
func (m *Model) Predict(ctx context.Context, record footprint.FeatureRecord) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, footprint.NewPredictionError("prediction cancelled", "", err)
	}
	cells := record.Cells()
	if len(cells) != len(m.artifact.Features) {
		return 0, footprint.NewPredictionError(
			fmt.Sprintf("record has %d columns, model expects %d", len(cells), len(m.artifact.Features)), "", nil)
	}

	total := m.artifact.Intercept
	for i, feature := range m.artifact.Features {
		cell := cells[i]
		if cell.Column != feature.Column {
			return 0, footprint.NewPredictionError(
				fmt.Sprintf("column %d is %q, model expects %q", i, cell.Column, feature.Column), feature.Column, nil)
		}
		if cell.Kind != feature.Type {
			return 0, footprint.NewPredictionError(
				fmt.Sprintf("column kind %s is incompatible with %s", cell.Kind, feature.Type), feature.Column, nil)
		}
		contribution, err := feature.contribution(cell)
		if err != nil {
			return 0, err
		}
		total += contribution
	}

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, footprint.NewPredictionError("numerical failure", "", nil)
	}
	if m.artifact.MinOutput != nil && total < *m.artifact.MinOutput {
		total = *m.artifact.MinOutput
	}
	return total, nil
}

func (f Feature) contribution(cell footprint.Cell) (float64, error) {
	switch f.Type {
	case footprint.KindNumeric:
		scale := f.Scale
		if scale == 0 {
			scale = 1
		}
		return f.Coefficient * (cell.Number - f.Mean) / scale, nil
	case footprint.KindCategorical:
		w, ok := f.Levels[cell.Category]
		if !ok {
			return 0, footprint.NewPredictionError(fmt.Sprintf("unknown level %q", cell.Category), f.Column, nil)
		}
		return w, nil
	case footprint.KindSet:
		var sum float64
		for _, item := range cell.Items {
			w, ok := f.Levels[item]
			if !ok {
				return 0, footprint.NewPredictionError(fmt.Sprintf("unknown level %q", item), f.Column, nil)
			}
			sum += w
		}
		return sum, nil
	}
	return 0, footprint.NewPredictionError(fmt.Sprintf("unsupported feature type %q", f.Type), f.Column, nil)
}

var _ footprint.Predictor = (*Model)(nil)
