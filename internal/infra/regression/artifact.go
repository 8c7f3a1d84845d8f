package regression

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

// Artifact is the on-disk form of a trained linear model. Feature order is
// the column order the model was trained on.
type Artifact struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Target    string    `json:"target"`
	Unit      string    `json:"unit"`
	Intercept float64   `json:"intercept"`
	Features  []Feature `json:"features"`
	MinOutput *float64  `json:"minOutput,omitempty"`
}

// Feature is one encoded input column.
type Feature struct {
	Column      string               `json:"column"`
	Type        footprint.ColumnKind `json:"type"`
	Levels      map[string]float64   `json:"levels,omitempty"`
	Coefficient float64              `json:"coefficient,omitempty"`
	Mean        float64              `json:"mean,omitempty"`
	Scale       float64              `json:"scale,omitempty"`
}

// DecodeArtifact parses and sanity checks artifact bytes.
func DecodeArtifact(data []byte) (Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("decode model artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return Artifact{}, fmt.Errorf("invalid model artifact: %w", err)
	}
	return a, nil
}

func (a Artifact) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if len(a.Features) == 0 {
		return errors.New("features cannot be empty")
	}
	seen := make(map[string]struct{}, len(a.Features))
	for i, f := range a.Features {
		if strings.TrimSpace(f.Column) == "" {
			return fmt.Errorf("feature %d has no column", i)
		}
		if _, dup := seen[f.Column]; dup {
			return fmt.Errorf("duplicate feature column %q", f.Column)
		}
		seen[f.Column] = struct{}{}
		switch f.Type {
		case footprint.KindNumeric:
			if f.Scale < 0 {
				return fmt.Errorf("feature %q has negative scale", f.Column)
			}
		case footprint.KindCategorical, footprint.KindSet:
			if len(f.Levels) == 0 {
				return fmt.Errorf("feature %q has no levels", f.Column)
			}
		default:
			return fmt.Errorf("feature %q has unsupported type %q", f.Column, f.Type)
		}
	}
	return nil
}

// Columns lists the trained column names in order.
func (a Artifact) Columns() []string {
	cols := make([]string, len(a.Features))
	for i, f := range a.Features {
		cols[i] = f.Column
	}
	return cols
}
