package footprint

import (
	"context"
	"time"

	"github.com/yanqian/carbon-footprint/pkg/metrics"
)

// Config wires runtime knobs for the estimator.
type Config struct {
	CacheTTL    time.Duration
	ShowRanking bool
}

// Estimate is the presented outcome of one submission.
type Estimate struct {
	Value     float64       `json:"estimate"`
	Display   string        `json:"display"`
	Unit      string        `json:"unit"`
	Cached    bool          `json:"cached"`
	Ranking   []Contributor `json:"ranking,omitempty"`
	Record    Table         `json:"record"`
	Model     ModelInfo     `json:"model"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ModelInfo describes the loaded model artifact.
type ModelInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Digest  string `json:"digest,omitempty"`
	Target  string `json:"target,omitempty"`
	Unit    string `json:"unit,omitempty"`
	Source  string `json:"source,omitempty"`
	Ready   bool   `json:"ready"`
	Error   string `json:"error,omitempty"`
}

// Status bundles the model description with process counters.
type Status struct {
	Model ModelInfo             `json:"model"`
	Stats metrics.StatsSnapshot `json:"stats"`
}

// Predictor is the port to the pre-trained regression artifact. Implementations
// must be deterministic and free of side effects.
type Predictor interface {
	Predict(ctx context.Context, record FeatureRecord) (float64, error)
	Info() ModelInfo
}

// Cache stores estimates by record fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Save(ctx context.Context, key string, value float64, ttl time.Duration) error
}
