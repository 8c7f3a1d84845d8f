package regression

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

// Source yields the raw bytes of a model artifact.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	Describe() string
}

// Load reads and decodes the artifact behind src.
func Load(ctx context.Context, src Source) (*Model, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read model artifact from %s: %w", src.Describe(), err)
	}
	artifact, err := DecodeArtifact(data)
	if err != nil {
		return nil, err
	}
	model := NewModel(artifact, src.Describe())
	model.digest = Digest(data)
	return model, nil
}

// Digest identifies artifact bytes, so retrained weights shipped under an
// unchanged version still get their own cache entries.
func Digest(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// LoadOrUnavailable loads the artifact once at startup. A failure is logged
// and turned into a predictor that rejects every call.
func LoadOrUnavailable(ctx context.Context, src Source, logger *slog.Logger) footprint.Predictor {
	logger = logger.With("component", "regression.loader")
	model, err := Load(ctx, src)
	if err != nil {
		logger.Error("model artifact unavailable, predictions will fail", "source", src.Describe(), "error", err)
		return NewUnavailable(src.Describe(), err)
	}
	if cols := columnNames(footprint.Columns()); !slices.Equal(cols, model.artifact.Columns()) {
		logger.Warn("model artifact columns differ from the feature record schema", "source", src.Describe(), "artifact_columns", model.artifact.Columns())
	}
	info := model.Info()
	logger.Info("model artifact loaded", "name", info.Name, "version", info.Version, "digest", info.Digest, "source", info.Source)
	return model
}

func columnNames(cols []footprint.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
