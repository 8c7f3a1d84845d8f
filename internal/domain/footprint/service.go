package footprint

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	apperrors "github.com/yanqian/carbon-footprint/pkg/errors"
	"github.com/yanqian/carbon-footprint/pkg/metrics"
	"github.com/yanqian/carbon-footprint/pkg/util"
)

// Service exposes the survey -> estimate flow.
type Service interface {
	Estimate(ctx context.Context, s Survey) (Estimate, error)
	Form() Form
	Status() Status
}

type service struct {
	cfg       Config
	predictor Predictor
	cache     Cache
	stats     *metrics.PredictionStats
	logger    *slog.Logger
	now       util.Clock
}

// NewService wires up the estimator domain.
func NewService(cfg Config, predictor Predictor, cache Cache, stats *metrics.PredictionStats, logger *slog.Logger) Service {
	if stats == nil {
		stats = metrics.NewPredictionStats()
	}
	return &service{
		cfg:       cfg,
		predictor: predictor,
		cache:     cache,
		stats:     stats,
		logger:    logger.With("component", "footprint.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Estimate(ctx context.Context, input Survey) (Estimate, error) {
	s.stats.RecordRequest()

	survey, err := Normalize(input)
	if err != nil {
		return Estimate{}, err
	}

	record := BuildRecord(survey)
	info := s.predictor.Info()
	key := fingerprint(record, info)

	value, cached := s.lookup(ctx, key)
	if !cached {
		value, err = s.predict(ctx, record)
		if err != nil {
			s.stats.RecordFailure()
			s.logger.Error("prediction failed", "model", info.Name, "version", info.Version, "error", err)
			return Estimate{}, apperrors.Wrap(apperrors.CodePredictionError, "prediction failed", err)
		}
		if s.cache != nil && key != "" {
			if err := s.cache.Save(ctx, key, value, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("estimate cache save failed", "error", err)
			}
		}
	}

	rounded := roundTo2(value)
	s.logger.Info("estimate produced", "estimate", rounded, "cached", cached, "model_version", info.Version)

	res := Estimate{
		Value:     rounded,
		Display:   FormatEstimate(value),
		Unit:      EmissionUnit,
		Cached:    cached,
		Record:    record.Table(),
		Model:     info,
		CreatedAt: s.now(),
	}
	if s.cfg.ShowRanking {
		res.Ranking = RankContributors(survey)
	}
	return res, nil
}

func (s *service) Form() Form {
	return SurveyForm()
}

func (s *service) Status() Status {
	return Status{Model: s.predictor.Info(), Stats: s.stats.Snapshot()}
}

func (s *service) predict(ctx context.Context, record FeatureRecord) (float64, error) {
	value, err := s.predictor.Predict(ctx, record)
	if err != nil {
		var predErr *PredictionError
		if errors.As(err, &predErr) {
			return 0, err
		}
		return 0, NewPredictionError("model call failed", "", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, NewPredictionError("model returned a non-finite value", "", nil)
	}
	return value, nil
}

func (s *service) lookup(ctx context.Context, key string) (float64, bool) {
	if s.cache == nil || key == "" {
		return 0, false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("estimate cache lookup failed", "error", err)
		return 0, false
	}
	if ok {
		s.stats.RecordCacheHit()
	}
	return value, ok
}

// fingerprint keys a record to the exact artifact that scored it.
func fingerprint(record FeatureRecord, info ModelInfo) string {
	payload, err := json.Marshal(record.Table())
	if err != nil {
		return ""
	}
	h := xxhash.New()
	_, _ = h.WriteString(info.Name)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(info.Version)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(info.Digest)
	_, _ = h.WriteString("\x00")
	_, _ = h.Write(payload)
	return strconv.FormatUint(h.Sum64(), 16)
}
