package regression

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	"github.com/yanqian/carbon-footprint/internal/infra/predcache"
	"github.com/yanqian/carbon-footprint/pkg/metrics"
)

func TestModelPredictScenario(t *testing.T) {
	model := NewModel(testArtifact(), "test")

	got, err := model.Predict(context.Background(), footprint.BuildRecord(scenarioSurvey()))
	require.NoError(t, err)
	// intercept 100 + 11 matched levels + raw numerics 316 + Paper 2 + Stove 3
	require.InDelta(t, 432.0, got, 1e-9)
}

func TestModelPredictDeterministic(t *testing.T) {
	model := NewModel(testArtifact(), "test")
	record := footprint.BuildRecord(scenarioSurvey())

	first, err := model.Predict(context.Background(), record)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := model.Predict(context.Background(), record)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestModelPredictZeroNumerics(t *testing.T) {
	model := NewModel(testArtifact(), "test")
	s := scenarioSurvey()
	s.GroceryBill, s.VehicleDistanceKm, s.ScreenHours, s.InternetHours = 0, 0, 0, 0
	s.WasteBagCount, s.NewClothes = 0, 0

	got, err := model.Predict(context.Background(), footprint.BuildRecord(s))
	require.NoError(t, err)
	require.InDelta(t, 116.0, got, 1e-9)
}

func TestModelPredictStandardizesNumerics(t *testing.T) {
	a := testArtifact()
	for i := range a.Features {
		if a.Features[i].Column == footprint.ColGroceryBill {
			a.Features[i].Coefficient = 10
			a.Features[i].Mean = 100
			a.Features[i].Scale = 50
		}
	}
	got, err := NewModel(a, "test").Predict(context.Background(), footprint.BuildRecord(scenarioSurvey()))
	require.NoError(t, err)
	// grocery contributes 10*(200-100)/50 = 20 instead of 200
	require.InDelta(t, 432.0-200+20, got, 1e-9)
}

func TestModelPredictClampsToMinOutput(t *testing.T) {
	a := testArtifact()
	a.Intercept = -10000
	floor := 306.0
	a.MinOutput = &floor

	got, err := NewModel(a, "test").Predict(context.Background(), footprint.BuildRecord(scenarioSurvey()))
	require.NoError(t, err)
	require.Equal(t, 306.0, got)
}

func TestModelPredictSchemaMismatch(t *testing.T) {
	record := footprint.BuildRecord(scenarioSurvey())

	tests := []struct {
		name   string
		mutate func(*Artifact)
		column string
	}{
		{"missing column", func(a *Artifact) { a.Features = a.Features[:18] }, ""},
		{"renamed column", func(a *Artifact) { a.Features[18].Column = "Cooking With" }, "Cooking With"},
		{"swapped order", func(a *Artifact) { a.Features[0], a.Features[1] = a.Features[1], a.Features[0] }, footprint.ColSex},
		{"wrong kind", func(a *Artifact) { a.Features[17].Type = footprint.KindCategorical }, footprint.ColRecycling},
		{"unknown level", func(a *Artifact) { delete(a.Features[2].Levels, "omnivore") }, footprint.ColDiet},
		{"unknown set item", func(a *Artifact) { delete(a.Features[17].Levels, "Paper") }, footprint.ColRecycling},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := testArtifact()
			tc.mutate(&a)
			_, err := NewModel(a, "test").Predict(context.Background(), record)
			var predErr *footprint.PredictionError
			require.ErrorAs(t, err, &predErr)
			require.Equal(t, tc.column, predErr.Column)
		})
	}
}

func TestModelPredictCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewModel(testArtifact(), "test").Predict(ctx, footprint.BuildRecord(scenarioSurvey()))
	var predErr *footprint.PredictionError
	require.ErrorAs(t, err, &predErr)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeArtifactValidation(t *testing.T) {
	_, err := DecodeArtifact([]byte(`not json`))
	require.Error(t, err)

	_, err = DecodeArtifact([]byte(`{"name":"m","features":[]}`))
	require.ErrorContains(t, err, "features cannot be empty")

	_, err = DecodeArtifact([]byte(`{"name":"m","features":[{"column":"a","type":"tree"}]}`))
	require.ErrorContains(t, err, "unsupported type")

	_, err = DecodeArtifact([]byte(`{"name":"m","features":[{"column":"a","type":"categorical"}]}`))
	require.ErrorContains(t, err, "no levels")

	_, err = DecodeArtifact([]byte(`{"name":"m","features":[{"column":"a","type":"numeric"},{"column":"a","type":"numeric"}]}`))
	require.ErrorContains(t, err, "duplicate")
}

func TestShippedArtifactMatchesSchema(t *testing.T) {
	src := fileSource(filepath.Join("..", "..", "..", "models", "carbon_model.json"))
	model, err := Load(context.Background(), src)
	require.NoError(t, err)

	names := make([]string, 0, 19)
	for _, c := range footprint.Columns() {
		names = append(names, c.Name)
	}
	require.Equal(t, names, model.artifact.Columns())

	for _, s := range []footprint.Survey{scenarioSurvey(), footprint.DefaultSurvey()} {
		got, err := model.Predict(context.Background(), footprint.BuildRecord(s))
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, 306.0)
	}
}

func TestLoadOrUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	missing := LoadOrUnavailable(context.Background(), fileSource(filepath.Join(t.TempDir(), "nope.json")), logger)
	info := missing.Info()
	require.False(t, info.Ready)
	require.NotEmpty(t, info.Error)

	_, err := missing.Predict(context.Background(), footprint.BuildRecord(scenarioSurvey()))
	var predErr *footprint.PredictionError
	require.ErrorAs(t, err, &predErr)
	require.ErrorIs(t, err, os.ErrNotExist)

	loaded := LoadOrUnavailable(context.Background(), fileSource(filepath.Join("..", "..", "..", "models", "carbon_model.json")), logger)
	require.True(t, loaded.Info().Ready)
	require.Equal(t, "carbon-emission-linear", loaded.Info().Name)
}

func TestLoadRecordsArtifactDigest(t *testing.T) {
	original := `{"name":"m","version":"1","intercept":10,"features":[{"column":"a","type":"numeric","coefficient":1}]}`
	retrained := `{"name":"m","version":"1","intercept":12,"features":[{"column":"a","type":"numeric","coefficient":1}]}`

	first, err := Load(context.Background(), bytesSource(original))
	require.NoError(t, err)
	require.Equal(t, Digest([]byte(original)), first.Info().Digest)

	second, err := Load(context.Background(), bytesSource(retrained))
	require.NoError(t, err)
	require.Equal(t, first.Info().Version, second.Info().Version)
	require.NotEqual(t, first.Info().Digest, second.Info().Digest)
}

func TestServiceEstimateConcurrentReaders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	model, err := Load(context.Background(), fileSource(filepath.Join("..", "..", "..", "models", "carbon_model.json")))
	require.NoError(t, err)

	surveys := make([]footprint.Survey, 8)
	want := make([]string, len(surveys))
	for i := range surveys {
		s := scenarioSurvey()
		s.GroceryBill = float64(100 + 25*i)
		s.VehicleDistanceKm = float64(50 * i)
		surveys[i] = s
		value, err := model.Predict(context.Background(), footprint.BuildRecord(s))
		require.NoError(t, err)
		want[i] = footprint.FormatEstimate(value)
	}

	svc := footprint.NewService(
		footprint.Config{CacheTTL: time.Minute, ShowRanking: true},
		model,
		predcache.NewMemoryStore(0),
		metrics.NewPredictionStats(),
		logger,
	)

	const workers = 32
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < len(surveys); i++ {
				idx := (w + i) % len(surveys)
				est, err := svc.Estimate(context.Background(), surveys[idx])
				if err != nil {
					errCh <- err
					return
				}
				if est.Display != want[idx] {
					errCh <- fmt.Errorf("survey %d: got %q, want %q", idx, est.Display, want[idx])
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	stats := svc.Status().Stats
	require.Equal(t, int64(workers*len(surveys)), stats.Requests)
	require.Zero(t, stats.Failures)
}

func TestLoadWrapsSourceErrors(t *testing.T) {
	_, err := Load(context.Background(), errSource{err: errors.New("denied")})
	require.ErrorContains(t, err, "denied")
	require.ErrorContains(t, err, "stub://")
}

type fileSource string

func (f fileSource) Read(context.Context) ([]byte, error) { return os.ReadFile(string(f)) }
func (f fileSource) Describe() string                     { return "file://" + string(f) }

type bytesSource string

func (b bytesSource) Read(context.Context) ([]byte, error) { return []byte(b), nil }
func (b bytesSource) Describe() string                     { return "mem://model" }

type errSource struct{ err error }

func (e errSource) Read(context.Context) ([]byte, error) { return nil, e.err }
func (e errSource) Describe() string                     { return "stub://model" }

func scenarioSurvey() footprint.Survey {
	return footprint.Survey{
		BodyType:          "normal",
		Sex:               "male",
		Diet:              "omnivore",
		Shower:            "daily",
		HeatingSource:     "electricity",
		Transport:         "private",
		VehicleType:       "petrol",
		SocialActivity:    "sometimes",
		GroceryBill:       200,
		AirTravel:         "rarely",
		VehicleDistanceKm: 100,
		WasteBagSize:      "medium",
		WasteBagCount:     1,
		ScreenHours:       5,
		NewClothes:        5,
		InternetHours:     5,
		EnergyEfficiency:  "Yes",
		Recycling:         []string{"Paper"},
		CookingWith:       []string{"Stove"},
	}
}

// testArtifact gives every scenario level weight 1, every other level 0,
// raw numerics with coefficient 1, and small set weights.
func testArtifact() Artifact {
	s := scenarioSurvey()
	categorical := map[string]struct {
		options []string
		chosen  string
	}{
		footprint.ColBodyType:         {footprint.BodyTypes, s.BodyType},
		footprint.ColSex:              {footprint.Sexes, s.Sex},
		footprint.ColDiet:             {footprint.Diets, s.Diet},
		footprint.ColShower:           {footprint.ShowerFrequencies, s.Shower},
		footprint.ColHeatingSource:    {footprint.HeatingSources, s.HeatingSource},
		footprint.ColTransport:        {footprint.TransportModes, s.Transport},
		footprint.ColVehicleType:      {footprint.VehicleTypes, s.VehicleType},
		footprint.ColSocialActivity:   {footprint.SocialActivities, s.SocialActivity},
		footprint.ColAirTravel:        {footprint.AirTravelFrequency, s.AirTravel},
		footprint.ColWasteBagSize:     {footprint.WasteBagSizes, s.WasteBagSize},
		footprint.ColEnergyEfficiency: {footprint.EnergyEfficiency, s.EnergyEfficiency},
	}
	sets := map[string]map[string]float64{
		footprint.ColRecycling:   {"Paper": 2, "Plastic": 7, "Glass": 7, "Metal": 7},
		footprint.ColCookingWith: {"Stove": 3, "Oven": 7, "Microwave": 7, "Grill": 7, "Airfryer": 7},
	}

	a := Artifact{Name: "test", Version: "1", Intercept: 100}
	for _, col := range footprint.Columns() {
		f := Feature{Column: col.Name, Type: col.Kind}
		switch col.Kind {
		case footprint.KindNumeric:
			f.Coefficient = 1
		case footprint.KindCategorical:
			levels := categorical[col.Name]
			f.Levels = make(map[string]float64, len(levels.options))
			for _, opt := range levels.options {
				f.Levels[opt] = 0
			}
			f.Levels[levels.chosen] = 1
		case footprint.KindSet:
			f.Levels = sets[col.Name]
		}
		a.Features = append(a.Features, f)
	}
	return a
}
