package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	"github.com/yanqian/carbon-footprint/internal/infra/modelsource"
	"github.com/yanqian/carbon-footprint/internal/infra/regression"
	apperrors "github.com/yanqian/carbon-footprint/pkg/errors"
	"github.com/yanqian/carbon-footprint/pkg/metrics"
)

// ErrPredictionFailed is returned after the failure line has been printed.
var ErrPredictionFailed = errors.New("prediction failed")

type predictOptions struct {
	modelPath string
	inputPath string
	asJSON    bool
	noChart   bool
}

func newPredictCommand(logger *slog.Logger) *cobra.Command {
	opts := predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one survey against the regression model",
		Long: `Reads a survey as JSON (from --input, or stdin with --input -), fills
omitted answers with the form defaults and prints the estimate with a
contributor chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, opts, logger)
		},
	}
	cmd.Flags().StringVar(&opts.modelPath, "model", defaultModelPath, "Path to the model artifact")
	cmd.Flags().StringVar(&opts.inputPath, "input", "", "Survey JSON file, - for stdin, empty for the defaults")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the estimate as JSON")
	cmd.Flags().BoolVar(&opts.noChart, "no-chart", false, "Skip the contributor chart")
	return cmd
}

func runPredict(cmd *cobra.Command, opts predictOptions, logger *slog.Logger) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	survey, err := readSurvey(opts.inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	model, err := regression.Load(ctx, modelsource.NewFileSource(opts.modelPath))
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	svc := footprint.NewService(
		footprint.Config{ShowRanking: !opts.noChart},
		model,
		nil,
		metrics.NewPredictionStats(),
		logger,
	)
	est, err := svc.Estimate(ctx, survey)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodePredictionError) {
			fmt.Fprintln(out, newPalette(out).failure.Render(footprint.PredictionFailedMessage))
			return ErrPredictionFailed
		}
		return errors.New(apperrors.MessageOf(err))
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(est)
	}
	_, err = io.WriteString(out, renderEstimate(out, est))
	return err
}

func readSurvey(path string, stdin io.Reader) (footprint.Survey, error) {
	survey := footprint.DefaultSurvey()
	if path == "" {
		return survey, nil
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return footprint.Survey{}, fmt.Errorf("open survey: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&survey); err != nil {
		return footprint.Survey{}, fmt.Errorf("decode survey: %w", err)
	}
	return survey, nil
}
