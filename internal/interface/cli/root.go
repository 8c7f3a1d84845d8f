// Package cli exposes the estimator as the carbonctl command line tool.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

const defaultModelPath = "models/carbon_model.json"

// NewRootCommand assembles carbonctl and its subcommands.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Estimate a monthly carbon footprint from lifestyle answers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPredictCommand(logger))
	root.AddCommand(newSchemaCommand())
	return root
}
