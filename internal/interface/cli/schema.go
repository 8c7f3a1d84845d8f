package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the feature record columns in model order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			p := newPalette(out)
			fmt.Fprintln(out, p.title.Render("Feature record"))
			for i, col := range footprint.Columns() {
				fmt.Fprintf(out, "%2d  %-30s %s\n", i+1, col.Name, p.muted.Render(string(col.Kind)))
			}
			return nil
		},
	}
}
