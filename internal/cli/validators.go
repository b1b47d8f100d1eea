package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/validator"
)

var validatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "List available validators",
	Args:  withUsage(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSEVERITY\tDESCRIPTION")
		for _, f := range validator.DefaultRegistry.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.DefaultSeverity, f.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(validatorsCmd)
}
