package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/validator"
)

var explainCmd = &cobra.Command{
	Use:   "explain <validator>",
	Short: "Show validator documentation",
	Long: `Show detailed documentation for a validator, by name or ID, including:
- Validator ID and name
- Default severity
- Description
- Arguments
- Example configuration, input and fix

Example:
  banlist explain ban_list`,
	Args: withUsage(cobra.ExactArgs(1)),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	doc := validator.GetDocumentation(args[0])
	if doc == nil {
		var b strings.Builder
		fmt.Fprintf(&b, "unknown validator: %s\n\nAvailable validators:", args[0])
		for _, f := range validator.DefaultRegistry.All() {
			fmt.Fprintf(&b, "\n  %s  %s", f.ID, f.Name)
		}
		return usageErrorf("%s", b.String())
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %s\n", doc.ID, doc.Name)
	fmt.Fprintf(w, "Severity: %s\n", doc.DefaultSeverity)
	fmt.Fprintln(w)
	fmt.Fprintln(w, doc.Description)
	fmt.Fprintln(w)

	if len(doc.Args) > 0 {
		fmt.Fprintln(w, "Arguments:")
		for _, a := range doc.Args {
			fmt.Fprintf(w, "  %s (%s", a.Name, a.Type)
			switch {
			case a.Required:
				fmt.Fprint(w, ", required")
			case a.Default != "":
				fmt.Fprintf(w, ", default %s", a.Default)
			}
			fmt.Fprintf(w, ")\n      %s\n", a.Description)
		}
		fmt.Fprintln(w)
	}

	writeSection(w, "Example configuration:", doc.ExampleConfig)
	writeSection(w, "Example input:", doc.ExampleInput)
	writeSection(w, "Fixed output:", doc.ExampleFix)

	return nil
}

func writeSection(w io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, indent(body, "  "))
	fmt.Fprintln(w)
}

// indent adds a prefix to each line of text
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
