package cli

import (
	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/output"
)

var (
	matchMaxDist int
	matchJSON    bool
)

var matchCmd = &cobra.Command{
	Use:   "match <pattern> [text]",
	Short: "Find approximate occurrences of a pattern",
	Long: `Find every approximate occurrence of pattern in text (or stdin) whose
Levenshtein distance is at most --max-dist. Overlapping candidates are
resolved in favor of the lowest distance, then the shortest match, then the
leftmost one. Offsets are character offsets into the text.

Unlike validate, no normalization is applied: the text is matched as is.

Example:
  banlist match PATTERN aaaPATERNaaa --max-dist 1`,
	Args: withUsage(cobra.RangeArgs(1, 2)),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntVar(&matchMaxDist, "max-dist", 1, "Maximum Levenshtein distance")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Print matches as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	text, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	matches, err := nearmatch.FindNearMatches(pattern, text, matchMaxDist)
	if err != nil {
		return usageErrorf("%w", err)
	}
	logger.Named("match").Debug("matched", "pattern", pattern, "max_l_dist", matchMaxDist, "matches", len(matches))

	return output.RenderMatches(cmd.OutOrStdout(), output.MatchReport{
		Pattern: pattern,
		MaxDist: matchMaxDist,
		Matches: matches,
	}, matchJSON)
}
