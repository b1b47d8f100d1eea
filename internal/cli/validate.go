package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/jokarl/banlist/internal/output"
	"github.com/jokarl/banlist/internal/validator"
)

var (
	wordsFlag       []string
	maxDistFlag     int
	onFailFlag      string
	validateJSON    bool
	validateColor   string
	caseSensitive   bool
	keepSpacesFlag  bool
	replacementFlag string
)

var validateCmd = &cobra.Command{
	Use:   "validate [text]",
	Short: "Validate a value and apply the on-fail policy",
	Long: `Run validators over a single value, read from the arguments or from stdin,
and print the validation outcome.

Without --word the validators configured in ` + "`validator`" + ` blocks are used.
With --word an ad hoc ban_list validator is built from the flags.

The command exits with status 1 when validation does not pass.

Example:
  echo "we ate a bananna" | banlist validate --word banana --on-fail fix`,
	Args: cobra.ArbitraryArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSliceVarP(&wordsFlag, "word", "w", nil, "Banned word (repeatable); replaces configured validators")
	validateCmd.Flags().IntVar(&maxDistFlag, "max-dist", 1, "Maximum Levenshtein distance for --word")
	validateCmd.Flags().StringVar(&onFailFlag, "on-fail", "", "On-fail action: noop, fix, filter, refrain, exception")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the outcome as JSON")
	validateCmd.Flags().StringVar(&validateColor, "color", "auto", "Color mode: auto, always, never")
	validateCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case for --word")
	validateCmd.Flags().BoolVar(&keepSpacesFlag, "keep-spaces", false, "Do not ignore whitespace for --word")
	validateCmd.Flags().StringVar(&replacementFlag, "replacement", "", "Text substituted for matches by the fix action")
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var onFail validator.OnFail
	if onFailFlag != "" {
		if onFail, err = validator.ParseOnFail(onFailFlag); err != nil {
			return usageErrorf("invalid --on-fail: %w", err)
		}
	}

	guard, err := buildGuard(cmd, onFail)
	if err != nil {
		return err
	}

	outcome, err := guard.Parse(commandContext(cmd), text)
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(cmd.ErrOrStderr(), verr.Error())
		return errFailed
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	renderer := &output.OutcomeRenderer{JSON: validateJSON, ColorEnabled: shouldUseColor(w, validateColor)}
	if err := renderer.Render(w, outcome); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if !outcome.ValidationPassed {
		return errFailed
	}
	return nil
}

// buildGuard returns a guard over the --word validator, or over the
// configured validators. A non-empty onFail overrides every step.
func buildGuard(cmd *cobra.Command, onFail validator.OnFail) (*validator.Guard, error) {
	var steps []validator.Step

	if len(wordsFlag) > 0 {
		if maxDistFlag < 0 {
			return nil, usageErrorf("--max-dist must be >= 0, got %d", maxDistFlag)
		}
		words := make([]cty.Value, len(wordsFlag))
		for i, w := range wordsFlag {
			words[i] = cty.StringVal(w)
		}
		args := validator.Args{
			validator.ArgBannedWords:   cty.ListVal(words),
			validator.ArgMaxDist:       cty.NumberIntVal(int64(maxDistFlag)),
			validator.ArgCaseSensitive: cty.BoolVal(caseSensitive),
			validator.ArgIgnoreSpaces:  cty.BoolVal(!keepSpacesFlag),
			validator.ArgReplacement:   cty.StringVal(replacementFlag),
		}
		v, err := validator.DefaultRegistry.New(validator.BanListName, args)
		if err != nil {
			return nil, usageErrorf("%w", err)
		}
		steps = append(steps, validator.Step{Validator: v, OnFail: validator.OnFailNoop})
	} else {
		cfg, err := loadConfig(".")
		if err != nil {
			return nil, err
		}
		engine, err := cfg.BuildEngine(validator.DefaultRegistry, logger.Named("validate"))
		if err != nil {
			return nil, fmt.Errorf("%w (pass --word or configure a validator block)", err)
		}
		steps = engine.Guard().Steps()
	}

	if onFail != "" {
		for i := range steps {
			steps[i].OnFail = onFail
		}
	}
	return validator.NewGuard(steps...).WithLogger(logger.Named("guard")), nil
}
