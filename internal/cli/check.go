package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/annotation"
	"github.com/jokarl/banlist/internal/config"
	"github.com/jokarl/banlist/internal/git"
	"github.com/jokarl/banlist/internal/loader"
	"github.com/jokarl/banlist/internal/output"
	"github.com/jokarl/banlist/internal/pathfilter"
	"github.com/jokarl/banlist/internal/types"
	"github.com/jokarl/banlist/internal/validator"
)

var (
	formatFlag string
	outputFlag string
	failOnFlag string
	colorFlag  string
	sinceFlag  string
	quietFlag  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Scan files for banned words",
	Long: `Scan the files under path (default: the current directory) selected by the
paths block of the configuration, run every configured validator over them
and report each match with its location.

With --since, only files changed since the given git ref are scanned.

Findings can be suppressed in place with annotations:

  # banlist:ignore ban_list # reason
  <!-- banlist:ignore-file -->`,
	Args: withUsage(cobra.MaximumNArgs(1)),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: text, json, compact, checkstyle, junit, sarif (default from config)")
	checkCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	checkCmd.Flags().StringVar(&failOnFlag, "fail-on", "", "Fail on severity: ERROR, WARNING, NOTICE (default from config)")
	checkCmd.Flags().StringVar(&colorFlag, "color", "", "Color mode: auto, always, never (default from config)")
	checkCmd.Flags().StringVar(&sinceFlag, "since", "", "Only scan files changed since this git ref")
	checkCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress output when the check passes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	log := logger.Named("check")

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if formatFlag != "" {
		if !output.IsValidFormat(formatFlag) {
			return usageErrorf("invalid --format %q (must be one of %v)", formatFlag, output.ValidFormats())
		}
		format = formatFlag
	}
	colorMode := cfg.Output.Color
	if colorFlag != "" {
		colorMode = colorFlag
	}
	failOn := cfg.FailOn()
	if failOnFlag != "" {
		failOn, err = types.ParseSeverity(failOnFlag)
		if err != nil {
			return usageErrorf("invalid --fail-on value: %w", err)
		}
	}

	engine, err := cfg.BuildEngine(validator.DefaultRegistry, log)
	if errors.Is(err, config.ErrNoValidators) {
		return fmt.Errorf("%w: add a validator block to %s (see `banlist init`)", err, config.FileName)
	}
	if err != nil {
		return err
	}

	filter, err := pathfilter.New(cfg.Paths.Include, cfg.Paths.Exclude)
	if err != nil {
		return err
	}

	loaded, err := loadTargets(cmd, root, filter)
	if err != nil {
		return err
	}
	for _, s := range loaded.Skipped {
		log.Debug("skipped file", "path", s.Path, "reason", s.Reason)
	}
	log.Debug("scanning", "files", len(loaded.Targets))

	result, err := engine.Check(ctx, loaded.Targets, failOn)
	if err != nil {
		return err
	}

	if cfg.IsAnnotationsEnabled() {
		applyAnnotations(cfg, loaded.Targets, result, log)
	}

	w, closeOut, err := openOutput(cmd, outputFlag)
	if err != nil {
		return err
	}
	defer closeOut()

	if !quietFlag || !result.Passed() {
		renderer := output.NewRenderer(output.Format(format), shouldUseColor(w, colorMode))
		if err := renderer.Render(w, result); err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
	}

	if !result.Passed() {
		return errFailed
	}
	return nil
}

// loadTargets reads the files to scan, limited to those changed since
// --since when it is set
func loadTargets(cmd *cobra.Command, root string, filter *pathfilter.Filter) (*loader.Result, error) {
	ld := loader.New(filter)
	if sinceFlag == "" {
		return ld.Load(root)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, usageErrorf("--since requires a directory, got file %s", root)
	}

	ctx := commandContext(cmd)
	if err := git.CheckMinVersion(ctx); err != nil {
		return nil, err
	}
	repoRoot, err := git.FindGitRoot(ctx, root)
	var notRepo *git.ErrNotARepository
	if errors.As(err, &notRepo) {
		return nil, usageErrorf("--since requires a git repository: %w", err)
	}
	if err != nil {
		return nil, err
	}
	logger.Named("check").Debug("listing changes", "repository", repoRoot, "since", sinceFlag)

	changed, err := git.ChangedFiles(ctx, root, sinceFlag)
	if err != nil {
		return nil, err
	}
	return ld.LoadFiles(root, filter.Select(changed))
}

// applyAnnotations marks findings suppressed by ignore annotations in the
// scanned files and recomputes the result
func applyAnnotations(cfg *config.Config, targets []validator.Target, result *types.CheckResult, log hclog.Logger) {
	resolver := annotation.NewRegistryResolver(validator.DefaultRegistry)
	parser := annotation.NewParser(resolver)

	var anns []*annotation.Annotation
	for _, t := range targets {
		anns = append(anns, parser.ParseFile(t.Name, []byte(t.Text))...)
	}

	gov := annotation.NewGovernanceConfig(true,
		cfg.Annotations.RequireReason,
		cfg.Annotations.AllowValidators,
		cfg.Annotations.DenyValidators,
		resolver)
	for _, v := range annotation.Apply(result.Findings, anns, gov) {
		log.Warn("annotation not applied", "file", v.Annotation.Filename, "line", v.Annotation.Line, "reason", v.Message)
	}
	result.Compute()
}
