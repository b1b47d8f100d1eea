package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/jokarl/banlist/internal/validator"
	"github.com/jokarl/banlist/internal/wordlist"
)

// evalContext exposes the process environment as env.NAME and a small set
// of string and collection functions to validator arguments.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"split":     stdlib.SplitFunc,
			"join":      stdlib.JoinFunc,
			"concat":    stdlib.ConcatFunc,
			"distinct":  stdlib.DistinctFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

// evaluate turns the remaining attributes of a validator block into Args
// and merges in the words of banned_words_file.
func (vc *ValidatorConfig) evaluate(ctx *hcl.EvalContext, dir string) error {
	args := make(validator.Args)

	if vc.Remain != nil {
		attrs, diags := vc.Remain.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("validator %q: %s", vc.Name, formatDiagnostics(diags))
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return fmt.Errorf("validator %q: %s", vc.Name, formatDiagnostics(diags))
			}
			args[name] = val
		}
	}

	if vc.WordsFile != nil && *vc.WordsFile != "" {
		path := *vc.WordsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		words, err := wordlist.Load(path)
		if err != nil {
			return fmt.Errorf("validator %q: %w", vc.Name, err)
		}

		existing, _, err := args.Strings(validator.ArgBannedWords)
		if err != nil {
			return fmt.Errorf("validator %q: %w", vc.Name, err)
		}
		merged := make([]cty.Value, 0, len(existing)+len(words))
		for _, w := range append(existing, words...) {
			merged = append(merged, cty.StringVal(w))
		}
		if len(merged) > 0 {
			args[validator.ArgBannedWords] = cty.ListVal(merged)
		}
	}

	vc.args = args
	return nil
}
