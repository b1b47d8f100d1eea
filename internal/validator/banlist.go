package validator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/types"
)

// BanListName is the registered name of the ban list validator
const BanListName = "ban_list"

// BanListID is the finding identifier of the ban list validator
const BanListID = "BL001"

// BanListMessage is the error message of a failed ban list validation
const BanListMessage = "Output contains banned words"

// Ban list argument names
const (
	ArgBannedWords   = "banned_words"
	ArgMaxDist       = "max_l_dist"
	ArgIgnoreSpaces  = "ignore_spaces"
	ArgCaseSensitive = "case_sensitive"
	ArgNormalize     = "normalize"
	ArgReplacement   = "replacement"
)

func init() {
	Register(&Factory{
		ID:              BanListID,
		Name:            BanListName,
		Description:     "Text contains a banned word or a close misspelling of one",
		DefaultSeverity: types.SeverityError,
		Documentation:   banListDoc,
		New:             newBanListFromArgs,
	})
}

var banListDoc = &Documentation{
	ID:              BanListID,
	Name:            BanListName,
	DefaultSeverity: types.SeverityError,
	Description: `Fails when the text contains any banned word, or any piece of text within
max_l_dist edits (insertions, deletions or substitutions) of one. Spaces are
ignored by default, so "b a n a n a" matches "banana". The fix removes every
matched region.

Keep max_l_dist small relative to the words: every fragment within that many
deletions matches too, so at max_l_dist = 3 the text "ana" matches "athena".`,
	Args: []ArgDoc{
		{Name: ArgBannedWords, Type: "list(string)", Required: true, Description: "Words or phrases to ban"},
		{Name: ArgMaxDist, Type: "number", Default: "1", Description: "Maximum edit distance of a match"},
		{Name: ArgIgnoreSpaces, Type: "bool", Default: "true", Description: "Match as if all whitespace were removed"},
		{Name: ArgCaseSensitive, Type: "bool", Default: "false", Description: "Distinguish upper and lower case"},
		{Name: ArgNormalize, Type: "bool", Default: "true", Description: "Apply Unicode NFC normalization first"},
		{Name: ArgReplacement, Type: "string", Default: `""`, Description: "Text substituted for each match in the fix"},
	},
	ExampleConfig: `validator "ban_list" {
  banned_words = ["banana", "athena", "coconut trees"]
  max_l_dist   = 1
  on_fail      = "fix"
}`,
	ExampleInput: "bananers athens",
	ExampleFix:   "ers s",
}

// ErrNoBannedWords is returned when a ban list resolves to no words
var ErrNoBannedWords = errors.New("no banned words configured")

// BanListOptions configures a BanList
type BanListOptions struct {
	BannedWords   []string
	MaxDist       int
	IgnoreSpaces  bool
	CaseSensitive bool
	Normalize     bool
	Replacement   string
}

// DefaultBanListOptions returns the defaults for everything but the words
func DefaultBanListOptions() BanListOptions {
	return BanListOptions{
		MaxDist:      1,
		IgnoreSpaces: true,
		Normalize:    true,
	}
}

// BanList fails values that approximately contain a banned word
type BanList struct {
	opts     BanListOptions
	patterns []string // banned words in comparison form
}

// NewBanList validates opts and prepares the banned words
func NewBanList(opts BanListOptions) (*BanList, error) {
	if len(opts.BannedWords) == 0 {
		return nil, fmt.Errorf("%s: %w", ArgBannedWords, ErrNoBannedWords)
	}
	if opts.MaxDist < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", ArgMaxDist, opts.MaxDist)
	}

	b := &BanList{opts: opts}
	for i, w := range opts.BannedWords {
		p, _ := b.comparable(w)
		if p == "" {
			return nil, fmt.Errorf("%s[%d] is empty", ArgBannedWords, i)
		}
		b.patterns = append(b.patterns, p)
	}
	return b, nil
}

func newBanListFromArgs(args Args) (Validator, error) {
	err := args.Check(ArgBannedWords, ArgMaxDist, ArgIgnoreSpaces, ArgCaseSensitive, ArgNormalize, ArgReplacement)
	if err != nil {
		return nil, err
	}

	opts := DefaultBanListOptions()
	words, ok, err := args.Strings(ArgBannedWords)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", ArgBannedWords)
	}
	opts.BannedWords = words

	if opts.MaxDist, err = args.Int(ArgMaxDist, opts.MaxDist); err != nil {
		return nil, err
	}
	if opts.IgnoreSpaces, err = args.Bool(ArgIgnoreSpaces, opts.IgnoreSpaces); err != nil {
		return nil, err
	}
	if opts.CaseSensitive, err = args.Bool(ArgCaseSensitive, opts.CaseSensitive); err != nil {
		return nil, err
	}
	if opts.Normalize, err = args.Bool(ArgNormalize, opts.Normalize); err != nil {
		return nil, err
	}
	if opts.Replacement, err = args.String(ArgReplacement, opts.Replacement); err != nil {
		return nil, err
	}

	return NewBanList(opts)
}

func (b *BanList) ID() string                      { return BanListID }
func (b *BanList) Name() string                    { return BanListName }
func (b *BanList) DefaultSeverity() types.Severity { return types.SeverityError }

func (b *BanList) Description() string {
	return "Text contains a banned word or a close misspelling of one"
}

// Options returns the options the validator was built with
func (b *BanList) Options() BanListOptions {
	return b.opts
}

// comparable applies the case and whitespace folding to s. The returned
// index maps every rune of the folded string to its rune offset in s.
func (b *BanList) comparable(s string) (string, []int) {
	if b.opts.Normalize {
		s = norm.NFC.String(s)
	}

	out := make([]rune, 0, len(s))
	index := make([]int, 0, len(s))
	i := 0
	for _, r := range s {
		if b.opts.IgnoreSpaces && unicode.IsSpace(r) {
			i++
			continue
		}
		if !b.opts.CaseSensitive {
			r = unicode.ToLower(r)
		}
		out = append(out, r)
		index = append(index, i)
		i++
	}
	return string(out), index
}

// Validate reports every banned word found in value. Each banned word is
// matched concurrently; hits are ordered by position, then by word order.
func (b *BanList) Validate(ctx context.Context, value string) (*Result, error) {
	if b.opts.Normalize {
		value = norm.NFC.String(value)
	}
	runes := []rune(value)
	folded, index := b.comparable(value)

	perWord := make([][]Hit, len(b.patterns))
	g, ctx := errgroup.WithContext(ctx)
	for i, pattern := range b.patterns {
		i, pattern := i, pattern
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, err := nearmatch.FindNearMatches(pattern, folded, b.opts.MaxDist)
			if err != nil {
				return fmt.Errorf("matching %q: %w", b.opts.BannedWords[i], err)
			}
			for _, m := range matches {
				start, end := index[m.Start], index[m.End-1]+1
				perWord[i] = append(perWord[i], Hit{
					Word:     b.opts.BannedWords[i],
					Start:    start,
					End:      end,
					Matched:  string(runes[start:end]),
					Distance: m.Distance,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var hits []Hit
	for _, h := range perWord {
		hits = append(hits, h...)
	}
	if len(hits) == 0 {
		return PassResult(value), nil
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return a.Start - b.Start
	})

	result := FailResult(value, BanListMessage)
	result.Hits = hits
	for _, h := range hits {
		result.Spans = append(result.Spans, types.ErrorSpan{
			Start:  h.Start,
			End:    h.End,
			Reason: fmt.Sprintf("Found match with banned word '%s' in '%s'", h.Word, h.Matched),
		})
	}
	return result.WithFix(ApplyFix(value, result.Spans, b.opts.Replacement)), nil
}
