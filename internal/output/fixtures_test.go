package output

import "github.com/jokarl/banlist/internal/types"

func sampleResult() *types.CheckResult {
	result := types.NewCheckResult([]string{"notes.txt", "docs/story.txt"}, types.SeverityError)
	result.AddFinding(types.NewFinding("BL001", "ban_list", types.SeverityError,
		"Found match with banned word 'banana' in 'bananna'").
		WithDetail("Output contains banned words").
		WithMatch("banana", "bananna", 1).
		WithLocation(&types.FileRange{Filename: "notes.txt", Line: 2, Column: 10, EndLine: 2, EndColumn: 17}))
	result.AddFinding(types.NewFinding("BL001", "ban_list", types.SeverityWarning,
		"Found match with banned word 'athena' in 'athens'").
		WithMatch("athena", "athens", 1).
		WithLocation(&types.FileRange{Filename: "docs/story.txt", Line: 1, Column: 5, EndLine: 1, EndColumn: 11}))
	ignored := types.NewFinding("BL001", "ban_list", types.SeverityError,
		"Found match with banned word 'banana' in 'banana'").
		WithMatch("banana", "banana", 0).
		WithLocation(&types.FileRange{Filename: "notes.txt", Line: 5, Column: 1})
	ignored.Ignored = true
	ignored.IgnoreReason = "product name"
	result.AddFinding(ignored)
	result.Compute()
	return result
}

func emptyResult() *types.CheckResult {
	result := types.NewCheckResult([]string{"notes.txt"}, types.SeverityError)
	result.Compute()
	return result
}
