// Package classify infers the kind of change a change set represents.
package classify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/model"
)

// Classification is one rule's verdict.
type Classification struct {
	Type       model.CommitType
	Confidence float64
	Rationale  string
	// Summary is a default commit description for this type.
	Summary string
	Rule    string
}

func (c Classification) String() string {
	return fmt.Sprintf("%s (%d%%): %s", c.Type, c.Percent(), c.Rationale)
}

// Percent returns the confidence as a whole percentage.
func (c Classification) Percent() int {
	return int(c.Confidence*100 + 0.5)
}

// CommitMessage returns "prefix: summary".
func (c Classification) CommitMessage() string {
	return c.Type.Prefix() + ": " + c.Summary
}

// Input is what rules look at. Text fields are lower-cased.
type Input struct {
	Set      *changes.Set
	Subjects []string

	pathText   string
	commitText string
}

func newInput(set *changes.Set, subjects []string) Input {
	in := Input{Set: set, Subjects: subjects}
	in.pathText = strings.ToLower(strings.Join(set.Paths(), " "))
	in.commitText = strings.ToLower(strings.Join(subjects, " "))
	return in
}

func (in Input) commitHas(words ...string) bool {
	for _, w := range words {
		if strings.Contains(in.commitText, w) {
			return true
		}
	}
	return false
}

func (in Input) pathHas(words ...string) bool {
	for _, w := range words {
		if strings.Contains(in.pathText, w) {
			return true
		}
	}
	return false
}

// Rule emits a Classification when Match holds.
type Rule struct {
	Name       string
	Type       model.CommitType
	Confidence float64
	Rationale  string
	Summary    string
	Match      func(in Input) bool
}

// Rules is evaluated in order. A new test file therefore classifies as a
// feature: rule "new-files" outranks "tests" at equal confidence.
var Rules = []Rule{
	{
		Name: "new-files", Type: model.CommitFeature, Confidence: 0.8,
		Rationale: "new files were added",
		Summary:   "add new functionality",
		Match: func(in Input) bool {
			return in.Set.HasNewFiles() || in.pathHas("new", "add") || in.commitHas("new", "add")
		},
	},
	{
		Name: "fixes", Type: model.CommitFix, Confidence: 0.7,
		Rationale: "commits mention fix/bug or tests changed",
		Summary:   "fix a bug",
		Match: func(in Input) bool {
			return in.commitHas("fix", "bug") || in.Set.HasCategory(model.CategoryTest)
		},
	},
	{
		Name: "restructure", Type: model.CommitRefactor, Confidence: 0.7,
		Rationale: "several existing files changed without additions",
		Summary:   "refactor existing code",
		Match: func(in Input) bool {
			return in.commitHas("refactor", "improve") || (in.Set.Len() > 3 && !in.Set.HasNewFiles())
		},
	},
	{
		Name: "docs", Type: model.CommitDocumentation, Confidence: 0.9,
		Rationale: "documentation files changed",
		Summary:   "update documentation",
		Match:     func(in Input) bool { return in.Set.HasCategory(model.CategoryDocumentation) },
	},
	{
		Name: "tests", Type: model.CommitTest, Confidence: 0.8,
		Rationale: "test files changed",
		Summary:   "add or update tests",
		Match:     func(in Input) bool { return in.Set.HasCategory(model.CategoryTest) },
	},
	{
		Name: "config", Type: model.CommitChore, Confidence: 0.8,
		Rationale: "configuration files changed",
		Summary:   "update configuration",
		Match:     func(in Input) bool { return in.Set.HasCategory(model.CategoryConfiguration) },
	},
	{
		Name: "assets", Type: model.CommitStyle, Confidence: 0.8,
		Rationale: "stylesheets or assets changed",
		Summary:   "update styles",
		Match:     func(in Input) bool { return in.Set.HasCategory(model.CategoryAsset) },
	},
}

// Fallback is returned when no rule matches.
var Fallback = Classification{
	Type:       model.CommitChore,
	Confidence: 0.5,
	Rationale:  "no specific pattern matched",
	Summary:    "update project files",
	Rule:       "fallback",
}

// Classify runs every rule and returns the matches, most confident first.
// Ties keep rule order. The result is never empty.
func Classify(set *changes.Set, subjects []string) []Classification {
	if set == nil {
		set = changes.NewSet()
	}
	in := newInput(set, subjects)

	var out []Classification
	for _, r := range Rules {
		if r.Match(in) {
			out = append(out, Classification{
				Type:       r.Type,
				Confidence: r.Confidence,
				Rationale:  r.Rationale,
				Summary:    r.Summary,
				Rule:       r.Name,
			})
		}
	}
	if len(out) == 0 {
		return []Classification{Fallback}
	}

	slices.SortStableFunc(out, func(a, b Classification) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Recommend returns the head of Classify.
func Recommend(set *changes.Set, subjects []string) Classification {
	return Classify(set, subjects)[0]
}
