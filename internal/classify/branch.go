package classify

import (
	"strings"

	"github.com/aezell/branchkit/internal/model"
)

// BranchSuggestion is a proposed type for the next work branch.
type BranchSuggestion struct {
	Type       model.BranchType
	Confidence float64
	Rationale  string
}

type branchRule struct {
	words      []string
	suggestion BranchSuggestion
}

var branchRules = []branchRule{
	{[]string{"fix", "bug"}, BranchSuggestion{model.BranchFix, 0.7, "recent commits mention fix or bug"}},
	{[]string{"feat", "add"}, BranchSuggestion{model.BranchFeature, 0.8, "recent commits mention feat or add"}},
	{[]string{"refactor", "improve"}, BranchSuggestion{model.BranchRefactor, 0.7, "recent commits mention refactor or improve"}},
	{[]string{"docs", "document"}, BranchSuggestion{model.BranchDocs, 0.8, "recent commits mention docs"}},
}

// SuggestBranchType proposes a branch type from recent commit subjects. The
// first of the most confident matches wins; with no match it is feature.
func SuggestBranchType(subjects []string) BranchSuggestion {
	text := strings.ToLower(strings.Join(subjects, " "))
	best := BranchSuggestion{Type: model.BranchFeature, Confidence: 0.5, Rationale: "default suggestion"}
	for _, r := range branchRules {
		for _, w := range r.words {
			if strings.Contains(text, w) {
				if r.suggestion.Confidence > best.Confidence {
					best = r.suggestion
				}
				break
			}
		}
	}
	return best
}
