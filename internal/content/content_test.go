package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		subjects []string
		want     string
	}{
		{"conventional subject passes through", "feature/payments", []string{"fix: correct fee rounding", "feat: add fees"}, "fix: correct fee rounding"},
		{"plain subject gets branch type", "feature/login", []string{"Add login form"}, "feature: Add login form"},
		{"branch type kept as written", "bugfix/rounding", []string{"Round half up"}, "bugfix: Round half up"},
		{"unknown type kept as written", "spike/idea", []string{"Try it"}, "spike: Try it"},
		{"untyped branch defaults to feat", "login-form", []string{"Add login form"}, "feat: Add login form"},
		{"no commits", "feature/login", nil, "WIP: feature/login"},
		{"blank subject uses slug", "docs/setup-guide", []string{"  "}, "docs: setup guide"},
		{"blank subject maps branch type", "feature/setup-guide", []string{""}, "feat: setup guide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.branch, tt.subjects))
		})
	}
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		in     string
		prefix string
		desc   string
		ok     bool
	}{
		{"feat: add login", "feat", "add login", true},
		{"fix(api)!: handle nil", "fix", "handle nil", true},
		{"Merge branch: main", "", "Merge branch: main", false},
		{"plain words", "", "plain words", false},
	}
	for _, tt := range tests {
		prefix, desc, ok := ParseSubject(tt.in)
		assert.Equal(t, tt.prefix, prefix, tt.in)
		assert.Equal(t, tt.desc, desc, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestCommitMessage(t *testing.T) {
	c := classify.Classification{Type: model.CommitDocumentation, Summary: "update documentation"}
	assert.Equal(t, "docs: update documentation", CommitMessage(c, ""))
	assert.Equal(t, "docs: explain setup", CommitMessage(c, " explain setup "))
	assert.Equal(t, "style: tidy css", CommitMessageFor(model.CommitStyle, "tidy css"))
}

func sampleInput() Input {
	set := changes.NewSet(
		changes.NewEntry("app/models/round.rb", model.StatusModified),
		changes.NewEntry("spec/models/round_spec.rb", model.StatusAdded),
		changes.NewEntry("scripts/work-start.js", model.StatusModified),
	)
	subjects := []string{"test: cover rounding", "Adjust fee rounding"}
	return Input{
		Branch:         "fix/fee-rounding",
		Classification: classify.Recommend(set, subjects),
		Set:            set,
		Subjects:       subjects,
	}
}

func TestPullRequestSections(t *testing.T) {
	a := PullRequest(sampleInput())
	assert.Equal(t, "test: cover rounding", a.Title)

	var names []string
	for _, s := range a.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		SectionSummary, SectionChanges, SectionFileDetails, SectionUsage, SectionTestResults, SectionChecklist,
	}, names)

	summary, _ := a.Section(SectionSummary)
	assert.Contains(t, summary.Body, "`fix/fee-rounding`")
	assert.Contains(t, summary.Body, "bug fix")
	assert.Contains(t, summary.Body, "cover rounding")

	changesSec, _ := a.Section(SectionChanges)
	assert.Equal(t, "- [test] cover rounding\n- [feat] Adjust fee rounding\n", changesSec.Body)

	files, _ := a.Section(SectionFileDetails)
	assert.Contains(t, files.Body, "- `spec/models/round_spec.rb` (added): test coverage")
	assert.Contains(t, files.Body, "- `app/models/round.rb` (updated): business logic change")
	assert.Contains(t, files.Body, "**Impact:** Domain logic: 1, Tests: 1, Tooling: 1")

	usage, _ := a.Section(SectionUsage)
	assert.Contains(t, usage.Body, "git checkout fix/fee-rounding")
	assert.Contains(t, usage.Body, "- `scripts/work-start.js`")

	tests, _ := a.Section(SectionTestResults)
	assert.Contains(t, tests.Body, "[x] Automated tests")

	body := a.Body()
	assert.True(t, strings.HasPrefix(body, "## Summary\n\n"))
	assert.True(t, strings.HasSuffix(body, Footer+"\n"))
}

func TestPullRequestOmitsEmptySections(t *testing.T) {
	a := PullRequest(Input{Branch: "feature/login", Classification: classify.Fallback})
	assert.Equal(t, "WIP: feature/login", a.Title)

	_, ok := a.Section(SectionChanges)
	assert.False(t, ok)
	_, ok = a.Section(SectionFileDetails)
	assert.False(t, ok)
	_, ok = a.Section(SectionUsage)
	assert.False(t, ok)

	tests, ok := a.Section(SectionTestResults)
	require.True(t, ok)
	assert.Contains(t, tests.Body, "[ ] Feature tests run")
	_, ok = a.Section(SectionChecklist)
	assert.True(t, ok)

	summary, _ := a.Section(SectionSummary)
	assert.Equal(t, "Work in progress on `feature/login` (new functionality).", summary.Body)
}

func TestImpactSummary(t *testing.T) {
	assert.Equal(t, "none", ImpactSummary(nil))
	set := changes.NewSet(
		changes.NewEntry("README.md", model.StatusModified),
		changes.NewEntry("docs/a.md", model.StatusModified),
		changes.NewEntry("misc.dat", model.StatusAdded),
	)
	assert.Equal(t, "Documentation: 2, Other: 1", ImpactSummary(set))
}
