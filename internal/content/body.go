package content

import (
	"fmt"
	"strings"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/model"
)

// usageKeywords mark branches that change how the project is worked on.
var usageKeywords = []string{"workflow", "script", "automation", "command", "cli", "tooling"}

// automationKeywords in a commit subject mean tests were automated.
var automationKeywords = []string{"test", "spec", "ci", "lint", "automat"}

// PullRequest builds the title and body for a pull request.
func PullRequest(in Input) Artifact {
	a := Artifact{Title: Title(in.Branch, in.Subjects)}

	if s := summary(in); s != "" {
		a.Sections = append(a.Sections, Section{SectionSummary, s})
	}
	if len(in.Subjects) > 0 {
		a.Sections = append(a.Sections, Section{SectionChanges, implementedChanges(in)})
	}
	if !in.Set.Empty() {
		a.Sections = append(a.Sections, Section{SectionFileDetails, fileDetails(in.Set)})
	}
	if s := usage(in); s != "" {
		a.Sections = append(a.Sections, Section{SectionUsage, s})
	}
	a.Sections = append(a.Sections,
		Section{SectionTestResults, testResults(in.Subjects)},
		Section{SectionChecklist, checklist()},
	)
	return a
}

func summary(in Input) string {
	if in.Branch == "" && len(in.Subjects) == 0 {
		return ""
	}
	typ, _ := SplitBranch(in.Branch)
	kind := typ
	if bt, ok := model.ParseBranchType(typ); ok {
		kind = bt.Description()
	}
	if kind == "" {
		kind = in.Classification.Type.String()
	}

	if len(in.Subjects) == 0 {
		return fmt.Sprintf("Work in progress on `%s` (%s).", in.Branch, kind)
	}
	_, latest, _ := ParseSubject(in.Subjects[0])
	return fmt.Sprintf("This branch (`%s`) delivers %s; the latest change is: %s.",
		in.Branch, kind, strings.TrimSuffix(latest, "."))
}

func implementedChanges(in Input) string {
	fallback := in.Classification.Type.Prefix()
	var b strings.Builder
	for _, subject := range in.Subjects {
		prefix, desc, ok := ParseSubject(subject)
		if !ok {
			prefix = fallback
		}
		fmt.Fprintf(&b, "- [%s] %s\n", prefix, desc)
	}
	return b.String()
}

func fileDetails(set *changes.Set) string {
	var b strings.Builder
	for _, e := range set.Entries() {
		fmt.Fprintf(&b, "- `%s` (%s): %s\n", e.Path, statusWord(e.Status), changes.Describe(e.Category))
	}
	b.WriteString("\n**Impact:** ")
	b.WriteString(ImpactSummary(set))
	b.WriteString("\n")
	return b.String()
}

// ImpactSummary lists per-category file counts, e.g. "Domain logic: 2, Tests: 1".
func ImpactSummary(set *changes.Set) string {
	counts := set.CategoryCounts()
	var parts []string
	for _, c := range model.Categories {
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", c.Label(), n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func statusWord(s model.ChangeStatus) string {
	switch s {
	case model.StatusAdded:
		return "added"
	case model.StatusDeleted:
		return "deleted"
	case model.StatusRenamed:
		return "renamed"
	default:
		return "updated"
	}
}

func usage(in Input) string {
	name := strings.ToLower(in.Branch)
	if !containsAny(name, usageKeywords) && !in.Set.HasCategory(model.CategoryTooling) {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Check out the branch and exercise the changed workflow:\n\n```sh\ngit fetch origin && git checkout %s\n```\n", in.Branch)
	var tools []string
	for _, e := range in.Set.Entries() {
		if e.Category == model.CategoryTooling {
			tools = append(tools, e.Path)
		}
	}
	if len(tools) > 0 {
		b.WriteString("\nTouched tooling:\n")
		for _, p := range tools {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
	}
	return b.String()
}

func testResults(subjects []string) string {
	if containsAny(strings.ToLower(strings.Join(subjects, " ")), automationKeywords) {
		return strings.Join([]string{
			"- [x] Automated tests added or updated",
			"- [ ] CI pipeline passes",
			"- [ ] Manual verification done",
		}, "\n")
	}
	return strings.Join([]string{
		"- [ ] Feature tests run",
		"- [ ] Unit tests run",
		"- [ ] Manual testing done",
	}, "\n")
}

func checklist() string {
	return strings.Join([]string{
		"- [ ] Ready for code review",
		"- [ ] Documentation updated where needed",
		"- [ ] Backward compatibility confirmed",
	}, "\n")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
