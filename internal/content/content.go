// Package content generates commit messages and pull request text from a
// classified change set. Everything here is pure.
package content

import (
	"fmt"
	"strings"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/model"
)

// Section names, in the order they appear in a body.
const (
	SectionSummary     = "Summary"
	SectionChanges     = "Implemented Changes"
	SectionFileDetails = "File Details"
	SectionUsage       = "Usage"
	SectionTestResults = "Test Results"
	SectionChecklist   = "Checklist"
)

// Footer closes every generated body.
const Footer = "---\n_Generated by branchkit_"

// Section is one titled block of a body.
type Section struct {
	Name string
	Body string
}

// Artifact is a title plus ordered body sections.
type Artifact struct {
	Title    string
	Sections []Section
}

// Section returns the named section.
func (a Artifact) Section(name string) (Section, bool) {
	for _, s := range a.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Body renders the sections as Markdown followed by the footer.
func (a Artifact) Body() string {
	var b strings.Builder
	for _, s := range a.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Name, strings.TrimRight(s.Body, "\n"))
	}
	b.WriteString(Footer)
	b.WriteString("\n")
	return b.String()
}

// Input is everything the generator needs. Subjects are newest first.
type Input struct {
	Branch         string
	Classification classify.Classification
	Set            *changes.Set
	Subjects       []string
}

// titlePrefixes maps a branch type segment to a conventional commit prefix.
var titlePrefixes = map[string]string{
	"feat":     "feat",
	"feature":  "feat",
	"fix":      "fix",
	"bugfix":   "fix",
	"docs":     "docs",
	"test":     "test",
	"refactor": "refactor",
	"style":    "style",
	"chore":    "chore",
}

// SplitBranch splits "type/slug" into its parts. A name without a slash is
// all slug.
func SplitBranch(branch string) (typ, slug string) {
	if t, s, ok := strings.Cut(branch, "/"); ok {
		return t, s
	}
	return "", branch
}

// TitlePrefix returns the conventional prefix for a branch, feat when the
// branch type is unknown.
func TitlePrefix(branch string) string {
	typ, _ := SplitBranch(branch)
	if p, ok := titlePrefixes[strings.ToLower(typ)]; ok {
		return p
	}
	return "feat"
}

// Title returns the pull request title. A latest subject that already
// contains ':' is used verbatim; otherwise it is led by the branch type as
// written in the branch name. A blank subject is replaced by the slug under
// the conventional TitlePrefix.
func Title(branch string, subjects []string) string {
	if len(subjects) == 0 {
		return "WIP: " + branch
	}
	latest := strings.TrimSpace(subjects[0])
	if strings.Contains(latest, ":") {
		return latest
	}
	typ, slug := SplitBranch(branch)
	if latest == "" {
		return TitlePrefix(branch) + ": " + strings.ReplaceAll(slug, "-", " ")
	}
	if typ == "" {
		typ = "feat"
	}
	return typ + ": " + latest
}

// ParseSubject splits a conventional commit subject into prefix and
// description. ok is false when the subject has no "type:" lead.
func ParseSubject(subject string) (prefix, description string, ok bool) {
	head, rest, found := strings.Cut(subject, ":")
	if !found {
		return "", strings.TrimSpace(subject), false
	}
	head = strings.TrimSpace(head)
	if i := strings.IndexByte(head, '('); i > 0 {
		head = head[:i]
	}
	head = strings.TrimSuffix(head, "!")
	if head == "" || strings.ContainsAny(head, " \t") {
		return "", strings.TrimSpace(subject), false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

// CommitMessage returns "prefix: description" for c, using c.Summary when
// description is blank.
func CommitMessage(c classify.Classification, description string) string {
	return CommitMessageFor(c.Type, firstNonBlank(description, c.Summary))
}

// CommitMessageFor returns "prefix: description" for an explicit type.
func CommitMessageFor(t model.CommitType, description string) string {
	return t.Prefix() + ": " + strings.TrimSpace(description)
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
