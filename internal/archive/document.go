package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/content"
	"github.com/aezell/branchkit/internal/model"
)

// Info is the material a work summary is built from.
type Info struct {
	Branch string
	// LastCommit is "<short hash> <subject>".
	LastCommit string
	// Subjects are the branch's commit subjects, newest first.
	Subjects []string
	Set      *changes.Set
	Time     time.Time
}

// learnings are the takeaways recorded for each category present.
var learnings = map[model.Category]string{
	model.CategoryDomainLogic:   "Business rules changed; keep model validations and their tests in step.",
	model.CategoryPresentation:  "Views changed; check the affected screens by hand as well as in tests.",
	model.CategoryTest:          "Test coverage grew alongside the change.",
	model.CategoryDocumentation: "Documentation was updated with the code rather than after it.",
	model.CategoryConfiguration: "Configuration changed; environments may need the same update.",
	model.CategoryAsset:         "Styles or assets changed; verify rendering across browsers.",
	model.CategoryTooling:       "Development tooling changed; teammates should pull before their next run.",
	model.CategoryOther:         "Some files fall outside the known categories; consider classifying them.",
}

// Compose renders the work summary as Markdown.
func Compose(info Info) string {
	latest := ""
	if len(info.Subjects) > 0 {
		latest = info.Subjects[0]
	}
	if latest == "" {
		if _, subject, ok := strings.Cut(info.LastCommit, " "); ok {
			latest = subject
		}
	}
	work := DetectWorkType(info.Branch, latest)
	date := info.Time.Format("2006-01-02")
	entries := info.Set.Entries()

	var b strings.Builder
	fmt.Fprintf(&b, "# Work Summary - %s\n\n", date)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Work type**: %s\n", work)
	fmt.Fprintf(&b, "- **Title**: %s\n", content.Title(info.Branch, info.Subjects))
	fmt.Fprintf(&b, "- **Date**: %s\n", info.Time.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- **Branch**: `%s`\n", info.Branch)
	fmt.Fprintf(&b, "- **Latest commit**: %s\n\n", orUnknown(info.LastCommit))

	b.WriteString("## Changed Files\n\n")
	if len(entries) == 0 {
		b.WriteString("No files changed.\n\n")
	} else {
		b.WriteString("| File | Category | Change |\n")
		b.WriteString("|------|----------|--------|\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "| `%s` | %s | %s |\n", e.Path, e.Category.Label(), e.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Statistics\n\n")
	fmt.Fprintf(&b, "- **Total files changed**: %d\n", len(entries))
	counts := info.Set.CategoryCounts()
	for _, c := range model.Categories {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d\n", c.Label(), n)
		}
	}
	b.WriteString("\n")

	if len(info.Subjects) > 0 {
		b.WriteString("## Commits\n\n")
		for _, s := range info.Subjects {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Technical Learnings\n\n")
	fmt.Fprintf(&b, "- %s completed on `%s`.\n", work, info.Branch)
	for _, c := range model.Categories {
		if counts[c] > 0 {
			fmt.Fprintf(&b, "- %s\n", learnings[c])
		}
	}
	b.WriteString("\n")

	b.WriteString("## Git Record\n\n")
	fmt.Fprintf(&b, "- **Branch**: `%s`\n", info.Branch)
	fmt.Fprintf(&b, "- **Commit**: %s\n", orUnknown(info.LastCommit))
	fmt.Fprintf(&b, "- **Files changed**: %d\n\n", len(entries))

	b.WriteString("---\n")
	fmt.Fprintf(&b, "_Generated by branchkit create-archive at %s_\n", info.Time.Format("2006-01-02 15:04"))
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
