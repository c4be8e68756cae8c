// Package model defines the core data types shared across branchkit.
package model

import "strings"

// BranchType is the prefix of a work branch name.
type BranchType int

const (
	BranchFeature BranchType = iota
	BranchFix
	BranchRefactor
	BranchDocs
	BranchTest
	BranchChore
)

// BranchTypes lists the valid branch types in menu order.
var BranchTypes = []BranchType{BranchFeature, BranchFix, BranchRefactor, BranchDocs, BranchTest, BranchChore}

func (b BranchType) String() string {
	switch b {
	case BranchFeature:
		return "feature"
	case BranchFix:
		return "fix"
	case BranchRefactor:
		return "refactor"
	case BranchDocs:
		return "docs"
	case BranchTest:
		return "test"
	case BranchChore:
		return "chore"
	default:
		return "unknown"
	}
}

// Description is the human label shown next to a branch type in menus.
func (b BranchType) Description() string {
	switch b {
	case BranchFeature:
		return "new functionality"
	case BranchFix:
		return "bug fix"
	case BranchRefactor:
		return "restructuring without behavior change"
	case BranchDocs:
		return "documentation"
	case BranchTest:
		return "tests"
	case BranchChore:
		return "maintenance and tooling"
	default:
		return ""
	}
}

// ParseBranchType maps a name such as "feature" to its BranchType.
func ParseBranchType(s string) (BranchType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, b := range BranchTypes {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}

// CommitType is the kind of change a commit carries.
type CommitType int

const (
	CommitFeature CommitType = iota
	CommitFix
	CommitRefactor
	CommitDocumentation
	CommitTest
	CommitStyle
	CommitChore
)

// CommitTypes lists commit types in menu order.
var CommitTypes = []CommitType{CommitFeature, CommitFix, CommitRefactor, CommitDocumentation, CommitTest, CommitStyle, CommitChore}

func (c CommitType) String() string {
	switch c {
	case CommitFeature:
		return "feature"
	case CommitFix:
		return "fix"
	case CommitRefactor:
		return "refactor"
	case CommitDocumentation:
		return "documentation"
	case CommitTest:
		return "test"
	case CommitStyle:
		return "style"
	case CommitChore:
		return "chore"
	default:
		return "unknown"
	}
}

// Prefix returns the conventional-commit prefix, e.g. "feat" or "docs".
func (c CommitType) Prefix() string {
	switch c {
	case CommitFeature:
		return "feat"
	case CommitDocumentation:
		return "docs"
	default:
		return c.String()
	}
}

// ChangeStatus is the status of a single path in a change set.
type ChangeStatus int

const (
	StatusModified ChangeStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
)

func (s ChangeStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Code returns the single-letter name-status code.
func (s ChangeStatus) Code() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	default:
		return "M"
	}
}

// ParseChangeStatus accepts a name-status code (A, M, D, R100) or a status
// name.
func ParseChangeStatus(s string) (ChangeStatus, bool) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "m", "modified", "":
		return StatusModified, true
	case "a", "added":
		return StatusAdded, true
	case "d", "deleted":
		return StatusDeleted, true
	case "renamed":
		return StatusRenamed, true
	}
	if t[0] == 'R' || t[0] == 'r' {
		return StatusRenamed, true
	}
	return StatusModified, false
}

// Category groups paths by what part of the project they touch.
type Category int

const (
	CategoryOther Category = iota
	CategoryDomainLogic
	CategoryPresentation
	CategoryTest
	CategoryDocumentation
	CategoryConfiguration
	CategoryAsset
	CategoryTooling
)

// Categories lists all categories in report order.
var Categories = []Category{
	CategoryDomainLogic,
	CategoryPresentation,
	CategoryTest,
	CategoryDocumentation,
	CategoryConfiguration,
	CategoryAsset,
	CategoryTooling,
	CategoryOther,
}

func (c Category) String() string {
	switch c {
	case CategoryDomainLogic:
		return "domain-logic"
	case CategoryPresentation:
		return "presentation"
	case CategoryTest:
		return "test"
	case CategoryDocumentation:
		return "documentation"
	case CategoryConfiguration:
		return "configuration"
	case CategoryAsset:
		return "asset"
	case CategoryTooling:
		return "tooling"
	case CategoryOther:
		return "other"
	default:
		return "unknown"
	}
}

// Label is the title-cased name used in generated documents.
func (c Category) Label() string {
	switch c {
	case CategoryDomainLogic:
		return "Domain logic"
	case CategoryPresentation:
		return "Presentation"
	case CategoryTest:
		return "Tests"
	case CategoryDocumentation:
		return "Documentation"
	case CategoryConfiguration:
		return "Configuration"
	case CategoryAsset:
		return "Assets"
	case CategoryTooling:
		return "Tooling"
	default:
		return "Other"
	}
}

// TreeStatus summarizes the working tree.
type TreeStatus struct {
	Clean       bool
	HasUnstaged bool
	HasStaged   bool
}
