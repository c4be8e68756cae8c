package workflow

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/model"
)

// BranchSpec names the branch a session creates.
type BranchSpec struct {
	Type model.BranchType
	Slug string
}

// Name returns "type/slug".
func (b BranchSpec) Name() string {
	return b.Type.String() + "/" + b.Slug
}

// NewBranchSpec validates typeName and derives the slug from task.
func NewBranchSpec(typeName, task string) (BranchSpec, error) {
	bt, ok := model.ParseBranchType(typeName)
	if !ok {
		names := make([]string, len(model.BranchTypes))
		for i, t := range model.BranchTypes {
			names[i] = t.String()
		}
		return BranchSpec{}, errors.WithHintf(
			errors.Mark(errors.Newf("invalid branch type %q", typeName), model.ErrInvalidBranchType),
			"valid types: %s", strings.Join(names, ", "))
	}
	slug := Slug(task)
	if slug == "" {
		return BranchSpec{}, errors.Mark(errors.Newf("task %q has no usable characters", task), model.ErrEmptySlug)
	}
	return BranchSpec{Type: bt, Slug: slug}, nil
}

// Slug lower-cases s, replaces every character outside [a-z0-9-] with '-',
// collapses runs of '-' and trims them from both ends. Slug is idempotent.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true // suppresses leading dashes
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// InitCommitMessage is the subject of the empty commit that starts a branch.
func InitCommitMessage(branch string) string {
	return fmt.Sprintf("chore: initialize %s branch", branch)
}
