package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/content"
	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/vcs"
)

var smartCommitCmd = &cobra.Command{
	Use:   "smart-commit",
	Short: "Commit all changes with a recommended commit type",
	Long: `Classify the pending changes, recommend a conventional commit type and
message, and commit everything once you accept it. Declining the
recommendation lets you pick the type and write the message yourself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		staged, _ := cmd.Flags().GetBool("staged")
		return a.commit(cmd.Context(), true, staged)
	},
}

var autoCommitCmd = &cobra.Command{
	Use:   "auto-commit",
	Short: "Commit all changes choosing the commit type from a menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		staged, _ := cmd.Flags().GetBool("staged")
		return a.commit(cmd.Context(), false, staged)
	},
}

func init() {
	for _, c := range []*cobra.Command{smartCommitCmd, autoCommitCmd} {
		c.Flags().Bool("staged", false, "commit only what is already staged instead of every change")
	}
	rootCmd.AddCommand(smartCommitCmd, autoCommitCmd)
}

// commit stages everything and commits it, or with stagedOnly commits the
// index as it stands. The files classified are always the files committed.
// With recommend set the classifier's verdict is offered first; otherwise
// the type menu is shown straight away with the verdict as its default.
func (a *app) commit(ctx context.Context, recommend, stagedOnly bool) error {
	tree, err := a.inspector.WorkingTreeStatus(ctx)
	if err != nil {
		return err
	}
	if tree.Clean {
		a.out.Info("nothing to commit, working tree clean")
		return nil
	}

	scope := vcs.ScopeAll
	if stagedOnly {
		if !tree.HasStaged {
			a.out.Info("nothing staged; stage files with git add, or run without --staged")
			return nil
		}
		scope = vcs.ScopeStaged
	}
	set, err := a.inspector.ChangeSet(ctx, scope)
	if err != nil {
		return err
	}
	subjects := a.inspector.RecentSubjects(ctx, a.cfg.RecentCommits)
	all := classify.Classify(set, subjects)
	rec := all[0]
	logging.FromContext(ctx).Debug("classified changes",
		zap.Int("files", set.Len()),
		zap.String("rule", rec.Rule),
		zap.Float64("confidence", rec.Confidence),
	)

	a.printChanges(set)

	var message string
	accepted := false
	if recommend {
		a.out.Recommendation(rec, all)
		accepted, err = prompt.Confirm(ctx, a.prompter, fmt.Sprintf("Use %q?", rec.CommitMessage()), true)
		if err != nil {
			return err
		}
	}
	if accepted {
		message = rec.CommitMessage()
	} else if message, err = a.chooseMessage(ctx, rec); err != nil {
		return err
	}

	push, err := prompt.Confirm(ctx, a.prompter, "Push after committing?", false)
	if err != nil {
		return err
	}

	if !stagedOnly {
		if err := a.git.AddAll(ctx); err != nil {
			return errors.WithHint(errors.Wrap(err, "staging changes"), "to retry manually: git add -A")
		}
	}
	if err := a.git.Commit(ctx, message, false); err != nil {
		return errors.WithHintf(errors.Wrap(err, "committing"), "to retry manually: git commit -m %q", message)
	}
	a.out.Success("committed: %s", message)

	if !push {
		a.out.Info("push later with: branchkit auto-push")
		return nil
	}
	return a.pushAfterCommit(ctx)
}

// chooseMessage shows the commit type menu and asks for a description.
func (a *app) chooseMessage(ctx context.Context, rec classify.Classification) (string, error) {
	options := make([]string, len(model.CommitTypes))
	for i, t := range model.CommitTypes {
		options[i] = fmt.Sprintf("%s (%s)", t.Prefix(), t)
	}
	def := slices.Index(model.CommitTypes, rec.Type)
	idx, err := prompt.Choose(ctx, a.prompter, "Commit type", options, def)
	if err != nil {
		return "", err
	}

	desc, err := a.prompter.Ask(ctx, prompt.Question{Text: "Commit message", Default: rec.Summary})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(desc) == "" {
		return "", errors.Mark(errors.New("no commit message given"), model.ErrUserAborted)
	}
	return content.CommitMessageFor(model.CommitTypes[idx], desc), nil
}

// pushAfterCommit pushes the current branch. A failure leaves the commit in
// place and is reported rather than returned.
func (a *app) pushAfterCommit(ctx context.Context) error {
	branch, err := a.inspector.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if err := a.git.Push(ctx, a.cfg.Remote, branch, true); err != nil {
		logging.FromContext(ctx).Warn("push after commit failed", zap.String("branch", branch), zap.Error(err))
		a.out.Warn("commit kept, but the push failed: %v", err)
		a.out.Info("push later with: git push -u %s %s", a.cfg.Remote, branch)
		return nil
	}
	a.out.Success("pushed %s to %s", branch, a.cfg.Remote)
	a.out.Info("open a pull request with: branchkit auto-pr-create")
	return nil
}

func (a *app) printChanges(set *changes.Set) {
	a.out.Heading("Changed files")
	for _, e := range set.Entries() {
		a.out.Info("%s %s (%s)", e.Status.Code(), e.Path, e.Category)
	}
}
