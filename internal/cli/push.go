package cli

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aezell/branchkit/internal/model"
)

var autoPushCmd = &cobra.Command{
	Use:   "auto-push",
	Short: "Push the current work branch upstream",
	Long: `Push the current branch to the remote with upstream tracking.

The trunk branch is never pushed directly, and a working tree with
uncommitted changes is refused so that nothing is left behind.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.push(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(autoPushCmd)
}

func (a *app) protected(branch string) bool {
	return branch == a.cfg.Trunk || branch == "main" || branch == "master"
}

func (a *app) push(ctx context.Context) error {
	branch, err := a.inspector.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if a.protected(branch) {
		return errors.WithHint(
			errors.Mark(errors.Newf("refusing to push %s directly", branch), model.ErrProtectedBranch),
			"start a work branch first: branchkit create-branch",
		)
	}

	tree, err := a.inspector.WorkingTreeStatus(ctx)
	if err != nil {
		return err
	}
	if !tree.Clean {
		return errors.WithHint(
			errors.Mark(errors.New("working tree has uncommitted changes"), model.ErrDirtyWorkingTree),
			"commit them first: branchkit smart-commit",
		)
	}

	if err := a.git.Push(ctx, a.cfg.Remote, branch, true); err != nil {
		return errors.WithHintf(errors.Wrapf(err, "pushing %s", branch),
			"to retry manually: git push -u %s %s", a.cfg.Remote, branch)
	}
	a.out.Success("pushed %s to %s", branch, a.cfg.Remote)

	if r, ok := a.hostedRemote(ctx); ok {
		a.out.Info("pull requests: %s", r.PullsURL())
		a.out.Info("open one in the browser: %s", r.NewPullURL(branch))
	}
	return nil
}
