package cli

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/content"
	"github.com/aezell/branchkit/internal/hosting"
	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/vcs"
)

// maxBranchCommits bounds the commit subjects read for one branch.
const maxBranchCommits = 100

var autoPRCreateCmd = &cobra.Command{
	Use:   "auto-pr-create",
	Short: "Open a pull request with a generated title and description",
	Long: `Generate a pull request title and description from the commits and
files on the current branch, then open the pull request against the
trunk branch.

The pull request is created through the GitHub API when a token is
available (github_token, GITHUB_TOKEN or GH_TOKEN) and with the gh CLI
otherwise; set pr_creator to force one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return a.createPR(cmd.Context(), dryRun)
	},
}

func init() {
	autoPRCreateCmd.Flags().Bool("dry-run", false, "print the pull request without creating it")
	rootCmd.AddCommand(autoPRCreateCmd)
}

// pullRequest generates the pull request for branch.
func (a *app) pullRequest(ctx context.Context, branch string) (content.Artifact, error) {
	trunk := a.cfg.Trunk
	subjects := a.inspector.RangeSubjects(ctx, trunk+".."+branch, maxBranchCommits)
	set, err := a.inspector.RangeChangeSet(ctx, trunk, branch)
	if err != nil {
		return content.Artifact{}, err
	}
	if len(subjects) == 0 && set.Empty() {
		return content.Artifact{}, errors.WithHint(
			errors.Mark(errors.Newf("%s has no commits beyond %s", branch, trunk), model.ErrNoChanges),
			"commit your work first: branchkit smart-commit",
		)
	}
	rec := classify.Recommend(set, subjects)
	logging.FromContext(ctx).Debug("generated pull request",
		zap.String("branch", branch),
		zap.Int("commits", len(subjects)),
		zap.Int("files", set.Len()),
		zap.String("type", rec.Type.String()),
	)
	return content.PullRequest(content.Input{
		Branch:         branch,
		Classification: rec,
		Set:            set,
		Subjects:       subjects,
	}), nil
}

func (a *app) createPR(ctx context.Context, dryRun bool) error {
	branch, err := a.inspector.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if a.protected(branch) {
		return errors.WithHint(
			errors.Mark(errors.Newf("cannot open a pull request from %s", branch), model.ErrProtectedBranch),
			"switch to the work branch you want to propose",
		)
	}

	art, err := a.pullRequest(ctx, branch)
	if err != nil {
		return err
	}
	a.out.Heading("Title: " + art.Title)
	a.out.Document(art.Body())

	if dryRun {
		a.out.Info("dry run: pull request not created")
		return nil
	}

	pushed, err := a.inspector.BranchExists(ctx, branch, vcs.Remote)
	if err != nil {
		return err
	}
	if !pushed {
		return errors.WithHint(
			errors.Newf("%s has not been pushed to %s", branch, a.cfg.Remote),
			"push it first: branchkit auto-push",
		)
	}

	ok, err := prompt.Confirm(ctx, a.prompter, "Create this pull request?", true)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Mark(errors.New("pull request not created"), model.ErrUserAborted)
	}

	remote, _ := a.hostedRemote(ctx)
	creator, err := a.creator(ctx, remote)
	if err != nil {
		return err
	}
	url, err := creator.Create(ctx, hosting.PullRequest{
		Title: art.Title,
		Body:  art.Body(),
		Head:  branch,
		Base:  a.cfg.Trunk,
	})
	if err != nil {
		return err
	}
	a.out.Success("pull request created via %s: %s", creator.Name(), url)
	return nil
}
