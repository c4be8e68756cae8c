package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/workflow"
)

var createBranchCmd = &cobra.Command{
	Use:   "create-branch",
	Short: "Interactively create and push a new work branch",
	Long: `Create a work branch named <type>/<task>.

The repository is checked first: uncommitted changes or an unreachable
remote stop the run unless you choose to continue. The trunk branch is
then updated, the branch created from it, and an empty initial commit
pushed upstream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.createBranchInteractive(cmd.Context(), false)
	},
}

var createBranchCLICmd = &cobra.Command{
	Use:   "create-branch-cli <type> <task>",
	Short: "Create and push a new work branch without a type menu",
	Long: fmt.Sprintf(`Create a work branch named <type>/<task>.

Valid types: %s

Example:
  branchkit create-branch-cli feature "Add user login"`, validTypes()),
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.createBranchCLI(cmd.Context(), args[0], strings.Join(args[1:], " "), false)
	},
}

var workStartCmd = &cobra.Command{
	Use:   "work-start",
	Short: "Start a piece of work, suggesting a branch type from recent commits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.createBranchInteractive(cmd.Context(), true)
	},
}

var workStartCLICmd = &cobra.Command{
	Use:   `work-start-cli <type> "<description>"`,
	Short: "Start a piece of work from a type and description",
	Long: fmt.Sprintf(`Start a piece of work on a new <type>/<description> branch.

Valid types: %s

Example:
  branchkit work-start-cli fix "Rounding of event fees"`, validTypes()),
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.createBranchCLI(cmd.Context(), args[0], strings.Join(args[1:], " "), true)
	},
}

func init() {
	rootCmd.AddCommand(createBranchCmd, createBranchCLICmd, workStartCmd, workStartCLICmd)
}

func validTypes() string {
	names := make([]string, len(model.BranchTypes))
	for i, b := range model.BranchTypes {
		names[i] = b.String()
	}
	return strings.Join(names, ", ")
}

// createBranchInteractive asks for the branch type and task name. With
// suggest set the type menu defaults to one inferred from recent commits.
func (a *app) createBranchInteractive(ctx context.Context, suggest bool) error {
	def := 0
	if suggest {
		s := classify.SuggestBranchType(a.inspector.RecentSubjects(ctx, a.cfg.RecentCommits))
		a.out.BranchSuggestion(s)
		def = int(s.Type)
	}

	options := make([]string, len(model.BranchTypes))
	for i, b := range model.BranchTypes {
		options[i] = fmt.Sprintf("%s (%s)", b, b.Description())
	}
	idx, err := prompt.Choose(ctx, a.prompter, "Branch type", options, def)
	if err != nil {
		return err
	}

	task, err := a.prompter.Ask(ctx, prompt.Question{Text: "Task name"})
	if err != nil {
		return err
	}
	if strings.TrimSpace(task) == "" {
		return errors.WithHint(
			errors.Mark(errors.New("no task name given"), model.ErrUserAborted),
			"in scripts use: branchkit create-branch-cli <type> <task>",
		)
	}

	spec, err := workflow.NewBranchSpec(model.BranchTypes[idx].String(), task)
	if err != nil {
		return err
	}
	return a.startBranch(ctx, spec, suggest)
}

func (a *app) createBranchCLI(ctx context.Context, typeName, task string, workStart bool) error {
	spec, err := workflow.NewBranchSpec(typeName, task)
	if err != nil {
		return err
	}
	return a.startBranch(ctx, spec, workStart)
}

// startBranch runs the branch creation workflow and reports its outcome.
func (a *app) startBranch(ctx context.Context, spec workflow.BranchSpec, workStart bool) error {
	a.out.Heading("Creating " + spec.Name())

	orch := workflow.New(a.git, a.prompter, workflow.Options{
		Trunk:        a.cfg.Trunk,
		Remote:       a.cfg.Remote,
		OnAssessment: a.out.Assessment,
	})
	s, err := orch.Run(ctx, spec)
	a.out.Session(s)
	if err != nil {
		return errors.Mark(err, errReported)
	}

	if workStart {
		a.out.Heading("Next steps")
		a.out.Info("make your changes")
		a.out.Info("commit with: branchkit smart-commit")
		a.out.Info("open a pull request with: branchkit auto-pr-create")
	}
	return nil
}
