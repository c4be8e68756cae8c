// Package cli wires the branchkit commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aezell/branchkit/internal/render"
)

// errReported marks errors a command has already printed.
var errReported = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:   "branchkit",
	Short: "Feature branch lifecycle automation for git repositories",
	Long: `branchkit starts work branches safely and turns the changes on them into
commit messages, pull requests and work archives.

Starting work:
  create-branch       interactive: pick a type, name the task
  create-branch-cli   create-branch-cli <type> <task>
  work-start          like create-branch, suggesting a type from recent commits
  work-start-cli      work-start-cli <type> "<description>"

Finishing work:
  smart-commit        commit with a recommended conventional commit type
  auto-commit         commit choosing the type from a menu
  auto-push           push the current work branch
  auto-pr-create      open a pull request with a generated description
  create-archive      write a dated work summary document`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default <repo>/.branchkit.yaml)")
	pf.BoolP("verbose", "v", false, "log git commands and workflow transitions")
	pf.Bool("non-interactive", false, "never prompt; take the default answer to every question")
	pf.String("trunk", "", "trunk branch (default from config, main)")
	pf.String("remote", "", "remote name (default from config, origin)")
}

// Execute runs the root command. Errors are printed with their hints before
// being returned.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		render.New(os.Stderr, colorEnabled(os.Stderr)).Error(err)
	}
	return err
}

func colorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
