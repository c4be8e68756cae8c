package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/archive"
	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/logging"
)

var createArchiveCmd = &cobra.Command{
	Use:   "create-archive",
	Short: "Write a dated summary of the work on the current branch",
	Long: `Write a Markdown work summary to the archive directory (archive_dir,
default docs/archives) named after today's date. An existing summary for
the same day is never overwritten; a numeric suffix is added instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return a.createArchive(cmd.Context(), dryRun)
	},
}

func init() {
	createArchiveCmd.Flags().Bool("dry-run", false, "print the summary without writing it")
	rootCmd.AddCommand(createArchiveCmd)
}

// archiveInfo collects the branch's commits and files. On the trunk only
// the latest commit is summarised.
func (a *app) archiveInfo(ctx context.Context) (archive.Info, error) {
	log := logging.FromContext(ctx)
	branch, err := a.inspector.CurrentBranch(ctx)
	if err != nil {
		return archive.Info{}, err
	}

	info := archive.Info{Branch: branch, Time: a.now()}
	if info.LastCommit, err = a.meta.HeadLine(); err != nil {
		log.Debug("reading HEAD commit", zap.Error(err))
	}

	from := "HEAD~1"
	if branch != a.cfg.Trunk {
		from = a.cfg.Trunk
		info.Subjects = a.inspector.RangeSubjects(ctx, a.cfg.Trunk+".."+branch, maxBranchCommits)
	} else {
		info.Subjects = a.inspector.RecentSubjects(ctx, 1)
	}

	if info.Set, err = a.inspector.RangeChangeSet(ctx, from, "HEAD"); err != nil {
		log.Debug("reading changed files", zap.String("from", from), zap.Error(err))
		info.Set = changes.NewSet()
	}
	return info, nil
}

func (a *app) createArchive(ctx context.Context, dryRun bool) error {
	info, err := a.archiveInfo(ctx)
	if err != nil {
		return err
	}
	doc := archive.Compose(info)

	dir := a.cfg.ArchiveDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.root, dir)
	}
	w := &archive.Writer{Dir: dir, Now: a.now}
	if dryRun {
		next, err := w.NextPath()
		if err != nil {
			return err
		}
		a.out.Document(doc)
		a.out.Info("dry run: would write %s", a.relative(next))
		return nil
	}

	path, err := w.Write(doc)
	if err != nil {
		return err
	}
	a.out.Success("work summary written to %s", a.relative(path))
	return nil
}

func (a *app) relative(path string) string {
	if rel, err := filepath.Rel(a.root, path); err == nil {
		return rel
	}
	return path
}
