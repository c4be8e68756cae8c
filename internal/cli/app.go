package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aezell/branchkit/internal/config"
	"github.com/aezell/branchkit/internal/hosting"
	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/render"
	"github.com/aezell/branchkit/internal/repo"
	"github.com/aezell/branchkit/internal/vcs"
)

// repoMeta is the repository metadata read without shelling out.
type repoMeta interface {
	RemoteURL(name string) (string, error)
	HeadLine() (string, error)
}

// creatorFunc picks a pull request creator for a hosted repository.
type creatorFunc func(ctx context.Context, remote repo.Remote) (hosting.Creator, error)

// app holds everything a command needs. Commands are methods on app so tests
// can swap in a fake git client and scripted answers.
type app struct {
	cfg       *config.Config
	git       vcs.Client
	inspector *vcs.Inspector
	prompter  prompt.Prompter
	out       *render.Printer
	root      string
	meta      repoMeta
	creator   creatorFunc
	now       func() time.Time
}

// newApp opens the repository around the working directory, loads its
// configuration and attaches a logger to cmd's context.
func newApp(cmd *cobra.Command) (*app, error) {
	r, err := repo.Open(".")
	if err != nil {
		return nil, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	required := cfgPath != ""
	if cfgPath == "" {
		cfgPath = config.DefaultPath(r.Root())
	}
	cfg, err := config.Load(cfgPath, required)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithLogger(cmd.Context(), log)
	cmd.SetContext(ctx)
	log.Debug("config loaded",
		zap.String("path", cfgPath),
		zap.String("trunk", cfg.Trunk),
		zap.String("remote", cfg.Remote),
		zap.Bool("non_interactive", cfg.NonInteractive),
	)

	out := render.New(cmd.OutOrStdout(), colorEnabled(os.Stdout))
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		out.SetWidth(width)
	}

	git := vcs.NewGit(r.Root())
	return &app{
		cfg:       cfg,
		git:       git,
		inspector: vcs.NewInspector(git, cfg.Remote),
		prompter:  prompt.ForTerminal(os.Stdin, cmd.OutOrStdout(), cfg.NonInteractive),
		out:       out,
		root:      r.Root(),
		meta:      r,
		creator:   hostingCreator(cfg),
		now:       time.Now,
	}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("trunk") {
		cfg.Trunk, _ = flags.GetString("trunk")
	}
	if flags.Changed("remote") {
		cfg.Remote, _ = flags.GetString("remote")
	}
	if flags.Changed("non-interactive") {
		cfg.NonInteractive, _ = flags.GetBool("non-interactive")
	}
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
}

func hostingCreator(cfg *config.Config) creatorFunc {
	return func(ctx context.Context, remote repo.Remote) (hosting.Creator, error) {
		return hosting.Select(ctx, hosting.Settings{
			Kind:   cfg.PRCreator,
			Token:  cfg.GitHubToken,
			APIURL: cfg.GitHubAPIURL,
			Remote: remote,
		})
	}
}

// hostedRemote resolves the configured remote to a hosted repository. The
// boolean is false when the URL is not one we recognise.
func (a *app) hostedRemote(ctx context.Context) (repo.Remote, bool) {
	u, err := a.meta.RemoteURL(a.cfg.Remote)
	if err == nil {
		var r repo.Remote
		if r, err = repo.ParseRemote(u); err == nil {
			return r, true
		}
	}
	logging.FromContext(ctx).Debug("remote not recognised", zap.String("remote", a.cfg.Remote), zap.Error(err))
	return repo.Remote{}, false
}
