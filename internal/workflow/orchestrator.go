package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/safety"
	"github.com/aezell/branchkit/internal/vcs"
)

// Options configures an Orchestrator.
type Options struct {
	Trunk  string
	Remote string
	// OnAssessment, when set, receives the safety assessment before any
	// confirmation is asked for.
	OnAssessment func(a safety.Assessment)
	// OnTransition, when set, is called after every state change.
	OnTransition func(s Session, from State)
}

// Orchestrator moves the repository from its current state to a freshly
// pushed work branch.
type Orchestrator struct {
	client    vcs.Client
	inspector *vcs.Inspector
	prompter  prompt.Prompter
	opts      Options
}

// New returns an Orchestrator issuing commands through client.
func New(client vcs.Client, p prompt.Prompter, opts Options) *Orchestrator {
	if opts.Trunk == "" {
		opts.Trunk = "main"
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	return &Orchestrator{
		client:    client,
		inspector: vcs.NewInspector(client, opts.Remote),
		prompter:  p,
		opts:      opts,
	}
}

// Run drives a new session for target to a terminal state. On failure the
// returned session carries the rollback outcome and Run returns its error.
func (o *Orchestrator) Run(ctx context.Context, target BranchSpec) (Session, error) {
	s := NewSession(target)
	log := logging.FromContext(ctx).With(zap.String("session_id", s.ID))

	for !s.State.Terminal() {
		from := s.State
		s = o.Step(ctx, s)
		log.Info("transition",
			zap.Stringer("from", from),
			zap.Stringer("to", s.State),
		)
		if o.opts.OnTransition != nil {
			o.opts.OnTransition(s, from)
		}
	}

	if s.State == StateError {
		s.Recovery = o.Rollback(ctx, s)
		log.Warn("workflow failed",
			zap.Stringer("step", s.FailedStep),
			zap.Error(s.Err),
			zap.Bool("recovered", s.Recovery.Succeeded),
		)
		return s, s.Err
	}
	return s, nil
}

// Step performs the single transition leaving s.State.
func (o *Orchestrator) Step(ctx context.Context, s Session) Session {
	switch s.State {
	case StateInit:
		return o.checkSafety(ctx, s)
	case StateSafetyChecked:
		return o.syncTrunk(ctx, s)
	case StateTrunkSynced:
		return o.createBranch(ctx, s)
	case StateBranchCreated:
		return o.pushInitial(ctx, s)
	case StateInitialPushDone:
		return s.advance(StateComplete)
	default:
		return s
	}
}

func (o *Orchestrator) checkSafety(ctx context.Context, s Session) Session {
	st, err := o.inspector.State(ctx, o.opts.Trunk)
	if err != nil {
		return s.fail(err)
	}
	s.InitialBranch = st.Branch
	s.Assessment = safety.Assess(st, o.opts.Trunk)
	if o.opts.OnAssessment != nil {
		o.opts.OnAssessment(s.Assessment)
	}
	if s.Assessment.Safe() {
		return s.advance(StateSafetyChecked)
	}

	issues := make([]string, len(s.Assessment.Issues))
	for i, f := range s.Assessment.Issues {
		issues[i] = f.Message
	}
	if !o.prompter.Interactive() {
		err := errors.Newf("safety check failed: %s", strings.Join(issues, "; "))
		return s.fail(errors.WithHint(errors.Mark(err, model.ErrUserAborted),
			"resolve the issues above, or run interactively to override them"))
	}

	ok, err := prompt.Confirm(ctx, o.prompter, "Safety check found problems. Continue anyway?", false)
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.fail(errors.Mark(errors.Newf("stopped at safety check: %s", strings.Join(issues, "; ")), model.ErrUserAborted))
	}
	return s.advance(StateSafetyChecked)
}

func (o *Orchestrator) syncTrunk(ctx context.Context, s Session) Session {
	trunk, remote := o.opts.Trunk, o.opts.Remote

	if s.InitialBranch != trunk {
		if err := o.client.Checkout(ctx, trunk, false); err != nil {
			return s.fail(commandFailure(err, "checking out "+trunk,
				fmt.Sprintf("git checkout %s", trunk)))
		}
	}
	if err := o.client.Pull(ctx, remote, trunk); err != nil {
		return s.fail(commandFailure(err, "updating "+trunk,
			fmt.Sprintf("git checkout %s && git pull --ff-only %s %s", trunk, remote, trunk)))
	}
	return s.advance(StateTrunkSynced)
}

func (o *Orchestrator) createBranch(ctx context.Context, s Session) Session {
	name := s.Target.Name()

	exists, err := o.inspector.BranchExists(ctx, name, vcs.Local)
	if err != nil {
		return s.fail(commandFailure(err, "checking for branch "+name, ""))
	}
	if exists {
		err := errors.Mark(errors.Newf("branch %s already exists", name), model.ErrBranchNameConflict)
		return s.fail(errors.WithHintf(err, "choose another task name, or switch to it with: git checkout %s", name))
	}

	ok, err := prompt.Confirm(ctx, o.prompter, fmt.Sprintf("Create branch %s?", name), true)
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.fail(errors.Mark(errors.Newf("branch %s not created", name), model.ErrUserAborted))
	}

	if err := o.client.Checkout(ctx, name, true); err != nil {
		return s.fail(commandFailure(err, "creating branch "+name,
			fmt.Sprintf("git checkout -b %s", name)))
	}
	s.BranchCreated = true
	return s.advance(StateBranchCreated)
}

func (o *Orchestrator) pushInitial(ctx context.Context, s Session) Session {
	name := s.Target.Name()

	if err := o.client.Commit(ctx, InitCommitMessage(name), true); err != nil {
		return s.fail(commandFailure(err, "creating initial commit",
			fmt.Sprintf("git commit --allow-empty -m %q", InitCommitMessage(name))))
	}

	if err := o.client.Push(ctx, o.opts.Remote, name, true); err != nil {
		logging.FromContext(ctx).Warn("initial push failed", zap.String("branch", name), zap.Error(err))
		s.PartialSuccess = true
		s.PushInstruction = fmt.Sprintf("git push -u %s %s", o.opts.Remote, name)
	}
	return s.advance(StateInitialPushDone)
}

// Rollback returns the operator to the branch they started on. It never
// deletes branches or discards work; a created branch is left in place with
// instructions for removing it by hand.
func (o *Orchestrator) Rollback(ctx context.Context, s Session) RecoveryOutcome {
	var out RecoveryOutcome
	var manual []string

	current, err := o.inspector.CurrentBranch(ctx)
	switch {
	case s.InitialBranch == "":
	case err != nil:
		manual = append(manual, "git checkout "+s.InitialBranch)
	case current != s.InitialBranch:
		out.Attempted = true
		if err := o.client.Checkout(ctx, s.InitialBranch, false); err != nil {
			logging.FromContext(ctx).Warn("rollback checkout failed",
				zap.String("branch", s.InitialBranch), zap.Error(err))
			manual = append(manual, "git checkout "+s.InitialBranch)
		} else {
			out.Succeeded = true
		}
	}

	if s.BranchCreated {
		manual = append(manual, "git branch -D "+s.Target.Name())
	}
	out.ManualInstruction = strings.Join(manual, " && ")
	return out
}

// commandFailure marks err as a failed mutating command in step, with an
// optional manual command for the operator to retry.
func commandFailure(err error, step, manual string) error {
	err = errors.Mark(errors.Wrap(err, step), model.ErrCommandFailure)
	if manual != "" {
		err = errors.WithHintf(err, "to retry manually: %s", manual)
	}
	return err
}
