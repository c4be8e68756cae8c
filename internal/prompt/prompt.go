// Package prompt asks the operator questions. Workflows receive a Prompter
// instead of reading stdin so that tests and non-interactive runs can supply
// answers.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"github.com/aezell/branchkit/internal/model"
)

// Question is a single prompt. Options, when set, are offered as a numbered
// menu; the answer may be the number or the option text.
type Question struct {
	Text    string
	Default string
	Options []string
}

// Prompter asks a question and returns the operator's answer line.
type Prompter interface {
	Ask(ctx context.Context, q Question) (string, error)
	// Interactive reports whether a human is answering.
	Interactive() bool
}

// Confirm asks a yes/no question. An empty answer selects def.
func Confirm(ctx context.Context, p Prompter, text string, def bool) (bool, error) {
	hint := "y/N"
	defAnswer := "n"
	if def {
		hint, defAnswer = "Y/n", "y"
	}
	ans, err := p.Ask(ctx, Question{Text: fmt.Sprintf("%s (%s)", text, hint), Default: defAnswer})
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

const maxAttempts = 3

// Choose offers options and returns the index picked. def is the index used
// for an empty answer.
func Choose(ctx context.Context, p Prompter, text string, options []string, def int) (int, error) {
	q := Question{Text: text, Options: options}
	if def >= 0 && def < len(options) {
		q.Default = strconv.Itoa(def + 1)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ans, err := p.Ask(ctx, q)
		if err != nil {
			return 0, err
		}
		if i, ok := matchOption(strings.TrimSpace(ans), options, def); ok {
			return i, nil
		}
	}
	return 0, errors.Mark(errors.Newf("no valid choice after %d attempts", maxAttempts), model.ErrUserAborted)
}

func matchOption(ans string, options []string, def int) (int, bool) {
	if ans == "" {
		return def, def >= 0 && def < len(options)
	}
	if n, err := strconv.Atoi(ans); err == nil {
		return n - 1, n >= 1 && n <= len(options)
	}
	for i, o := range options {
		if strings.EqualFold(o, ans) {
			return i, true
		}
		if f := strings.Fields(o); len(f) > 0 && strings.EqualFold(f[0], ans) {
			return i, true
		}
	}
	return 0, false
}

// Auto answers every question with its default. It stands in for the
// operator in non-interactive runs.
type Auto struct{}

func (Auto) Ask(_ context.Context, q Question) (string, error) { return q.Default, nil }
func (Auto) Interactive() bool                                   { return false }

// Scripted replays canned answers in order. Asked records each question.
type Scripted struct {
	Answers []string
	Asked   []string
}

// NewScripted returns a Scripted prompter that answers with answers.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) Ask(_ context.Context, q Question) (string, error) {
	s.Asked = append(s.Asked, q.Text)
	if len(s.Answers) == 0 {
		return "", errors.Mark(errors.Newf("no scripted answer for %q", q.Text), model.ErrUserAborted)
	}
	ans := s.Answers[0]
	s.Answers = s.Answers[1:]
	return ans, nil
}

func (s *Scripted) Interactive() bool { return true }

// Line reads answers one line at a time. It serves piped input where a
// full-screen prompt cannot run.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a line prompter reading from in and writing to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for i, o := range q.Options {
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, o)
	}
	if q.Default != "" {
		fmt.Fprintf(l.out, "%s [%s]: ", q.Text, q.Default)
	} else {
		fmt.Fprintf(l.out, "%s: ", q.Text)
	}

	line, err := l.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errors.Mark(errors.New("input closed"), model.ErrUserAborted)
		}
		return "", errors.Wrap(err, "reading answer")
	}
	return strings.TrimSpace(line), nil
}

func (l *Line) Interactive() bool { return true }

// ForTerminal picks a prompter: Auto when nonInteractive is set, the
// full-screen TUI when in is a terminal, and Line otherwise.
func ForTerminal(in *os.File, out io.Writer, nonInteractive bool) Prompter {
	if nonInteractive {
		return Auto{}
	}
	if term.IsTerminal(int(in.Fd())) {
		return NewTUI(in, out)
	}
	return NewLine(in, out)
}
