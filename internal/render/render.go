// Package render writes command results to the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/safety"
	"github.com/aezell/branchkit/internal/workflow"
)

// Printer formats results for one output stream.
type Printer struct {
	w     io.Writer
	color bool
	r     *lipgloss.Renderer
	st    palette
	width int
}

// New returns a Printer writing to w. Colour is only emitted when color is
// set and w supports it.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{w: w, color: color, r: r, st: newPalette(r)}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Heading prints a section title.
func (p *Printer) Heading(text string) {
	p.println(p.style(p.st.heading, text))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.println(p.style(p.st.ok, "✓ "+fmt.Sprintf(format, args...)))
}

// Info prints a neutral note.
func (p *Printer) Info(format string, args ...any) {
	p.println(p.style(p.st.info, "• "+fmt.Sprintf(format, args...)))
}

// Warn prints a non-blocking problem.
func (p *Printer) Warn(format string, args ...any) {
	p.println(p.style(p.st.warning, "! "+fmt.Sprintf(format, args...)))
}

// Error prints err followed by any hints attached to it.
func (p *Printer) Error(err error) {
	p.println(p.style(p.st.issue, "✗ "+err.Error()))
	if hint := errors.FlattenHints(err); hint != "" {
		for _, h := range strings.Split(hint, "\n") {
			if h = strings.TrimSpace(h); h != "" && !strings.HasPrefix(h, "--") {
				p.println(p.style(p.st.dim, "  hint: "+h))
			}
		}
	}
}

// Assessment prints blocking issues and warnings, or a clean bill of health.
func (p *Printer) Assessment(a safety.Assessment) {
	if a.Clean() {
		p.Success("safety check passed")
		return
	}
	for _, f := range a.Issues {
		p.println(p.style(p.st.issue, "✗ "+f.Message))
	}
	for _, f := range a.Warnings {
		p.Warn("%s", f.Message)
	}
}

// Recommendation prints the chosen classification and the runners-up.
func (p *Printer) Recommendation(rec classify.Classification, all []classify.Classification) {
	p.println(p.style(p.st.heading, "Recommended commit type: ") +
		p.style(p.st.key, rec.Type.Prefix()) +
		p.style(p.st.dim, fmt.Sprintf(" (%d%% confidence)", rec.Percent())))
	p.println("  reason: " + rec.Rationale)
	p.println("  message: " + p.style(p.st.accent, rec.CommitMessage()))
	for _, c := range all {
		if c.Rule == rec.Rule {
			continue
		}
		p.println(p.style(p.st.dim, fmt.Sprintf("  also: %s %d%%", c.Type.Prefix(), c.Percent())))
	}
}

// BranchSuggestion prints the proposed branch type.
func (p *Printer) BranchSuggestion(s classify.BranchSuggestion) {
	p.println(p.style(p.st.heading, "Suggested branch type: ") +
		p.style(p.st.key, s.Type.String()) +
		p.style(p.st.dim, fmt.Sprintf(" (%d%%, %s)", int(s.Confidence*100+0.5), s.Rationale)))
}

// Session prints the outcome of a branch creation run.
func (p *Printer) Session(s workflow.Session) {
	steps := make([]string, 0, len(s.Completed)+1)
	for _, st := range s.Completed {
		steps = append(steps, st.String())
	}
	steps = append(steps, s.State.String())
	p.println(p.style(p.st.dim, "steps: "+strings.Join(steps, " → ")))

	switch {
	case s.State == workflow.StateError:
		p.println(p.style(p.st.issue, fmt.Sprintf("✗ failed during %s", s.FailedStep)))
		if s.Err != nil {
			p.Error(s.Err)
		}
		p.Recovery(s.Recovery)
	case s.PartialSuccess:
		p.Success("created branch %s", s.Target.Name())
		p.Warn("initial push failed; finish with: %s", s.PushInstruction)
	default:
		p.Success("created branch %s and pushed it to the remote", s.Target.Name())
	}
}

// Recovery prints what rollback did.
func (p *Printer) Recovery(r workflow.RecoveryOutcome) {
	switch {
	case !r.Attempted && r.ManualInstruction == "":
		return
	case r.Succeeded:
		p.Info("restored the original branch")
	case r.Attempted:
		p.Warn("could not restore the original branch")
	}
	if r.ManualInstruction != "" {
		p.println("  to recover manually: " + p.style(p.st.key, r.ManualInstruction))
	}
}

// SetWidth sets the terminal width highlighted documents are wrapped to;
// zero leaves lines as they are.
func (p *Printer) SetWidth(width int) {
	p.width = width
}

// Document prints Markdown. With colour on it is highlighted and lines
// longer than the terminal are word-wrapped; plain output is left verbatim
// so it can be piped into a file.
func (p *Printer) Document(text string) {
	if !p.color {
		fmt.Fprint(p.w, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(p.w)
		}
		return
	}
	wrap := p.r.NewStyle().Width(p.width)
	for _, line := range MarkdownLines(text) {
		var b strings.Builder
		for _, s := range line.Spans {
			st := p.r.NewStyle().Bold(s.Bold)
			if s.Color != "" {
				st = st.Foreground(lipgloss.Color(s.Color))
			}
			b.WriteString(st.Render(s.Text))
		}
		out := b.String()
		if p.width > 0 && lipgloss.Width(out) > p.width {
			out = wrap.Render(out)
		}
		p.println(out)
	}
}
