package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/model"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8be9fd"))
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
)

// TUI asks questions with an inline Bubble Tea text input. Menu options can
// be picked with the arrow keys or typed.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI returns a TUI prompter bound to in and out.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

func (t *TUI) Interactive() bool { return true }

func (t *TUI) Ask(ctx context.Context, q Question) (string, error) {
	p := tea.NewProgram(newAskModel(q),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		return "", errors.Wrap(err, "running prompt")
	}
	m := final.(askModel)
	if m.canceled {
		return "", errors.Mark(errors.New("prompt canceled"), model.ErrUserAborted)
	}
	return m.answer, nil
}

// askModel is the Bubble Tea model for a single question.
type askModel struct {
	question Question
	input    textinput.Model
	selected int // index into question.Options, -1 when none

	answer   string
	done     bool
	canceled bool
}

func newAskModel(q Question) askModel {
	ti := textinput.New()
	ti.Placeholder = q.Default
	ti.Prompt = "> "
	ti.Focus()

	m := askModel{question: q, input: ti, selected: -1}
	if len(q.Options) > 0 {
		m.selected = 0
		if n := defaultIndex(q); n >= 0 {
			m.selected = n
		}
	}
	return m
}

func defaultIndex(q Question) int {
	i, ok := matchOption(q.Default, q.Options, -1)
	if !ok {
		return -1
	}
	return i
}

// Init implements tea.Model.
func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			m.canceled = true
			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			m.answer = m.resolve()
			m.done = true
			return m, tea.Quit

		case len(m.question.Options) > 0 && key.Matches(msg, keys.Prev):
			if m.selected > 0 {
				m.selected--
			}
			m.input.SetValue("")
			return m, nil

		case len(m.question.Options) > 0 && key.Matches(msg, keys.Next):
			if m.selected < len(m.question.Options)-1 {
				m.selected++
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resolve returns the typed text, or the highlighted option's number when
// nothing was typed in a menu.
func (m askModel) resolve() string {
	typed := strings.TrimSpace(m.input.Value())
	if typed != "" || m.selected < 0 {
		return typed
	}
	return fmt.Sprint(m.selected + 1)
}

// View implements tea.Model.
func (m askModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question.Text))
	b.WriteString("\n")
	for i, o := range m.question.Options {
		line := fmt.Sprintf("  %d. %s", i+1, o)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("› " + line[2:]))
		} else {
			b.WriteString(optionStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	help := []string{keys.Submit.Help().Key + " " + keys.Submit.Help().Desc, keys.Cancel.Help().Key + " " + keys.Cancel.Help().Desc}
	if len(m.question.Options) > 0 {
		help = append(help, "↑/↓ choose")
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}
