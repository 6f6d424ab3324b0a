// Package fill runs auto-fill for one level and shows its progress.
package fill

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/autofill"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// DefaultTarget is the pre-filled target size.
const DefaultTarget = 100

type (
	progressMsg autofill.Progress
	doneMsg     struct {
		result autofill.Result
		err    error
	}
)

type phase int

const (
	phaseSetup phase = iota
	phaseRunning
	phaseDone
)

type FillScreen struct {
	svc   *trivia.Service
	level quiz.Level

	input    components.TextInput
	phase    phase
	updates  chan tea.Msg
	cancel   context.CancelFunc
	progress autofill.Progress
	result   autofill.Result
	errMsg   string
}

var _ screen.Screen = (*FillScreen)(nil)
var _ screen.KeyHintProvider = (*FillScreen)(nil)
var _ screen.EscapeHandler = (*FillScreen)(nil)

func New(svc *trivia.Service, level quiz.Level) *FillScreen {
	in := components.NewTextInput("target", true, 4)
	in.Model.SetValue(fmt.Sprint(max(DefaultTarget, svc.Bank().Count(level))))
	return &FillScreen{svc: svc, level: level, input: in}
}

func (f *FillScreen) Init() tea.Cmd { return f.input.Init() }

func (f *FillScreen) Title() string { return "Auto-Fill" }

func (f *FillScreen) HandlesEscape() bool { return true }

func (f *FillScreen) KeyHints() []layout.KeyHint {
	switch f.phase {
	case phaseRunning:
		return []layout.KeyHint{{Key: "S / Esc", Description: "Stop"}}
	case phaseDone:
		return []layout.KeyHint{{Key: "Enter / Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *FillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		f.progress = autofill.Progress(msg)
		return f, wait(f.updates)
	case doneMsg:
		f.updates = nil
		f.cancel = nil
		if msg.err != nil {
			f.phase = phaseSetup
			f.errMsg = trivia.UserMessage(msg.err)
			return f, nil
		}
		f.phase = phaseDone
		f.result = msg.result
		return f, nil
	case tea.KeyPressMsg:
		return f.handleKey(msg)
	}
	if f.phase == phaseSetup {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch f.phase {
	case phaseRunning:
		if key == "s" || key == "S" || key == "esc" {
			f.stop()
		}
		return f, nil
	case phaseDone:
		if key == "enter" || key == "esc" {
			return f, router.Back()
		}
		return f, nil
	}

	switch key {
	case "esc":
		return f, router.Back()
	case "enter":
		target, err := f.input.Int()
		if err != nil || target <= 0 {
			f.errMsg = "Enter a positive target."
			return f, nil
		}
		f.errMsg = ""
		return f, f.start(target)
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// start runs the loop in the background. Progress snapshots arrive as
// messages; a full channel drops the snapshot since the next one
// supersedes it.
func (f *FillScreen) start(target int) tea.Cmd {
	f.phase = phaseRunning
	f.progress = autofill.Progress{Level: f.level, Current: f.svc.Bank().Count(f.level), Target: target, Status: "starting"}

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan tea.Msg, 8)
	f.updates, f.cancel = updates, cancel
	svc, level := f.svc, f.level
	go func() {
		defer cancel()
		res, err := svc.StartAutoFill(ctx, level, target, func(p autofill.Progress) {
			select {
			case updates <- progressMsg(p):
			default:
			}
		})
		updates <- doneMsg{result: res, err: err}
		close(updates)
	}()
	return wait(updates)
}

// stop cancels the run's context. Unlike StopAutoFill it also takes effect
// when the goroutine has not reached the controller yet.
func (f *FillScreen) stop() {
	if f.cancel != nil {
		f.cancel()
	}
	f.progress.Stopping = true
}

func wait(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (f *FillScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Auto-fill " + f.level.Label()))
	b.WriteString("\n\n")

	switch f.phase {
	case phaseSetup:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Saved: %d   Cap: %d", f.svc.Bank().Count(f.level), f.svc.Bank().Cap())))
		b.WriteString("\n\nTarget  ")
		b.WriteString(f.input.View())
	case phaseRunning:
		p := f.progress
		b.WriteString(components.Gauge(p.Current, p.Target, cw-4))
		b.WriteString("\n\n")
		status := p.Status
		if p.Stopping {
			status = "stopping after the current batch…"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(status))
	case phaseDone:
		r := f.result
		style := theme.Correct
		if r.Reason == autofill.ReasonStopped {
			style = theme.Warning
		}
		b.WriteString(style.Render(capitalize(r.Reason.String())))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("%d/%d saved  ·  %d added in %d batches", r.Count, r.Target, r.Added, r.Batches)))
	}

	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(f.errMsg))
	}

	return components.CabinetFrame(components.Card(b.String(), cw), width, height)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
