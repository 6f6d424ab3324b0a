// Package app hosts the root Bubble Tea model: a screen router framed by a
// header and a footer of key hints.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/screens/home"
	"github.com/abhisek/quizbank/internal/screens/welcome"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Service *trivia.Service

	// Provider is shown in the header.
	Provider string
	Logger   zerolog.Logger

	// SkipWelcome starts directly on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	svc      *trivia.Service
	provider string
	width    int
	height   int
}

func newAppModel(opts Options) AppModel {
	svc := opts.Service
	var first screen.Screen
	if opts.SkipWelcome {
		first = home.New(svc)
	} else {
		first = welcome.New(func() screen.Screen { return home.New(svc) })
	}
	return AppModel{
		router:   router.New(first),
		svc:      svc,
		provider: opts.Provider,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the right-hand side of the header.
func (m AppModel) status() string {
	if m.svc == nil {
		return m.provider
	}
	return fmt.Sprintf("%s · %d saved", m.provider, len(m.svc.Bank().All()))
}

func (m AppModel) keyHints() []layout.KeyHint {
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := m.router.Active().Title()
	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	log := opts.Logger.With().Str("component", "tui").Logger()
	log.Info().Str("provider", opts.Provider).Msg("tui started")

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui failed")
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info().Msg("tui stopped")
	return nil
}
