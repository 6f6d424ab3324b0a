// Package welcome is the splash screen shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

const frameInterval = 100 * time.Millisecond

type stage int

const (
	stageCard    stage = iota
	stageSparkle       // from 500ms
	stageBanner        // from 1500ms
)

var stageStarts = [...]time.Duration{0, 500 * time.Millisecond, 1500 * time.Millisecond}

// The animation stops advancing after this long; the screen stays until a
// key is pressed.
const animationLength = 3 * time.Second

var cardLines = []string{
	"╭─────────────╮",
	"│      ?      │",
	"│             │",
	"│  A ▢   B ▢  │",
	"│  C ▢   D ▢  │",
	"╰─────────────╯",
}

var sparkles = [2]string{"★", "✦"}

type frameMsg struct{}

type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frame   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash screen that swaps itself for next() on the first
// key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) stage() stage {
	s := stageCard
	for i, start := range stageStarts {
		if w.elapsed >= start {
			s = stage(i)
		}
	}
	return s
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.elapsed = min(w.elapsed+frameInterval, animationLength)
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Swap(w.next())
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	st := w.stage()
	card := w.card(st)

	parts := []string{card}
	if st >= stageBanner {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Endless trivia, one batch at a time."),
			"",
			theme.Hint.Italic(true).Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// card draws the quiz card, framed by alternating sparkles once the
// sparkle stage is reached.
func (w *WelcomeScreen) card(st stage) string {
	body := lipgloss.NewStyle().Foreground(theme.Secondary)
	if st < stageSparkle {
		return body.Render(strings.Join(cardLines, "\n"))
	}

	a := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkles[w.frame%2])
	b := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkles[w.frame%2])
	out := make([]string, len(cardLines))
	for i, line := range cardLines {
		line = body.Render(line)
		switch i {
		case 0:
			out[i] = a + "  " + line + "  " + b
		case len(cardLines) - 1:
			out[i] = b + "  " + line + "  " + a
		default:
			out[i] = "   " + line + "   "
		}
	}
	return strings.Join(out, "\n")
}
