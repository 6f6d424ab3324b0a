// Package home is the main menu: level selection, new challenges, review
// and the entry points to auto-fill and key management.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/screens/fill"
	"github.com/abhisek/quizbank/internal/screens/key"
	"github.com/abhisek/quizbank/internal/screens/play"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

const (
	itemChallenge = iota
	itemReview
	itemAutoFill
	itemKey
	itemExit
)

// generatedMsg carries the result of a background generation.
type generatedMsg struct {
	batch trivia.Batch
	err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc   *trivia.Service
	level quiz.Level

	menu   components.Menu
	counts map[quiz.Level]int
	hasKey bool

	busy   bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

func New(svc *trivia.Service) *HomeScreen {
	h := &HomeScreen{svc: svc, level: quiz.LevelBeginner}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "NEW CHALLENGE", Action: h.startChallenge},
		{Label: "REVIEW", Action: h.startReview},
		{Label: "AUTO-FILL", Action: func() tea.Cmd {
			return router.Open(fill.New(svc, h.level))
		}},
		{Label: "API KEY", Action: func() tea.Cmd {
			return router.Open(key.New(svc))
		}},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

// refresh reloads bank counts and key status.
func (h *HomeScreen) refresh() {
	h.counts = h.svc.Bank().Counts()
	cred, err := h.svc.Credential(context.Background())
	h.hasKey = err == nil && cred != ""
	h.menu.SetDisabled(itemReview, h.counts[h.level] == 0)
}

func (h *HomeScreen) startChallenge() tea.Cmd {
	h.busy = true
	h.errMsg = ""
	svc, level := h.svc, h.level
	return func() tea.Msg {
		b, err := svc.Generate(context.Background(), generator.Config{Level: level, Count: generator.DefaultCount})
		return generatedMsg{batch: b, err: err}
	}
}

func (h *HomeScreen) startReview() tea.Cmd {
	sess, err := h.svc.Review(h.level, 0)
	if err != nil {
		h.errMsg = trivia.UserMessage(err)
		return nil
	}
	h.errMsg = ""
	return router.Open(play.New(sess, ""))
}

func (h *HomeScreen) onGenerated(msg generatedMsg) tea.Cmd {
	h.busy = false
	h.refresh()
	if msg.err != nil {
		h.errMsg = trivia.UserMessage(msg.err)
		return nil
	}
	sess, err := h.svc.Challenge(msg.batch)
	if err != nil {
		h.errMsg = trivia.UserMessage(err)
		return nil
	}

	notice := fmt.Sprintf("%d new saved, %d already known", msg.batch.Merge.Added, msg.batch.Merge.Skipped)
	if msg.batch.SaveErr != nil {
		notice = trivia.UserMessage(msg.batch.SaveErr)
	}
	return router.Open(play.New(sess, notice))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.busy {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Level"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return h, h.onGenerated(msg)
	case screen.RefreshMsg:
		h.refresh()
		return h, nil
	case tea.KeyPressMsg:
		if h.busy {
			return h, nil
		}
		switch msg.String() {
		case "left", "h":
			h.setLevel(h.level.Prev())
			return h, nil
		case "right", "l":
			h.setLevel(h.level.Next())
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) setLevel(l quiz.Level) {
	h.level = l
	h.errMsg = ""
	h.menu.SetDisabled(itemReview, h.counts[l] == 0)
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	sections = append(sections, components.Card(h.renderLevels(cw), cw))

	if !h.hasKey {
		sections = append(sections, theme.Warning.Width(cw).Align(lipgloss.Center).
			Render("No API key set. Choose API KEY to enter one."))
	}

	if h.busy {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Generating %d %s questions…", generator.DefaultCount, h.level.Label())))
	} else {
		sections = append(sections, h.renderMenu(cw))
	}

	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Width(cw).Align(lipgloss.Center).Render(h.errMsg))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Q U I Z B A N K")
}

// renderLevels draws the level selector with per-level saved counts.
func (h *HomeScreen) renderLevels(cw int) string {
	var cells []string
	for _, l := range quiz.Levels() {
		label := fmt.Sprintf("%s %d", l.Label(), h.counts[l])
		style := lipgloss.NewStyle().Padding(0, 1)
		if l == h.level {
			style = theme.ForLevel(l).Padding(0, 1).Reverse(true)
		} else {
			style = style.Foreground(theme.TextDim)
		}
		cells = append(cells, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, cells...)
	return lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, "◂ "+row+" ▸")
}

func (h *HomeScreen) renderMenu(cw int) string {
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, h.menu.View(min(cw-8, 30)))
}
