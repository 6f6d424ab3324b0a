package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/screens/fill"
	"github.com/abhisek/quizbank/internal/screens/key"
	"github.com/abhisek/quizbank/internal/screens/play"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/trivia/triviatest"
)

func press(h *HomeScreen, code rune) tea.Cmd {
	_, cmd := h.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func pushed(t *testing.T, msg tea.Msg) screen.Screen {
	t.Helper()
	p, ok := msg.(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msg)
	return p.Screen
}

func TestReviewDisabledWhenEmpty(t *testing.T) {
	h := New(triviatest.New(t))
	assert.True(t, h.menu.Items[itemReview].Disabled)
	assert.Equal(t, itemChallenge, h.menu.Selected)

	press(h, tea.KeyDown)
	assert.Equal(t, itemAutoFill, h.menu.Selected, "cursor should skip REVIEW")
}

func TestNewChallengePushesPlay(t *testing.T) {
	svc := triviatest.New(t)
	h := New(svc)

	cmd := press(h, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, h.busy)
	assert.Contains(t, h.View(100, 40), "Generating 10 Beginner questions")

	_, cmd = h.Update(cmd())
	require.NotNil(t, cmd)
	_, ok := pushed(t, cmd()).(*play.PlayScreen)
	assert.True(t, ok)

	assert.False(t, h.busy)
	assert.Equal(t, 10, h.counts[quiz.LevelBeginner])
	assert.False(t, h.menu.Items[itemReview].Disabled)
}

func TestGenerationErrorShown(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	svc := triviatest.NewWith(t, triviatest.Config("gemini"), trivia.Deps{})
	h := New(svc)
	assert.Contains(t, h.View(100, 40), "No API key set")

	cmd := press(h, tea.KeyEnter)
	_, cmd = h.Update(cmd())
	assert.Nil(t, cmd)
	assert.Contains(t, h.View(100, 40), "No API key is set")
}

func TestLevelSwitchUpdatesReview(t *testing.T) {
	svc := triviatest.New(t)
	_, err := svc.Generate(context.Background(), generator.Config{Level: quiz.LevelAdvanced, Count: 3})
	require.NoError(t, err)

	h := New(svc)
	press(h, tea.KeyRight)
	assert.Equal(t, quiz.LevelIntermediate, h.level)
	assert.True(t, h.menu.Items[itemReview].Disabled)

	press(h, tea.KeyRight)
	assert.Equal(t, quiz.LevelAdvanced, h.level)
	assert.False(t, h.menu.Items[itemReview].Disabled)

	h.menu.Selected = itemReview
	cmd := press(h, tea.KeyEnter)
	require.NotNil(t, cmd)
	_, ok := pushed(t, cmd()).(*play.PlayScreen)
	assert.True(t, ok)
}

func TestRefreshPicksUpChanges(t *testing.T) {
	svc := triviatest.New(t)
	h := New(svc)

	_, err := svc.Generate(context.Background(), generator.Config{Level: quiz.LevelBeginner, Count: 2})
	require.NoError(t, err)
	assert.True(t, h.menu.Items[itemReview].Disabled)

	h.Update(screen.RefreshMsg{})
	assert.Equal(t, 2, h.counts[quiz.LevelBeginner])
	assert.False(t, h.menu.Items[itemReview].Disabled)
}

func TestMenuOpensScreens(t *testing.T) {
	h := New(triviatest.New(t))

	h.menu.Selected = itemAutoFill
	_, ok := pushed(t, press(h, tea.KeyEnter)()).(*fill.FillScreen)
	assert.True(t, ok)

	h.menu.Selected = itemKey
	_, ok = pushed(t, press(h, tea.KeyEnter)()).(*key.KeyScreen)
	assert.True(t, ok)

	h.menu.Selected = itemExit
	assert.IsType(t, tea.QuitMsg{}, press(h, tea.KeyEnter)())
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	h := New(triviatest.New(t))
	h.busy = true
	assert.Nil(t, press(h, tea.KeyRight))
	assert.Equal(t, quiz.LevelBeginner, h.level)
	assert.True(t, strings.Contains(h.View(100, 40), "Generating"))
}
