package fill

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/autofill"
	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/trivia/triviatest"
)

// drain feeds command results back into the screen until it settles.
func drain(t *testing.T, f *FillScreen, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 1000, "auto-fill did not finish")
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = f.Update(msg)
	}
}

func setTarget(f *FillScreen, v string) {
	f.input.Model.SetValue(v)
}

func TestDefaultTarget(t *testing.T) {
	f := New(triviatest.New(t), quiz.LevelBeginner)
	assert.Equal(t, "100", f.input.Value())
	assert.Contains(t, f.View(80, 24), "Auto-fill Beginner")
}

func TestRunToTarget(t *testing.T) {
	svc := triviatest.New(t)
	f := New(svc, quiz.LevelIntermediate)
	setTarget(f, "15")

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, phaseRunning, f.phase)
	assert.Len(t, f.KeyHints(), 1)

	drain(t, f, cmd)

	assert.Equal(t, phaseDone, f.phase)
	assert.Equal(t, autofill.ReasonTargetReached, f.result.Reason)
	assert.GreaterOrEqual(t, svc.Bank().Count(quiz.LevelIntermediate), 15)
	assert.Contains(t, f.View(80, 24), "Target reached")

	_, cmd = f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.NotNil(t, cmd, "Enter should go back when done")
}

func TestInvalidTarget(t *testing.T) {
	f := New(triviatest.New(t), quiz.LevelBeginner)
	setTarget(f, "0")

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseSetup, f.phase)
	assert.Contains(t, f.View(80, 24), "positive target")
}

func TestAlreadyAtTarget(t *testing.T) {
	svc := triviatest.New(t)
	_, err := svc.Generate(context.Background(), generator.Config{Level: quiz.LevelExpert, Count: 5})
	require.NoError(t, err)

	f := New(svc, quiz.LevelExpert)
	setTarget(f, "3")
	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	drain(t, f, cmd)

	assert.Equal(t, phaseDone, f.phase)
	assert.Equal(t, 0, f.result.Batches)
}

func TestEscapeWhileSetupGoesBack(t *testing.T) {
	f := New(triviatest.New(t), quiz.LevelBeginner)
	assert.True(t, f.HandlesEscape())
	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.NotNil(t, cmd)
}

func TestStopKeyWhileRunning(t *testing.T) {
	f := New(triviatest.New(t), quiz.LevelBeginner)
	f.phase = phaseRunning

	_, cmd := f.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	assert.Nil(t, cmd)
	assert.True(t, f.progress.Stopping)
	assert.True(t, strings.Contains(f.View(80, 24), "stopping"))
}

// blockSleeper holds every pause until the run is cancelled.
type blockSleeper struct{}

func (blockSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestStopRightAfterStart(t *testing.T) {
	svc := triviatest.NewWith(t, triviatest.Config("mock"), trivia.Deps{Sleeper: blockSleeper{}})
	f := New(svc, quiz.LevelBeginner)
	setTarget(f, "100")

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, f.cancel)

	// The run goroutine may not have reached the controller yet.
	f.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	assert.True(t, f.progress.Stopping)

	done := make(chan struct{})
	go func() {
		drain(t, f, cmd)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stop before the run started was lost")
	}

	assert.Equal(t, phaseDone, f.phase)
	assert.Equal(t, autofill.ReasonStopped, f.result.Reason)
	assert.LessOrEqual(t, svc.Bank().Count(quiz.LevelBeginner), 10)
	assert.Nil(t, f.cancel)
}
