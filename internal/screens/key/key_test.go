package key

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/trivia/triviatest"
)

func typeText(k *KeyScreen, s string) {
	for _, r := range s {
		k.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSaveKey(t *testing.T) {
	svc := triviatest.New(t)
	k := New(svc)

	typeText(k, "  sk-test-123456  ")
	_, cmd := k.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	stored, err := svc.Bank().Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123456", stored)
	assert.Contains(t, k.View(80, 24), "sk-t******3456")
}

func TestEmptyKeyRejected(t *testing.T) {
	k := New(triviatest.New(t))
	_, cmd := k.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, strings.Contains(k.View(80, 24), "The key is empty."))
}

func TestClearKey(t *testing.T) {
	svc := triviatest.New(t)
	require.NoError(t, svc.Bank().SetCredential(context.Background(), "sk-existing-key"))

	k := New(svc)
	assert.Len(t, k.KeyHints(), 3)

	_, cmd := k.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)

	stored, err := svc.Bank().Credential(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}
