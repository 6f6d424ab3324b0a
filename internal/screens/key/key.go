// Package key lets the user enter, replace or clear the stored API key.
package key

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/router"
	"github.com/abhisek/quizbank/internal/screen"
	"github.com/abhisek/quizbank/internal/trivia"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

type KeyScreen struct {
	svc    *trivia.Service
	input  components.TextInput
	stored string
	errMsg string
}

var _ screen.Screen = (*KeyScreen)(nil)
var _ screen.KeyHintProvider = (*KeyScreen)(nil)

func New(svc *trivia.Service) *KeyScreen {
	k := &KeyScreen{
		svc:   svc,
		input: components.NewSecretInput("paste your API key"),
	}
	k.stored, _ = svc.Bank().Credential(context.Background())
	return k
}

func (k *KeyScreen) Init() tea.Cmd { return k.input.Init() }

func (k *KeyScreen) Title() string { return "API Key" }

func (k *KeyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Save"}}
	if k.stored != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (k *KeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			value := strings.TrimSpace(k.input.Value())
			if value == "" {
				k.errMsg = "The key is empty."
				return k, nil
			}
			return k, k.save(value)
		case "ctrl+d":
			if k.stored == "" {
				return k, nil
			}
			return k, k.save("")
		}
	}

	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return k, cmd
}

// save stores value (empty clears) and returns to the previous screen.
func (k *KeyScreen) save(value string) tea.Cmd {
	if err := k.svc.Bank().SetCredential(context.Background(), value); err != nil {
		k.errMsg = trivia.UserMessage(err)
		return nil
	}
	k.stored = value
	return router.Back()
}

func (k *KeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Generative AI API key"))
	b.WriteString("\n\n")
	status := "No key stored."
	if k.stored != "" {
		status = "Stored key: " + trivia.MaskKey(k.stored)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(status))
	b.WriteString("\n\n")
	b.WriteString(k.input.View())
	if k.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(k.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("The key is saved with your questions on this machine."))

	return components.CabinetFrame(components.Card(b.String(), cw), width, height)
}
