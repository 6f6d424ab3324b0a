package components

import (
	"strconv"
	"strings"
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused bubbles text input. Numeric inputs drop any
// keystroke that is not a digit.
type TextInput struct {
	Model   textinput.Model
	numeric bool
}

// NewTextInput creates a focused input. A positive maxLen caps the length.
func NewTextInput(placeholder string, numeric bool, maxLen int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Prompt = "› "
	if maxLen > 0 {
		m.CharLimit = maxLen
	}
	m.Focus()
	return TextInput{Model: m, numeric: numeric}
}

// NewSecretInput masks what is typed, for API keys.
func NewSecretInput(placeholder string) TextInput {
	t := NewTextInput(placeholder, false, 0)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && t.numeric && k.Text != "" {
		if strings.IndexFunc(k.Text, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string { return t.Model.View() }

func (t TextInput) Value() string { return t.Model.Value() }

// Int parses the value of a numeric input.
func (t TextInput) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}
