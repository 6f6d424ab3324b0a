package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

// OptionLabels are the display letters for the four choices.
var OptionLabels = []string{"A", "B", "C", "D"}

// Choices renders a multiple-choice option list. It only moves the cursor;
// scoring is owned by the caller, which calls Reveal once the answer is
// known.
type Choices struct {
	Options []string
	Cursor  int

	revealed bool
	chosen   int
	correct  int
}

func NewChoices(options []string) Choices {
	return Choices{Options: options, chosen: -1, correct: -1}
}

// Update moves the cursor with up/down.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if c.revealed {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	}
	return c, nil
}

// Reveal marks chosen and correct for the feedback rendering.
func (c *Choices) Reveal(chosen, correct int) {
	c.revealed = true
	c.chosen = chosen
	c.correct = correct
}

func (c Choices) Revealed() bool { return c.revealed }

// View renders the options, colored by outcome once revealed.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.revealed && i == c.correct:
			style = theme.Correct
			line += "  ✓"
		case c.revealed && i == c.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
