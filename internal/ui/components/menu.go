package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. The cursor never rests on a
// disabled item; Selected is -1 when every item is disabled.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.seek(0, 1)
	return m
}

// seek returns the first enabled index from from in direction step, or -1.
func (m Menu) seek(from, step int) int {
	for i := from; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// SetDisabled toggles item i. A cursor on a newly disabled item moves to
// the next enabled one, or the previous one at the bottom.
func (m *Menu) SetDisabled(i int, disabled bool) {
	if i < 0 || i >= len(m.Items) {
		return
	}
	m.Items[i].Disabled = disabled
	switch {
	case disabled && m.Selected == i:
		if m.Selected = m.seek(i+1, 1); m.Selected < 0 {
			m.Selected = m.seek(i-1, -1)
		}
	case !disabled && m.Selected < 0:
		m.Selected = i
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		if i := m.seek(m.Selected-1, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.seek(m.Selected+1, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected < 0 {
			break
		}
		if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

// View stacks the items as bordered buttons of the given width.
func (m Menu) View(width int) string {
	rows := make([]string, len(m.Items))
	for i, item := range m.Items {
		rows[i] = button(item.Label, i == m.Selected, item.Disabled, width)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func button(label string, selected, disabled bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	switch {
	case disabled:
		return style.Foreground(theme.TextDim).Render(label)
	case selected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).Render(label)
}
