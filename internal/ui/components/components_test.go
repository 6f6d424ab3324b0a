package components

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "one", Action: action("one"), Disabled: true},
		{Label: "two", Action: action("two")},
		{Label: "three", Action: action("three"), Disabled: true},
		{Label: "four", Action: action("four")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down at bottom = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("up past disabled = %d, want 1", m.Selected)
	}

	m.Update(key("enter"))
	if fired != "two" {
		t.Errorf("enter fired %q, want two", fired)
	}
}

func TestMenuSetDisabledMovesCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.SetDisabled(0, true)
	if m.Selected != 1 {
		t.Errorf("selection = %d, want 1", m.Selected)
	}
	m.SetDisabled(0, false)
	if m.Selected != 1 {
		t.Errorf("re-enabling must not move the cursor, got %d", m.Selected)
	}
}

func TestChoicesReveal(t *testing.T) {
	c := NewChoices([]string{"Kyoto", "Osaka", "Nara", "Kamakura"})
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	if c.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2", c.Cursor)
	}

	c.Reveal(0, 2)
	c, _ = c.Update(key("down"))
	if c.Cursor != 2 {
		t.Error("cursor must not move after reveal")
	}

	view := c.View()
	if !strings.Contains(view, "C)  Nara  ✓") {
		t.Errorf("correct option not marked:\n%s", view)
	}
	if !strings.Contains(view, "A)  Kyoto  ✗") {
		t.Errorf("chosen option not marked:\n%s", view)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		cur, target int
		want        float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{15, 10, 1},
		{3, 0, 1},
	}
	for _, tt := range tests {
		if got := Ratio(tt.cur, tt.target); got != tt.want {
			t.Errorf("Ratio(%d, %d) = %v, want %v", tt.cur, tt.target, got, tt.want)
		}
	}
}

func TestNumericInputFiltersLetters(t *testing.T) {
	in := NewTextInput("", true, 4)
	for _, s := range []string{"1", "x", "2"} {
		in, _ = in.Update(key(s))
	}
	if in.Value() != "12" {
		t.Errorf("value = %q, want 12", in.Value())
	}
	n, err := in.Int()
	if err != nil || n != 12 {
		t.Errorf("Int = %d, %v", n, err)
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		cur, target, width int
		filled             int
	}{
		{0, 100, 30, 0},
		{50, 100, 30, 11},
		{150, 100, 30, 21},
	}
	for _, tt := range tests {
		got := Gauge(tt.cur, tt.target, tt.width)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("Gauge(%d, %d, %d) filled %d cells, want %d", tt.cur, tt.target, tt.width, n, tt.filled)
		}
		if !strings.Contains(got, fmt.Sprintf("%d/%d", tt.cur, tt.target)) {
			t.Errorf("Gauge(%d, %d) missing count label", tt.cur, tt.target)
		}
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "PLAY"}, {Label: "QUIT"}})
	view := m.View(20)
	if !strings.Contains(view, "▸ PLAY") {
		t.Errorf("selected item not marked:\n%s", view)
	}
	if strings.Contains(view, "▸ QUIT") {
		t.Errorf("unselected item marked:\n%s", view)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ frame, want int }{
		{10, 20},
		{50, 44},
		{200, 64},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.frame); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}
