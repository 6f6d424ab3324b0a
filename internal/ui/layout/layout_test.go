package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderContainsParts(t *testing.T) {
	out := RenderHeader("Review", "gemini · 42 saved", 100)
	for _, want := range []string{"Quizbank", "Review", "42 saved"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooterHints(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}, 80)
	for _, want := range []string{"Enter", "Select", "Esc", "Back"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}

func TestRenderHeaderDropsStatusWhenNarrow(t *testing.T) {
	out := RenderHeader("A very long screen title for a narrow bar", "openrouter · 12345 saved", 50)
	if strings.Contains(out, "12345") {
		t.Error("status should be dropped when it does not fit")
	}
	if !strings.Contains(out, "Quizbank") {
		t.Error("app name should always be shown")
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit the application right now"},
	}
	out := RenderFooter(hints, 40)
	if !strings.Contains(out, "Select") {
		t.Error("first hint should fit")
	}
	if strings.Contains(out, "application") {
		t.Error("overflowing hint should be dropped")
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter(nil, 80)
	out := RenderFrame(header, "body", footer, 80, 30)
	if got := strings.Count(out, "\n") + 1; got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}
