package quiz

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func sampleItem(level Level, question string) QuizItem {
	return QuizItem{
		ID:                  NewID(),
		Level:               level,
		Question:            question,
		Option1:             "Kyoto",
		Option2:             "Osaka",
		Option3:             "Nara",
		Option4:             "Kamakura",
		CorrectIdx:          2,
		Explanation:         "Nara was the capital from 710 to 784.",
		AdvancedExplanation: "",
		WikiLink:            "https://en.wikipedia.org/wiki/Nara_period",
		IsJapan:             true,
	}
}

func TestIsDuplicate(t *testing.T) {
	existing := []QuizItem{
		sampleItem(LevelBeginner, "Which city was the capital in 710?"),
		sampleItem(LevelBeginner, "  Who painted the Mona Lisa?  "),
	}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact", "Which city was the capital in 710?", true},
		{"surrounding whitespace", "\tWho painted the Mona Lisa?\n", true},
		{"case differs", "which city was the capital in 710?", false},
		{"different text", "Who wrote Hamlet?", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.text, existing); got != tt.want {
				t.Errorf("IsDuplicate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	orig := slices.Clone(in)

	out := Shuffle(in)
	if !slices.Equal(in, orig) {
		t.Fatalf("input mutated: %v", in)
	}
	if len(out) != len(in) {
		t.Fatalf("length changed: %d vs %d", len(out), len(in))
	}
	sorted := slices.Clone(out)
	slices.Sort(sorted)
	if !slices.Equal(sorted, orig) {
		t.Fatalf("not a permutation: %v", out)
	}
}

func TestShuffle_EventuallyReorders(t *testing.T) {
	in := []int{1, 2, 3}
	for range 1000 {
		if !slices.Equal(Shuffle(in), in) {
			return
		}
	}
	t.Fatal("1000 shuffles never changed the order")
}

func TestShuffleWith_Deterministic(t *testing.T) {
	// intn always returning 0 moves the head to the back one step at a time.
	got := ShuffleWith(func(int) int { return 0 }, []string{"a", "b", "c"})
	want := []string{"b", "c", "a"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSample(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	if got := Sample(in, 3); len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got := Sample(in, 10); len(got) != 5 {
		t.Fatalf("expected all 5 items, got %d", len(got))
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewID()
		if len(id) != idLength {
			t.Fatalf("unexpected id length %d: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"beginner", LevelBeginner, false},
		{"  Expert ", LevelExpert, false},
		{"2", LevelIntermediate, false},
		{"legendary", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLevelCycle(t *testing.T) {
	if LevelExpert.Next() != LevelBeginner {
		t.Errorf("expected wrap to beginner")
	}
	if LevelBeginner.Prev() != LevelExpert {
		t.Errorf("expected wrap to expert")
	}
}

func TestValidate(t *testing.T) {
	ok := sampleItem(LevelAdvanced, "Q?")
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.CorrectIdx = 4
	if err := bad.Validate(); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}

	bad = ok
	bad.Question = "   "
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for blank question")
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	items := []QuizItem{
		sampleItem(LevelBeginner, "Which city was the capital in 710?"),
		sampleItem(LevelExpert, "Who painted the Mona Lisa?"),
	}
	items[1].IsJapan = false
	items[1].AdvancedExplanation = "Painted between 1503 and 1519."

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), CSVHeader()+"\n") {
		t.Fatalf("missing header: %q", buf.String())
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		want := items[i]
		want.ID = got[i].ID // ids are reassigned on import
		if got[i] != want {
			t.Errorf("item %d mismatch:\n got  %+v\n want %+v", i, got[i], want)
		}
	}
}

func TestWriteCSV_EscapesQuotes(t *testing.T) {
	it := sampleItem(LevelBeginner, `What does "sayonara" mean?`)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []QuizItem{it}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"What does ""sayonara"" mean?"`) {
		t.Fatalf("quotes not doubled: %s", buf.String())
	}
}

func TestReadCSV_SkipsShortRows(t *testing.T) {
	in := strings.Join([]string{
		`beginner,"Q1","a","b","c","d",0,"e","","https://x",false`,
		`beginner,"Q2","a","b","c","d",1,"e"`,
		`advanced,"Q3","a","b","c","d",3,"e","more","https://y",true`,
	}, "\n")

	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Question != "Q1" || got[1].Question != "Q3" {
		t.Errorf("unexpected questions: %q, %q", got[0].Question, got[1].Question)
	}
	if !got[1].IsJapan || got[1].CorrectIdx != 3 || got[1].Level != LevelAdvanced {
		t.Errorf("row 3 parsed wrong: %+v", got[1])
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Errorf("expected distinct fresh ids")
	}
}

func TestReadCSV_SkipsBadLevelAndIndex(t *testing.T) {
	in := CSVHeader() + "\r\n" +
		`mythic,"Q1","a","b","c","d",0,"e","","",false` + "\r\n" +
		`beginner,"Q2","a","b","c","d",x,"e","","",false` + "\r\n" +
		`beginner,"Q3","a","b","c","d",9,"e","","",false` + "\r\n" +
		"\r\n" +
		`expert,"Q4","a","b","c","d",1,"e","","",false` + "\r\n"

	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Question != "Q4" {
		t.Fatalf("expected only Q4, got %+v", got)
	}
}

func TestReadCSV_HeaderRecognizedByFirstColumn(t *testing.T) {
	row := `beginner,"Q1","a","b","c","d",0,"e","","",false`
	tests := []struct {
		name string
		in   string
	}{
		{"no header", row},
		{"header first", CSVHeader() + "\n" + row},
		{"header after blank line", "\n" + CSVHeader() + "\n" + row},
		{"upper case header", strings.ToUpper(CSVHeader()) + "\n" + row},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].Question != "Q1" {
				t.Fatalf("expected only Q1, got %+v", got)
			}
		})
	}
}
