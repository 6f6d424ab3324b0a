package quiz

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvColumns is the fixed export header.
var csvColumns = []string{
	"level", "question",
	"option1", "option2", "option3", "option4",
	"correct_idx", "explanation", "advanced_explanation",
	"wiki_link", "is_japan",
}

// CSVHeader returns the header line written by WriteCSV.
func CSVHeader() string {
	return strings.Join(csvColumns, ",")
}

// WriteCSV writes items as delimited text with the fixed 11-column header.
// Free-text fields are double-quoted with embedded quotes doubled.
func WriteCSV(w io.Writer, items []QuizItem) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(CSVHeader() + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		fields := []string{
			string(it.Level),
			quoteField(it.Question),
			quoteField(it.Option1),
			quoteField(it.Option2),
			quoteField(it.Option3),
			quoteField(it.Option4),
			strconv.Itoa(it.CorrectIdx),
			quoteField(it.Explanation),
			quoteField(it.AdvancedExplanation),
			quoteField(it.WikiLink),
			strconv.FormatBool(it.IsJapan),
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return fmt.Errorf("write row %s: %w", it.ID, err)
		}
	}
	return bw.Flush()
}

// ReadCSV parses delimited text produced by WriteCSV (or written by hand).
//
// Parsing is a plain split on commas per line: quoted fields that contain
// commas or line breaks are NOT supported and will shift columns. Rows with
// fewer than 11 columns, an unknown level, or a non-numeric correct_idx are
// skipped. A header row (first column "level") is ignored. Each parsed row
// gets a fresh ID.
func ReadCSV(r io.Reader) ([]QuizItem, error) {
	var items []QuizItem
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < len(csvColumns) {
			continue
		}
		for i := range cols {
			cols[i] = unquoteField(cols[i])
		}
		if strings.EqualFold(cols[0], "level") {
			continue
		}
		item, ok := parseRow(cols)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return items, fmt.Errorf("read csv: %w", err)
	}
	return items, nil
}

func parseRow(cols []string) (QuizItem, bool) {
	level, err := ParseLevel(cols[0])
	if err != nil {
		return QuizItem{}, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(cols[6]))
	if err != nil {
		return QuizItem{}, false
	}
	item := QuizItem{
		ID:                  NewID(),
		Level:               level,
		Question:            cols[1],
		Option1:             cols[2],
		Option2:             cols[3],
		Option3:             cols[4],
		Option4:             cols[5],
		CorrectIdx:          idx,
		Explanation:         cols[7],
		AdvancedExplanation: cols[8],
		WikiLink:            cols[9],
		IsJapan:             parseBool(cols[10]),
	}
	if item.Validate() != nil {
		return QuizItem{}, false
	}
	return item, true
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func unquoteField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
