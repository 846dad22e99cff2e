package stats

import "testing"

func TestFormatTableAlignsWideGlyphs(t *testing.T) {
	headers := []string{"Glyph", "Name", "Uses"}
	rows := [][]string{
		{"😂", "face with tears of joy", "3,207"},
		{"漢", "CJK Unified Ideograph", "12"},
		{"A"},
	}
	lines := formatTable(headers, rows, map[int]bool{2: true})
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	want := []string{
		"Glyph Name                    Uses",
		"😂    face with tears of joy 3,207",
		"漢    CJK Unified Ideograph     12",
		"A                                 ",
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("line %d: expected %q, got %q", i, line, lines[i])
		}
	}
	for i, line := range lines {
		if displayWidth(line) != displayWidth(lines[0]) {
			t.Fatalf("line %d has width %d, want %d", i, displayWidth(line), displayWidth(lines[0]))
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %q", lines)
	}
}
