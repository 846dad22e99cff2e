package charindex

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/glyphscope/internal/model"
)

func TestBuildLastRowWins(t *testing.T) {
	idx := Build([]model.UnicodeChar{
		{CodeValue: "0041", Name: "FIRST", GeneralCategory: "Lu"},
		{CodeValue: "0041", Name: "SECOND", GeneralCategory: "Lu"},
	})
	info, ok := idx.Lookup("0041")
	if !ok {
		t.Fatalf("expected key 0041 to be present")
	}
	if info.Name != "SECOND" {
		t.Fatalf("expected later row to win, got %q", info.Name)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", idx.Len())
	}
}

func TestLookupNormalizesKey(t *testing.T) {
	idx := Build([]model.UnicodeChar{
		{CodeValue: "41", Name: "LATIN CAPITAL LETTER A"},
		{CodeValue: "1f600", Name: "GRINNING FACE"},
		{CodeValue: "", Name: "SKIPPED"},
	})
	if _, ok := idx.Lookup("0041"); !ok {
		t.Fatalf("expected padded key to match")
	}
	if _, ok := idx.Lookup("1F600"); !ok {
		t.Fatalf("expected upper-cased key to match")
	}
	if _, ok := idx.LookupCode(0x41); !ok {
		t.Fatalf("expected code point lookup to match")
	}
	if idx.Len() != 2 {
		t.Fatalf("expected empty code value to be skipped, got %d keys", idx.Len())
	}
	if _, ok := idx.Lookup("FFFF"); ok {
		t.Fatalf("expected absent key to report false")
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"":                           "Unknown",
		"CJK UNIFIED IDEOGRAPH-4E00": "CJK Unified Ideograph",
		"<CJK Ideograph, First>":     "CJK Unified Ideograph",
		"GRINNING FACE":              "GRINNING FACE",
	}
	for name, want := range cases {
		if got := (Info{Name: name}).DisplayName(); got != want {
			t.Fatalf("DisplayName(%q): expected %q, got %q", name, want, got)
		}
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName("Lu"); got != "Letter, uppercase" {
		t.Fatalf("unexpected name for Lu: %q", got)
	}
	if got := CategoryName("Cn"); got != "Other, not assigned" {
		t.Fatalf("unexpected name for Cn: %q", got)
	}
	if got := CategoryName("Xx"); got != "Xx" {
		t.Fatalf("expected unknown code returned as is, got %q", got)
	}
}

func TestScriptRangesFuzzy(t *testing.T) {
	if r := ScriptRanges("Han"); len(r) != 2 {
		t.Fatalf("expected 2 ranges for Han, got %d", len(r))
	}
	if r := ScriptRanges("Oriya"); len(r) != 1 || r[0].Lo != 0x0B00 {
		t.Fatalf("expected Oriya to match Oriya (Odia), got %v", r)
	}
	if r := ScriptRanges("Cherokee syllabary"); len(r) != 1 || r[0].Lo != 0x13A0 {
		t.Fatalf("expected Cherokee prefix match, got %v", r)
	}
	if r := ScriptRanges("greek"); len(r) != 1 || r[0].Lo != 0x0370 {
		t.Fatalf("expected lower-case name to match Greek, got %v", r)
	}
	if r := ScriptRanges("CYRILLIC Extended"); len(r) != 1 || r[0].Lo != 0x0400 {
		t.Fatalf("expected upper-case prefix to match Cyrillic, got %v", r)
	}
	if r := ScriptRanges("Vithkuqi"); r != nil {
		t.Fatalf("expected no ranges, got %v", r)
	}
}

func TestSamples(t *testing.T) {
	idx := Build([]model.UnicodeChar{{CodeValue: "03B1", Name: "GREEK SMALL LETTER ALPHA"}})
	rnd := rand.New(rand.NewSource(1))
	samples := Samples(rnd, idx, "Greek", 3)
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for _, s := range samples {
		if s.CodePoint < 0x0370 || s.CodePoint > 0x03FF {
			t.Fatalf("sample outside Greek range: %X", s.CodePoint)
		}
		if s.Hex != HexKey(s.CodePoint) {
			t.Fatalf("unexpected hex key %q", s.Hex)
		}
	}

	unknown := Samples(rnd, idx, "Vithkuqi", 2)
	for _, s := range unknown {
		if s.Glyph != "?" || s.Note != PlaceholderNote {
			t.Fatalf("expected placeholder sample, got %+v", s)
		}
	}
}
