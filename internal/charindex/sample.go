package charindex

import (
	"math/rand"
	"strings"
)

// Range is an inclusive code point range.
type Range struct {
	Lo, Hi int
}

type scriptRanges struct {
	name   string
	ranges []Range
}

// knownRanges is ordered; fuzzy matching returns the first hit.
var knownRanges = []scriptRanges{
	{"Han", []Range{{0x4E00, 0x9FFF}, {0x3400, 0x4DBF}}},
	{"Hangul", []Range{{0xAC00, 0xD7AF}, {0x1100, 0x11FF}}},
	{"Latin", []Range{{0x0041, 0x007A}, {0x00C0, 0x00FF}, {0x0100, 0x017F}}},
	{"Arabic", []Range{{0x0600, 0x06FF}, {0x0750, 0x077F}}},
	{"Cyrillic", []Range{{0x0400, 0x04FF}}},
	{"Greek", []Range{{0x0370, 0x03FF}}},
	{"Hebrew", []Range{{0x0590, 0x05FF}}},
	{"Devanagari", []Range{{0x0900, 0x097F}}},
	{"Bengali", []Range{{0x0980, 0x09FF}}},
	{"Tamil", []Range{{0x0B80, 0x0BFF}}},
	{"Thai", []Range{{0x0E00, 0x0E7F}}},
	{"Hiragana", []Range{{0x3040, 0x309F}}},
	{"Katakana", []Range{{0x30A0, 0x30FF}}},
	{"Georgian", []Range{{0x10A0, 0x10FF}}},
	{"Armenian", []Range{{0x0530, 0x058F}}},
	{"Ethiopic", []Range{{0x1200, 0x137F}}},
	{"Khmer", []Range{{0x1780, 0x17FF}}},
	{"Myanmar", []Range{{0x1000, 0x109F}}},
	{"Sinhala", []Range{{0x0D80, 0x0DFF}}},
	{"Telugu", []Range{{0x0C00, 0x0C7F}}},
	{"Kannada", []Range{{0x0C80, 0x0CFF}}},
	{"Malayalam", []Range{{0x0D00, 0x0D7F}}},
	{"Gujarati", []Range{{0x0A80, 0x0AFF}}},
	{"Gurmukhi", []Range{{0x0A00, 0x0A7F}}},
	{"Oriya (Odia)", []Range{{0x0B00, 0x0B7F}}},
	{"Tibetan", []Range{{0x0F00, 0x0FFF}}},
	{"Mongolian", []Range{{0x1800, 0x18AF}}},
	{"Lao", []Range{{0x0E80, 0x0EFF}}},
	{"Cherokee", []Range{{0x13A0, 0x13FF}}},
	{"Runic", []Range{{0x16A0, 0x16FF}}},
	{"Ogham", []Range{{0x1680, 0x169F}}},
	{"Braille Patterns", []Range{{0x2800, 0x28FF}}},
	{"Bopomofo", []Range{{0x3100, 0x312F}}},
}

// PlaceholderNote accompanies samples for scripts without a known range.
const PlaceholderNote = "Character sample cannot be displayed (see note above)"

// ScriptRanges resolves the code point ranges for a script name: exact match
// first, then a case-insensitive substring match in either direction. Unknown
// scripts yield nil.
func ScriptRanges(name string) []Range {
	for _, s := range knownRanges {
		if s.name == name {
			return s.ranges
		}
	}
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	for _, s := range knownRanges {
		key := strings.ToLower(s.name)
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return s.ranges
		}
	}
	return nil
}

// Sample is one character drawn from a script.
type Sample struct {
	Glyph     string
	CodePoint int
	Hex       string
	Info      Info
	Found     bool
	Note      string
}

// Samples draws n random characters from the script's ranges and attaches
// metadata from idx. Scripts without a known range yield "?" placeholders.
func Samples(rnd *rand.Rand, idx *Index, name string, n int) []Sample {
	ranges := ScriptRanges(name)
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		if len(ranges) == 0 {
			out = append(out, Sample{Glyph: "?", Note: PlaceholderNote})
			continue
		}
		r := ranges[rnd.Intn(len(ranges))]
		cp := r.Lo + rnd.Intn(r.Hi-r.Lo+1)
		key := HexKey(cp)
		info, ok := idx.Lookup(key)
		out = append(out, Sample{
			Glyph:     string(rune(cp)),
			CodePoint: cp,
			Hex:       key,
			Info:      info,
			Found:     ok,
		})
	}
	return out
}
