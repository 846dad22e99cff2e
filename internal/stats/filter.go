package stats

import (
	"strings"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// The 1963 ASCII views only cover this code point range.
const (
	ASCIIFirst   = 32
	ASCIILast    = 93
	OutlierPoint = 32
)

// CharType buckets a code point of the 1963 range.
func CharType(cp int) model.CharType {
	switch {
	case cp >= 65 && cp <= 90:
		return model.CharLatin
	case cp >= 48 && cp <= 57:
		return model.CharDigits
	}
	return model.CharPunctuation
}

// Glyph renders a code point for display. Space is shown as a visible mark.
func Glyph(cp int) string {
	if cp == 32 {
		return "␣"
	}
	return string(rune(cp))
}

// ASCIIFilter selects which frequency bars are shown.
type ASCIIFilter struct {
	Latin         bool
	Digits        bool
	Punctuation   bool
	RemoveOutlier bool
}

// Keep reports whether a code point passes every active predicate.
func (f ASCIIFilter) Keep(cp int) bool {
	if cp < ASCIIFirst || cp > ASCIILast {
		return false
	}
	if f.RemoveOutlier && cp == OutlierPoint {
		return false
	}
	switch CharType(cp) {
	case model.CharLatin:
		return f.Latin
	case model.CharDigits:
		return f.Digits
	default:
		return f.Punctuation
	}
}

// EmojiFilter selects bubbles by category and introduction version.
type EmojiFilter struct {
	Categories map[string]bool
	MaxVersion float64
}

// Keep reports whether an emoji passes the version window and its category
// is selected.
func (f EmojiFilter) Keep(e model.Emoji) bool {
	return e.Version <= f.MaxVersion && f.Categories[e.Category]
}

// ScriptFilter narrows the script list by region and free text.
type ScriptFilter struct {
	// Region is a model.Region value or "all".
	Region string
	Search string
}

// Keep reports whether a script matches the region and the search text.
// Search matches the script name or its example languages.
func (f ScriptFilter) Keep(s model.Script) bool {
	if f.Region != "" && f.Region != "all" && string(s.Region) != f.Region {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Languages), q)
}

// ASCIIFilterFor derives the frequency bar filter from the control state.
func ASCIIFilterFor(state model.ViewState) ASCIIFilter {
	return ASCIIFilter{
		Latin:         state.ShowLatin,
		Digits:        state.ShowDigits,
		Punctuation:   state.ShowPunct,
		RemoveOutlier: state.RemoveOutlier,
	}
}

// EmojiFilterFor derives the bubble filter from the control state.
func EmojiFilterFor(state model.ViewState) EmojiFilter {
	return EmojiFilter{Categories: state.EmojiCategories, MaxVersion: state.EmojiVersion}
}

// ScriptFilterFor derives the script list filter from the control state.
func ScriptFilterFor(state model.ViewState) ScriptFilter {
	return ScriptFilter{Region: state.ScriptRegion, Search: state.ScriptSearch}
}
