// Package classify assigns regions, display categories and map highlights to
// scripts using ordered keyword tables.
package classify

import (
	"strings"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Rule maps any of its keywords to a result. Rules are evaluated in order and
// the first rule with a keyword contained in the input wins.
type Rule[T any] struct {
	Keywords []string
	Result   T
}

// Match returns the result of the first matching rule.
func Match[T any](rules []Rule[T], text string) (T, bool) {
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Result, true
			}
		}
	}
	var zero T
	return zero, false
}

// RegionRules is evaluated against lower-cased geography text.
var RegionRules = []Rule[model.Region]{
	{Keywords: []string{"historic", "ancient"}, Result: model.RegionHistoric},
	{Keywords: []string{
		"china", "japan", "korea", "india", "asia", "thai", "vietnam", "cambodia",
		"myanmar", "laos", "tibet", "nepal", "bangladesh", "sri lanka", "pakistan",
		"afghanistan", "indonesia", "malaysia", "philippines", "mongolia",
	}, Result: model.RegionAsia},
	{Keywords: []string{
		"europe", "russia", "greece", "german", "georgia", "armenia", "ukraine",
		"bulgaria", "serbia", "scandinavia", "ireland", "uk", "british", "hungary",
		"albania", "cyprus",
	}, Result: model.RegionEurope},
	{Keywords: []string{
		"africa", "egypt", "ethiop", "nigeria", "liberia", "sierra leone", "cameroon",
		"chad", "sudan", "morocco", "algeria", "libya", "mali", "niger", "somalia",
		"eritrea",
	}, Result: model.RegionAfrica},
	{Keywords: []string{"america", "canada", "cherokee", "united states", "oklahoma", "alaska"}, Result: model.RegionAmericas},
	{Keywords: []string{
		"middle east", "iran", "iraq", "syria", "israel", "jordan", "saudi", "yemen",
		"turkey", "maldives",
	}, Result: model.RegionAsia},
}

// CategoryRules is evaluated against the lower-cased script name.
var CategoryRules = []Rule[model.Category]{
	{Keywords: []string{"han", "cjk", "chinese"}, Result: model.CategoryCJK},
	{Keywords: []string{"hangul", "korean"}, Result: model.CategoryEastAsian},
	{Keywords: []string{"hiragana", "katakana", "japanese"}, Result: model.CategoryEastAsian},
	{Keywords: []string{"latin", "cyrillic", "greek", "georgian", "armenian"}, Result: model.CategoryLatinEuropean},
	{Keywords: []string{"arabic", "hebrew", "syriac"}, Result: model.CategoryMiddleEastern},
	{Keywords: []string{
		"devanagari", "bengali", "tamil", "telugu", "kannada", "malayalam",
		"gujarati", "oriya", "gurmukhi", "thai", "tibetan",
	}, Result: model.CategorySouthAsian},
	{Keywords: []string{"symbol", "emoji", "braille", "musical"}, Result: model.CategorySymbolsEmoji},
	{Keywords: []string{"hieroglyph", "cuneiform", "linear", "gothic", "runic", "ogham", "old"}, Result: model.CategoryHistoric},
}

// Region classifies free-text geography. No match yields worldwide.
func Region(geography string) model.Region {
	if r, ok := Match(RegionRules, strings.ToLower(geography)); ok {
		return r
	}
	return model.RegionWorldwide
}

// Category classifies a script by name. No match yields Other.
func Category(scriptName string) model.Category {
	if c, ok := Match(CategoryRules, strings.ToLower(scriptName)); ok {
		return c
	}
	return model.CategoryOther
}

// Annotate returns a copy of scripts with Region, Category and Percentage set.
// Percentages are relative to the sum of positive character counts.
func Annotate(scripts []model.Script) []model.Script {
	total := 0
	for _, s := range scripts {
		if s.CharCount > 0 {
			total += s.CharCount
		}
	}
	out := make([]model.Script, len(scripts))
	for i, s := range scripts {
		s.Region = Region(s.Geography)
		s.Category = Category(s.Name)
		s.Percentage = 0
		if total > 0 && s.CharCount > 0 {
			s.Percentage = 100 * float64(s.CharCount) / float64(total)
		}
		out[i] = s
	}
	return out
}
