// Package model defines shared data structures.
package model

// CharFrequency is one row of ascii_freq.json.
type CharFrequency struct {
	CodePoint int     `json:"Char"`
	Frequency float64 `json:"Freq"`
}

// UnicodeChar is one row of the Unicode character metadata table.
type UnicodeChar struct {
	CodeValue       string
	Name            string
	GeneralCategory string
	DecimalDigit    string
	// CodePoint is CodeValue parsed as hex, 0 when it does not parse.
	CodePoint int
}

// Script describes a writing system and where it is used.
type Script struct {
	Name             string
	CharCount        int
	UnicodeVersion   float64
	YearFirstEncoded int
	Geography        string
	Languages        string
	ISOCode          string

	// Filled by the classifier.
	Region     Region
	Category   Category
	Percentage float64
}

// Emoji is one row of an emoji usage table.
type Emoji struct {
	Glyph    string
	Name     string
	Category string
	Subgroup string
	Version  float64
	Count    int
}

// UnicodeVersion is one release of the Unicode standard.
type UnicodeVersion struct {
	Version    string
	Year       int
	TotalChars int
}

// TimelineEvent is a milestone on the road to Unicode.
type TimelineEvent struct {
	Year  int
	Title string
	Text  string
}

// Region is the coarse geographic bucket of a script.
type Region string

// Regions, in classification order.
const (
	RegionHistoric  Region = "historic"
	RegionAsia      Region = "asia"
	RegionEurope    Region = "europe"
	RegionAfrica    Region = "africa"
	RegionAmericas  Region = "americas"
	RegionWorldwide Region = "worldwide"
)

// Regions lists every region in display order.
var Regions = []Region{RegionHistoric, RegionAsia, RegionEurope, RegionAfrica, RegionAmericas, RegionWorldwide}

// Category is the display bucket used for chart colouring and grouping.
type Category string

// Display categories.
const (
	CategoryCJK           Category = "CJK"
	CategoryLatinEuropean Category = "Latin & European"
	CategoryMiddleEastern Category = "Middle Eastern"
	CategorySouthAsian    Category = "South Asian"
	CategoryEastAsian     Category = "East Asian"
	CategorySymbolsEmoji  Category = "Symbols & Emoji"
	CategoryHistoric      Category = "Historic"
	CategoryOther         Category = "Other"
)

// Categories lists every display category in legend order.
var Categories = []Category{
	CategoryCJK,
	CategoryLatinEuropean,
	CategoryMiddleEastern,
	CategorySouthAsian,
	CategoryEastAsian,
	CategorySymbolsEmoji,
	CategoryHistoric,
	CategoryOther,
}

// CategoryColors maps display categories to their chart colour.
var CategoryColors = map[Category]string{
	CategoryCJK:           "#e06b9a",
	CategoryLatinEuropean: "#72c9cd",
	CategoryMiddleEastern: "#8fa55d",
	CategorySouthAsian:    "#d4a574",
	CategoryEastAsian:     "#7aa2f7",
	CategorySymbolsEmoji:  "#bb9af7",
	CategoryHistoric:      "#9b9b9b",
	CategoryOther:         "#6fcf97",
}

// EmojiCategories lists the nine fixed emoji categories.
var EmojiCategories = []string{
	"Smileys & Emotion",
	"People & Body",
	"Animals & Nature",
	"Food & Drink",
	"Travel & Places",
	"Activities",
	"Objects",
	"Symbols",
	"Flags",
}

// EmojiCategoryColors maps emoji categories to their bubble colour.
var EmojiCategoryColors = map[string]string{
	"Smileys & Emotion": "#72c9cd",
	"People & Body":     "#e06b9a",
	"Animals & Nature":  "#8fa55d",
	"Food & Drink":      "#d4a574",
	"Travel & Places":   "#7aa2f7",
	"Activities":        "#bb9af7",
	"Objects":           "#9b9b9b",
	"Symbols":           "#ff6b6b",
	"Flags":             "#f4d03f",
}

// EmojiRegion selects one of the three emoji usage tables.
type EmojiRegion string

// Emoji tables.
const (
	EmojiAll EmojiRegion = "all"
	EmojiUS  EmojiRegion = "us"
	EmojiUK  EmojiRegion = "uk"
)

// CharType buckets a 1963 ASCII code point.
type CharType string

// ASCII character types.
const (
	CharLatin       CharType = "latin"
	CharDigits      CharType = "digits"
	CharPunctuation CharType = "punctuation"
)

// SortMode orders the ASCII bars.
type SortMode string

// Sort modes.
const (
	SortByCode      SortMode = "code"
	SortByFrequency SortMode = "frequency"
)

// BreakdownView selects the script breakdown chart.
type BreakdownView string

// Breakdown views.
const (
	ViewTreemap  BreakdownView = "treemap"
	ViewBar      BreakdownView = "bar"
	ViewSunburst BreakdownView = "sunburst"
)

// ViewState holds every control selection that drives the derived views.
// Views are recomputed from the dataset and this value; nothing else is read.
type ViewState struct {
	// ASCII chart.
	Sort          SortMode
	ShowLatin     bool
	ShowDigits    bool
	ShowPunct     bool
	RemoveOutlier bool

	// Emoji bubbles.
	EmojiRegion     EmojiRegion
	EmojiVersion    float64
	EmojiCategories map[string]bool

	// Script universe.
	ScriptRegion string
	ScriptSearch string

	// Sankey.
	SankeyYear int

	// Breakdown.
	Breakdown BreakdownView
	MinChars  int
}

// DefaultViewState returns the initial control selections.
func DefaultViewState() ViewState {
	cats := make(map[string]bool, len(EmojiCategories))
	for _, c := range EmojiCategories {
		cats[c] = true
	}
	return ViewState{
		Sort:            SortByCode,
		ShowLatin:       true,
		ShowDigits:      true,
		ShowPunct:       true,
		EmojiRegion:     EmojiAll,
		EmojiVersion:    18,
		EmojiCategories: cats,
		ScriptRegion:    "all",
		SankeyYear:      2025,
		Breakdown:       ViewTreemap,
		MinChars:        100,
	}
}
