// Package charindex maps code point hex keys to character metadata.
package charindex

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Info is the stored metadata for one code point.
type Info struct {
	Name     string
	Category string
	Decimal  string
}

// DisplayName returns the name used when rendering the character.
func (i Info) DisplayName() string {
	switch {
	case i.Name == "":
		return "Unknown"
	case strings.HasPrefix(i.Name, "CJK UNIFIED IDEOGRAPH-"), strings.HasPrefix(i.Name, "<"):
		return "CJK Unified Ideograph"
	}
	return i.Name
}

// Index is an immutable lookup from normalized hex key to metadata.
type Index struct {
	entries map[string]Info
}

// Build indexes the metadata rows. Rows without a code value are skipped and
// later rows replace earlier ones with the same key.
func Build(chars []model.UnicodeChar) *Index {
	idx := &Index{entries: make(map[string]Info, len(chars))}
	for _, c := range chars {
		if c.CodeValue == "" {
			continue
		}
		idx.entries[NormalizeKey(c.CodeValue)] = Info{
			Name:     c.Name,
			Category: c.GeneralCategory,
			Decimal:  c.DecimalDigit,
		}
	}
	return idx
}

// Lookup finds the metadata for a hex key such as "41" or "1f600".
func (idx *Index) Lookup(hex string) (Info, bool) {
	if idx == nil {
		return Info{}, false
	}
	info, ok := idx.entries[NormalizeKey(hex)]
	return info, ok
}

// LookupCode finds the metadata for a code point.
func (idx *Index) LookupCode(cp int) (Info, bool) {
	return idx.Lookup(HexKey(cp))
}

// Len reports the number of distinct keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// NormalizeKey upper-cases and left-pads a hex key to at least 4 digits.
func NormalizeKey(hex string) string {
	key := strings.ToUpper(strings.TrimSpace(hex))
	if len(key) < 4 {
		key = strings.Repeat("0", 4-len(key)) + key
	}
	return key
}

// HexKey formats a code point as an index key.
func HexKey(cp int) string {
	return fmt.Sprintf("%04X", cp)
}

var categoryNames = map[string]string{
	"Lu": "Letter, uppercase",
	"Ll": "Letter, lowercase",
	"Lt": "Letter, titlecase",
	"Lm": "Letter, modifier",
	"Lo": "Letter, other",
	"Mn": "Mark, nonspacing",
	"Mc": "Mark, spacing combining",
	"Me": "Mark, enclosing",
	"Nd": "Number, decimal digit",
	"Nl": "Number, letter",
	"No": "Number, other",
	"Pc": "Punctuation, connector",
	"Pd": "Punctuation, dash",
	"Ps": "Punctuation, open",
	"Pe": "Punctuation, close",
	"Pi": "Punctuation, initial quote",
	"Pf": "Punctuation, final quote",
	"Po": "Punctuation, other",
	"Sm": "Symbol, math",
	"Sc": "Symbol, currency",
	"Sk": "Symbol, modifier",
	"So": "Symbol, other",
	"Zs": "Separator, space",
	"Zl": "Separator, line",
	"Zp": "Separator, paragraph",
	"Cc": "Other, control",
	"Cf": "Other, format",
	"Cs": "Other, surrogate",
	"Co": "Other, private use",
	"Cn": "Other, not assigned",
}

// CategoryName expands a general category code. Unknown codes are returned as is.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}
