package parse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Fallbacks applied when a field is present but does not parse.
const (
	DefaultScriptVersion = 1.0
	DefaultScriptYear    = 1991
	DefaultEmojiVersion  = 0.6
)

// Column names of the upstream tables.
const (
	colCodeValue    = "Code value"
	colCharName     = "Character name"
	colGeneralCat   = "General category"
	colDecimalDigit = "Decimal digit value"

	colScript    = "script"
	colCharCount = "characters_in_script_today"
	colVersion   = "unicode_version"
	colYear      = "year_first_encoded"
	colGeography = "geography_summary"
	colLanguages = "languages_examples"
	colISO       = "iso_code"

	colEmoji    = "emoji"
	colName     = "name"
	colCategory = "category"
	colSubgroup = "subgroup"
	colEmojiVer = "version"
	colUseCount = "count"
)

// Frequencies decodes ascii_freq.json. A malformed document yields nil.
func Frequencies(text string) []model.CharFrequency {
	var out []model.CharFrequency
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil
	}
	return out
}

// UnicodeChars decodes unicode-characters_info.csv.
func UnicodeChars(text string) []model.UnicodeChar {
	rows := Records(text, SplitNaive)
	out := make([]model.UnicodeChar, 0, len(rows))
	for _, row := range rows {
		code := row.Get(colCodeValue)
		out = append(out, model.UnicodeChar{
			CodeValue:       code,
			Name:            row.Get(colCharName),
			GeneralCategory: row.Get(colGeneralCat),
			DecimalDigit:    row.Get(colDecimalDigit),
			CodePoint:       Hex(code),
		})
	}
	return out
}

// Scripts decodes unicode_language.csv, which quotes fields containing commas.
func Scripts(text string) []model.Script {
	rows := Records(text, SplitQuoted)
	out := make([]model.Script, 0, len(rows))
	for _, row := range rows {
		s := model.Script{
			Name:           row.Get(colScript),
			Geography:      row.Get(colGeography),
			Languages:      row.Get(colLanguages),
			ISOCode:        row.Get(colISO),
			UnicodeVersion: DefaultScriptVersion,
		}
		if v := row.Get(colCharCount); v != "" {
			if f, ok := leadingFloat(v); ok && f > 0 {
				s.CharCount = int(f)
			}
		}
		if v := row.Get(colVersion); v != "" {
			if f, ok := leadingFloat(v); ok && f != 0 {
				s.UnicodeVersion = f
			}
		}
		if v := row.Get(colYear); v != "" {
			s.YearFirstEncoded = DefaultScriptYear
			if n, ok := leadingInt(v, 10); ok && n != 0 {
				s.YearFirstEncoded = n
			}
		}
		out = append(out, s)
	}
	return out
}

// Emoji decodes one of the emoji usage tables.
func Emoji(text string) []model.Emoji {
	rows := Records(text, SplitNaive)
	out := make([]model.Emoji, 0, len(rows))
	for _, row := range rows {
		e := model.Emoji{
			Glyph:    row.Get(colEmoji),
			Name:     row.Get(colName),
			Category: row.Get(colCategory),
			Subgroup: row.Get(colSubgroup),
			Version:  DefaultEmojiVersion,
		}
		if n, ok := leadingInt(row.Get(colUseCount), 10); ok && n > 0 {
			e.Count = n
		}
		if f, ok := leadingFloat(row.Get(colEmojiVer)); ok && f != 0 {
			e.Version = f
		}
		out = append(out, e)
	}
	return out
}

// Hex parses a hexadecimal code value. Empty or invalid input yields 0.
func Hex(s string) int {
	n, ok := leadingInt(s, 16)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// leadingInt parses the longest valid integer prefix, after optional
// whitespace and sign, the way lenient upstream tooling reads these tables.
func leadingInt(s string, base int) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if base == 16 && len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

// leadingFloat parses the longest valid decimal prefix such as "15.1" from
// "15.1 (2023)".
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end], 10) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end], 10) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp], 10) {
			for exp < len(s) && isDigit(s[exp], 10) {
				exp++
			}
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isDigit(b byte, base int) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case base == 16 && b >= 'a' && b <= 'f':
		return true
	case base == 16 && b >= 'A' && b <= 'F':
		return true
	}
	return false
}
