// Package parse turns the raw data assets into typed records.
//
// Every function here is total: malformed rows degrade field by field to
// documented fallback values and nothing returns an error.
package parse

import (
	"strings"
)

// Record maps a trimmed header name to a trimmed field value.
type Record map[string]string

// Get returns the field value or "" when the header is absent.
func (r Record) Get(name string) string {
	return r[name]
}

// SplitFunc splits one line into raw fields.
type SplitFunc func(line string) []string

// SplitNaive splits on every comma.
func SplitNaive(line string) []string {
	return strings.Split(line, ",")
}

// SplitQuoted splits on commas outside double-quoted literals. Quote
// characters toggle the literal mode and are dropped from the output.
func SplitQuoted(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// Records parses delimited text with a header line. Whitespace-only lines are
// skipped. Missing trailing fields resolve to "" and extra fields are dropped.
func Records(text string, split SplitFunc) []Record {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}
	rawHeaders := split(lines[0])
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = cleanField(h)
	}

	var out []Record
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := split(line)
		row := make(Record, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = cleanField(values[i])
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

func cleanField(s string) string {
	return strings.TrimSpace(s)
}
