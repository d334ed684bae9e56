package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and strips separators.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// CamelToSnake converts a CamelCase type name to snake_case. An underscore
// goes before an uppercase letter that follows a lowercase letter or digit,
// or that starts a new word after an acronym:
//   - "TimeSeries" -> "time_series"
//   - "NWBFile" -> "nwb_file"
//   - "IZeroClampSeries" -> "i_zero_clamp_series"
//
// Existing underscores are kept as they are.
func CamelToSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder

	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && isASCIIUpper(r) {
			prev := runes[i-1]
			afterLower := isASCIILower(prev) || isASCIIDigit(prev)
			beforeLower := i+1 < len(runes) && isASCIILower(runes[i+1])

			if afterLower || beforeLower {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// CamelCase joins the words of s with each word's first letter uppercased.
// Non-alphanumeric runes separate words:
//   - "TimeSeries__data" -> "TimeSeriesData"
//   - "core.nwb.base" -> "CoreNwbBase"
func CamelCase(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	upper := true

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}

		b.WriteRune(r)
	}

	return b.String()
}

// tokenizeCamelCase splits a CamelCase or snake_case string into tokens.
// Examples:
//   - "TimeSeries" -> ["Time", "Series"]
//   - "NWBFile" -> ["NWB", "File"]
//   - "time_series" -> ["time", "series"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "orderID" -> split before 'I'
	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> split before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
