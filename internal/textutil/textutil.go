// Package textutil provides token-level text utilities for feature extraction.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize extracts word tokens from text (Unicode-aware, punctuation dropped).
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// Span is a token located in its source text. Start and End are rune offsets.
type Span struct {
	Start int
	End   int
	Text  string
}

var spanRe = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\s\p{L}\p{N}_]`)

// TokenizeSpans splits text into words and single punctuation marks,
// keeping their rune offsets.
func TokenizeSpans(text string) []Span {
	locs := spanRe.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	runeOff, byteOff := 0, 0
	for _, loc := range locs {
		runeOff += utf8.RuneCountInString(text[byteOff:loc[0]])
		word := text[loc[0]:loc[1]]
		n := utf8.RuneCountInString(word)
		spans = append(spans, Span{Start: runeOff, End: runeOff + n, Text: word})
		runeOff += n
		byteOff = loc[1]
	}
	return spans
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// Lower lowercases text with Unicode case mapping rules.
func Lower(text string) string {
	// A Caser keeps state between calls, so it is not shared.
	return cases.Lower(language.Und).String(text)
}

// Prefix returns the first n runes of s, or s itself when it is shorter.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Suffix returns the last n runes of s, or s itself when it is shorter.
func Suffix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// CountDigits returns the number of decimal digits in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// CountLetters returns the number of letters in s.
func CountLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// CountSpecial returns the number of runes that are neither letters nor digits.
func CountSpecial(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// IsPunct reports whether s is non-empty and made only of punctuation marks.
func IsPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

// HasLower reports whether s contains at least one lowercase letter.
func HasLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

// Casing shapes returned by Shape.
const (
	ShapeLower = "lower"
	ShapeUpper = "upper"
	ShapeTitle = "title"
	ShapeMixed = "mixed"
	ShapeOther = "other"
)

// Shapes lists every value Shape can return, in a fixed order.
var Shapes = []string{ShapeLower, ShapeUpper, ShapeTitle, ShapeMixed, ShapeOther}

// Shape classifies the letter casing of s.
func Shape(s string) string {
	var upper, lower int
	first := true
	firstUpper := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsUpper(r) {
			upper++
			if first {
				firstUpper = true
			}
		} else if unicode.IsLower(r) {
			lower++
		}
		first = false
	}
	switch {
	case upper == 0 && lower == 0:
		return ShapeOther
	case upper == 0:
		return ShapeLower
	case lower == 0:
		return ShapeUpper
	case firstUpper && upper == 1:
		return ShapeTitle
	default:
		return ShapeMixed
	}
}
