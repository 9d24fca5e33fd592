// Package morph provides a lexicon-backed morphological analyzer using the
// OpenCorpora tag set.
package morph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

// Part-of-speech tags, OpenCorpora style. The last four are assigned to
// tokens the lexicon does not know.
var POSTags = []string{
	"NOUN", "ADJF", "ADJS", "COMP", "VERB", "INFN", "PRTF", "PRTS", "GRND",
	"NUMR", "ADVB", "NPRO", "PRED", "PREP", "CONJ", "PRCL", "INTJ",
	POSLatin, POSPunct, POSNumber, POSUnknown,
}

// Fallback part-of-speech tags.
const (
	POSLatin   = "LATN"
	POSPunct   = "PNCT"
	POSNumber  = "NUMB"
	POSUnknown = "UNKN"
)

// Cases lists the grammatical cases.
var Cases = []string{"nomn", "gent", "datv", "accs", "ablt", "loct", "voct", "gen2", "acc2", "loc2"}

// Lexicon maps lowercased word forms to their analysis.
type Lexicon struct {
	entries map[string]corpus.Morph
}

var _ corpus.MorphAnalyzer = (*Lexicon)(nil)

// NewLexicon creates an empty lexicon; it analyses by fallback rules only.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string]corpus.Morph)}
}

// Add registers the analysis of a word form.
func (l *Lexicon) Add(word string, m corpus.Morph) {
	l.entries[textutil.Lower(word)] = m
}

// Len returns the number of word forms.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Load reads "word POS [case]" lines. Blank lines and '#' comments are skipped.
func (l *Lexicon) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return fmt.Errorf("lexicon line %d: expected word and POS", lineNo)
		}
		m := corpus.Morph{POS: parts[1]}
		if len(parts) > 2 {
			m.Case = parts[2]
		}
		l.Add(parts[0], m)
	}
	return scanner.Err()
}

// Analyze returns the lexicon entry for word, or a fallback tag derived from
// its characters.
func (l *Lexicon) Analyze(word string) corpus.Morph {
	if m, ok := l.entries[textutil.Lower(word)]; ok {
		return m
	}
	return corpus.Morph{POS: fallbackPOS(word)}
}

func fallbackPOS(word string) string {
	switch {
	case textutil.IsPunct(word):
		return POSPunct
	case word != "" && textutil.CountDigits(word) == len([]rune(word)):
		return POSNumber
	case isLatin(word):
		return POSLatin
	default:
		return POSUnknown
	}
}

func isLatin(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}
