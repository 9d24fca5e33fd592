package feature

import (
	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

// Extractor derives the string checked against a vocabulary from token text.
type Extractor func(text string) string

// CheckElement emits 1 when the extracted part of the token is in the
// vocabulary and 0 otherwise.
type CheckElement struct {
	name    string
	vocab   corpus.Vocabulary
	extract Extractor
}

var _ Feature = (*CheckElement)(nil)

// NewCheckElement creates a membership feature. A nil extractor checks the
// token text as is.
func NewCheckElement(name string, vocab corpus.Vocabulary, extract Extractor) *CheckElement {
	if extract == nil {
		extract = func(text string) string { return text }
	}
	return &CheckElement{name: name, vocab: vocab, extract: extract}
}

// Name returns the feature name.
func (c *CheckElement) Name() string { return c.name }

// Width returns 1.
func (c *CheckElement) Width() int { return 1 }

// Value returns the membership indicator of token i.
func (c *CheckElement) Value(doc *corpus.Document, i int) []float64 {
	return []float64{indicator(c.vocab.Contains(c.extract(doc.Tokens[i].Text)))}
}

// NewSuffix checks the last n runes of the token against suffixes.
func NewSuffix(suffixes corpus.Vocabulary, n int) *CheckElement {
	return NewCheckElement(NameSuffix, suffixes, func(text string) string {
		return textutil.Suffix(text, n)
	})
}

// NewPrefix checks the first n runes of the token against prefixes.
func NewPrefix(prefixes corpus.Vocabulary, n int) *CheckElement {
	return NewCheckElement(NamePrefix, prefixes, func(text string) string {
		return textutil.Prefix(text, n)
	})
}

// NewGazetteer checks the token text against a gazetteer.
func NewGazetteer(entries corpus.Vocabulary) *CheckElement {
	return NewCheckElement(NameGazetteer, entries, nil)
}

// NewStopWords checks the lowercased token text against a stop-word list.
func NewStopWords(stopWords corpus.Vocabulary) *CheckElement {
	return NewCheckElement(NameStopWords, stopWords, textutil.Lower)
}
