package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/happyhackingspace/nertag/internal/textutil"
)

var (
	// ErrMisaligned is returned when tags and tokens are not index-aligned
	// or a token ID differs from its index.
	ErrMisaligned = errors.New("corpus: tokens and tags are misaligned")
	// ErrMissingTags is returned when a tagged corpus holds an untagged token.
	ErrMissingTags = errors.New("corpus: token has no tag")
	// ErrDuplicateDocument is returned when a collection already holds a name.
	ErrDuplicateDocument = errors.New("corpus: duplicate document name")
)

// Document is an ordered token sequence with optional gold tags and the
// data derived from it. It is read-only once built.
type Document struct {
	Name   string
	Tokens []Token
	// Tags is index-aligned with Tokens, nil for unlabeled documents.
	Tags []string
	// Morph is index-aligned with Tokens, nil when no analyzer was used.
	Morph []Morph

	sentenceStart []int
	counts        map[string]int
	texts         []string
}

// NewDocument builds a document. breaks lists the token indices that start
// a new sentence (index 0 always does). tags may be nil; analyzer may be nil.
func NewDocument(name string, tokens []Token, tags []string, breaks []int, analyzer MorphAnalyzer) (*Document, error) {
	if tags != nil && len(tags) != len(tokens) {
		return nil, fmt.Errorf("%w: %s has %d tokens and %d tags", ErrMisaligned, name, len(tokens), len(tags))
	}
	for i, tok := range tokens {
		if tok.ID != i {
			return nil, fmt.Errorf("%w: %s token %d has id %d", ErrMisaligned, name, i, tok.ID)
		}
	}

	d := &Document{
		Name:          name,
		Tokens:        tokens,
		Tags:          tags,
		sentenceStart: make([]int, len(tokens)),
		counts:        make(map[string]int),
	}

	isBreak := make(map[int]bool, len(breaks))
	for _, b := range breaks {
		isBreak[b] = true
	}
	start := 0
	for i, tok := range tokens {
		if isBreak[i] {
			start = i
		}
		d.sentenceStart[i] = start
		if d.counts[tok.Text] == 0 {
			d.texts = append(d.texts, tok.Text)
		}
		d.counts[tok.Text]++
	}

	if analyzer != nil {
		d.Morph = make([]Morph, len(tokens))
		for i, tok := range tokens {
			d.Morph[i] = analyzer.Analyze(tok.Text)
		}
	}
	return d, nil
}

// Len returns the number of tokens.
func (d *Document) Len() int {
	return len(d.Tokens)
}

// Tagged reports whether the document carries gold tags.
func (d *Document) Tagged() bool {
	return d.Tags != nil
}

// Count returns how many times text occurs as a token in the document.
func (d *Document) Count(text string) int {
	return d.counts[text]
}

// Texts returns the distinct token texts in first-occurrence order.
func (d *Document) Texts() []string {
	return d.texts
}

// SentencePosition returns the index of token i within its sentence.
func (d *Document) SentencePosition(i int) int {
	return i - d.sentenceStart[i]
}

// MorphAt returns the analysis of token i, or the zero Morph when the
// document was not analysed.
func (d *Document) MorphAt(i int) Morph {
	if d.Morph == nil {
		return Morph{}
	}
	return d.Morph[i]
}

// Prefixes returns the set of n-rune prefixes of the distinct token texts.
func (d *Document) Prefixes(n int) Vocabulary {
	return d.affixes(n, textutil.Prefix)
}

// Suffixes returns the set of n-rune suffixes of the distinct token texts.
func (d *Document) Suffixes(n int) Vocabulary {
	return d.affixes(n, textutil.Suffix)
}

func (d *Document) affixes(n int, cut func(string, int) string) Vocabulary {
	words := make([]string, 0, len(d.texts))
	for _, text := range d.texts {
		words = append(words, cut(text, n))
	}
	return NewVocabulary(words...)
}

// Collection is an ordered mapping from document name to document.
type Collection struct {
	names []string
	docs  map[string]*Document
}

// NewCollection creates a collection holding docs in order.
func NewCollection(docs ...*Document) (*Collection, error) {
	c := &Collection{docs: make(map[string]*Document, len(docs))}
	for _, d := range docs {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a document.
func (c *Collection) Add(d *Document) error {
	if c.docs == nil {
		c.docs = make(map[string]*Document)
	}
	if _, ok := c.docs[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, d.Name)
	}
	c.names = append(c.names, d.Name)
	c.docs[d.Name] = d
	return nil
}

// Get returns the document with the given name.
func (c *Collection) Get(name string) (*Document, bool) {
	d, ok := c.docs[name]
	return d, ok
}

// Names returns document names in insertion order.
func (c *Collection) Names() []string {
	return c.names
}

// Documents returns the documents in insertion order.
func (c *Collection) Documents() []*Document {
	out := make([]*Document, len(c.names))
	for i, name := range c.names {
		out[i] = c.docs[name]
	}
	return out
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	return len(c.names)
}

// Subset returns a collection of the documents at the given positions.
func (c *Collection) Subset(indices []int) *Collection {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	sub := &Collection{docs: make(map[string]*Document, len(sorted))}
	for _, i := range sorted {
		name := c.names[i]
		sub.names = append(sub.names, name)
		sub.docs[name] = c.docs[name]
	}
	return sub
}

// Prefixes returns the union of every document's n-rune prefixes.
func (c *Collection) Prefixes(n int) Vocabulary {
	sets := make([]Vocabulary, 0, c.Len())
	for _, d := range c.Documents() {
		sets = append(sets, d.Prefixes(n))
	}
	return Union(sets...)
}

// Suffixes returns the union of every document's n-rune suffixes.
func (c *Collection) Suffixes(n int) Vocabulary {
	sets := make([]Vocabulary, 0, c.Len())
	for _, d := range c.Documents() {
		sets = append(sets, d.Suffixes(n))
	}
	return Union(sets...)
}
