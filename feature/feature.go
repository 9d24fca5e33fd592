// Package feature declares per-token features, composes them into
// fixed-width vectors and assembles the vectors of whole corpora.
package feature

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/vectorizer"
)

// ErrWidthMismatch signals that a vector does not have the width its
// feature layout or model was built for.
var ErrWidthMismatch = errors.New("feature: vector width mismatch")

// Feature computes the numeric contribution of the token at index i of doc.
// Value must be pure and must return exactly Width() values.
type Feature interface {
	Name() string
	Width() int
	Value(doc *corpus.Document, i int) []float64
}

// Composite concatenates the outputs of its features in order. The order
// fixes where each feature's segment lands in the vector.
type Composite struct {
	features []Feature
	width    int
}

var _ Feature = (*Composite)(nil)

// NewComposite creates a composite over features. With no features it
// produces zero-width vectors.
func NewComposite(features ...Feature) *Composite {
	c := &Composite{features: append([]Feature(nil), features...)}
	for _, f := range c.features {
		c.width += f.Width()
	}
	return c
}

// Name returns "composite".
func (c *Composite) Name() string { return "composite" }

// Width returns the sum of the sub-feature widths.
func (c *Composite) Width() int { return c.width }

// Features returns the sub-features in order.
func (c *Composite) Features() []Feature {
	return c.features
}

// Value concatenates every sub-feature's output for token i.
func (c *Composite) Value(doc *corpus.Document, i int) []float64 {
	out := make([]float64, 0, c.width)
	for _, f := range c.features {
		out = append(out, f.Value(doc, i)...)
	}
	return out
}

// Segment is the placement of one feature in a composite vector.
type Segment struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

// Layout returns the ordered segments of the composite.
func (c *Composite) Layout() []Segment {
	layout := make([]Segment, len(c.features))
	for i, f := range c.features {
		layout[i] = Segment{Name: f.Name(), Width: f.Width()}
	}
	return layout
}

// Context evaluates a base feature at a token shifted by Offset. Outside the
// document it returns the zero vector of the base width.
type Context struct {
	Base   Feature
	Offset int
}

var _ Feature = Context{}

// NewContext wraps base at the given offset.
func NewContext(base Feature, offset int) Context {
	return Context{Base: base, Offset: offset}
}

// Name returns the base name with the signed offset, e.g. "pos[-1]".
func (c Context) Name() string {
	return fmt.Sprintf("%s[%+d]", c.Base.Name(), c.Offset)
}

// Width returns the base width.
func (c Context) Width() int { return c.Base.Width() }

// Value evaluates the base feature at i+Offset.
func (c Context) Value(doc *corpus.Document, i int) []float64 {
	j := i + c.Offset
	if j < 0 || j >= doc.Len() {
		return vectorizer.Zeros(c.Base.Width())
	}
	return c.Base.Value(doc, j)
}

// Window wraps each base feature at every offset in [-size, size], grouped
// by base feature.
func Window(size int, bases ...Feature) []Feature {
	var out []Feature
	for _, b := range bases {
		for off := -size; off <= size; off++ {
			out = append(out, NewContext(b, off))
		}
	}
	return out
}

// scalar is a width-1 feature backed by a function.
type scalar struct {
	name string
	fn   func(doc *corpus.Document, i int) float64
}

func (s scalar) Name() string { return s.name }
func (s scalar) Width() int   { return 1 }
func (s scalar) Value(doc *corpus.Document, i int) []float64 {
	return []float64{s.fn(doc, i)}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
