package feature

import (
	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

// Embedder looks up fixed-width word vectors.
type Embedder interface {
	Dim() int
	Lookup(word string) ([]float64, bool)
}

// Embedding emits the word vector of the token, trying the lowercased text
// when the exact form is unknown, and the zero vector otherwise.
type Embedding struct {
	table Embedder
}

var _ Feature = Embedding{}

// NewEmbedding creates an embedding feature over table.
func NewEmbedding(table Embedder) Embedding {
	return Embedding{table: table}
}

// Name returns "embedding".
func (e Embedding) Name() string { return NameEmbedding }

// Width returns the table dimension.
func (e Embedding) Width() int { return e.table.Dim() }

// Value returns a copy of the token's vector.
func (e Embedding) Value(doc *corpus.Document, i int) []float64 {
	text := doc.Tokens[i].Text
	v, ok := e.table.Lookup(text)
	if !ok {
		v, ok = e.table.Lookup(textutil.Lower(text))
	}
	out := make([]float64, e.table.Dim())
	if ok {
		copy(out, v)
	}
	return out
}
