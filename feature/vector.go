package feature

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/nertag/corpus"
)

// TaggedVector pairs a feature vector with its gold tag.
type TaggedVector struct {
	Vector []float64 `json:"vector"`
	Tag    string    `json:"tag"`
}

// Vectorize returns one vector per token of doc, in token order.
func Vectorize(doc *corpus.Document, f Feature) ([][]float64, error) {
	width := f.Width()
	vectors := make([][]float64, doc.Len())
	for i := range doc.Len() {
		v := f.Value(doc, i)
		if len(v) != width {
			return nil, fmt.Errorf("%w: %s token %d has %d values, want %d", ErrWidthMismatch, doc.Name, i, len(v), width)
		}
		vectors[i] = v
	}
	return vectors, nil
}

// VectorizeAll vectorizes every document of coll, keyed by document name.
func VectorizeAll(coll *corpus.Collection, f Feature) (map[string][][]float64, error) {
	out := make(map[string][][]float64, coll.Len())
	for _, doc := range coll.Documents() {
		vectors, err := Vectorize(doc, f)
		if err != nil {
			return nil, err
		}
		out[doc.Name] = vectors
	}
	return out, nil
}

// Assemble pairs the vector of every token of every tagged document in coll
// with its gold tag. Untagged documents contribute nothing.
func Assemble(coll *corpus.Collection, f Feature) ([]TaggedVector, error) {
	var tagged []TaggedVector
	for _, doc := range coll.Documents() {
		if !doc.Tagged() {
			slog.Debug("Skipping untagged document", "document", doc.Name)
			continue
		}
		vectors, err := Vectorize(doc, f)
		if err != nil {
			return nil, err
		}
		for i, v := range vectors {
			tagged = append(tagged, TaggedVector{Vector: v, Tag: doc.Tags[i]})
		}
	}
	return tagged, nil
}
