package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Embeddings is an in-memory word → vector table of fixed dimension.
type Embeddings struct {
	vectors map[string][]float64
	dim     int
}

// NewEmbeddings creates a table from vectors, which must share one length.
func NewEmbeddings(vectors map[string][]float64) (*Embeddings, error) {
	e := &Embeddings{vectors: vectors, dim: -1}
	for word, v := range vectors {
		if e.dim < 0 {
			e.dim = len(v)
		} else if len(v) != e.dim {
			return nil, fmt.Errorf("embedding %q has dimension %d, want %d", word, len(v), e.dim)
		}
	}
	if e.dim < 0 {
		e.dim = 0
	}
	return e, nil
}

// Dim returns the vector dimension.
func (e *Embeddings) Dim() int {
	return e.dim
}

// Len returns the number of words.
func (e *Embeddings) Len() int {
	return len(e.vectors)
}

// Lookup returns the vector of word.
func (e *Embeddings) Lookup(word string) ([]float64, bool) {
	v, ok := e.vectors[word]
	return v, ok
}

// Embeddings reads a word2vec text-format table.
func (s *Storage) Embeddings(name string) (*Embeddings, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	defer f.Close()

	e, err := ReadEmbeddings(f)
	if err != nil {
		return nil, fmt.Errorf("embeddings %s: %w", name, err)
	}
	return e, nil
}

// ReadEmbeddings parses word2vec text format: an optional "count dim" header
// line followed by "word v1 ... vd" lines.
func ReadEmbeddings(r io.Reader) (*Embeddings, error) {
	vectors := make(map[string][]float64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		if lineNo == 1 && len(parts) == 2 {
			if _, err := strconv.Atoi(parts[0]); err == nil {
				continue
			}
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: no vector values", lineNo)
		}
		vec := make([]float64, len(parts)-1)
		for i, p := range parts[1:] {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vec[i] = v
		}
		vectors[parts[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewEmbeddings(vectors)
}
