// Package model defines the tagging model contract and the training
// strategies that produce models from tagged vectors.
package model

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/happyhackingspace/nertag/feature"
)

var (
	// ErrEmptyDataset is returned when a trainer receives no tagged vectors.
	ErrEmptyDataset = errors.New("model: cannot train on empty dataset")
	// ErrUnsupportedStrategy is returned for algorithm names with no trainer.
	ErrUnsupportedStrategy = errors.New("model: unsupported strategy")
)

// Model predicts a tag for a feature vector.
type Model interface {
	Predict(vector []float64) string
	// BatchPredict returns the tag of every vector, in input order.
	BatchPredict(vectors [][]float64) []string
}

// Trainer builds a Model from tagged vectors.
type Trainer interface {
	Train(data []feature.TaggedVector) (Model, error)
}

// Dimensioned is implemented by models that were fitted on vectors of a
// known width.
type Dimensioned interface {
	Dim() int
}

// CheckWidth fails with feature.ErrWidthMismatch when m was fitted on
// vectors of a width other than width. Models that ignore their input
// accept any width.
func CheckWidth(m Model, width int) error {
	d, ok := m.(Dimensioned)
	if !ok {
		return nil
	}
	if d.Dim() != width {
		return fmt.Errorf("%w: model expects %d features, got %d", feature.ErrWidthMismatch, d.Dim(), width)
	}
	return nil
}

func batchPredict(m Model, vectors [][]float64) []string {
	out := make([]string, len(vectors))
	for i, v := range vectors {
		out[i] = m.Predict(v)
	}
	return out
}

// ParallelBatchPredict predicts vectors with up to workers goroutines. The
// result is index-aligned with vectors. With workers <= 1 it is the same as
// m.BatchPredict.
func ParallelBatchPredict(ctx context.Context, m Model, vectors [][]float64, workers int) ([]string, error) {
	if workers <= 1 || len(vectors) < 2 {
		return m.BatchPredict(vectors), nil
	}

	out := make([]string, len(vectors))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(vectors) + workers - 1) / workers
	for start := 0; start < len(vectors); start += chunk {
		end := min(start+chunk, len(vectors))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			copy(out[start:end], m.BatchPredict(vectors[start:end]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// tagCounts counts tags in first-encountered order.
func tagCounts(data []feature.TaggedVector) (tags []string, counts []int) {
	index := make(map[string]int)
	for _, tv := range data {
		i, ok := index[tv.Tag]
		if !ok {
			i = len(tags)
			index[tv.Tag] = i
			tags = append(tags, tv.Tag)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return tags, counts
}

// inputWidth returns the common vector width of data.
func inputWidth(data []feature.TaggedVector) (int, error) {
	width := len(data[0].Vector)
	for i, tv := range data {
		if len(tv.Vector) != width {
			return 0, fmt.Errorf("%w: vector %d has %d values, want %d", feature.ErrWidthMismatch, i, len(tv.Vector), width)
		}
	}
	return width, nil
}
