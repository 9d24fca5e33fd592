package model

import (
	"log/slog"

	"github.com/happyhackingspace/nertag/feature"
)

// MajorClass predicts the same tag for every vector.
type MajorClass struct {
	Tag string `json:"tag"`
}

// Predict returns the majority tag.
func (m *MajorClass) Predict([]float64) string { return m.Tag }

// BatchPredict returns the majority tag for every vector.
func (m *MajorClass) BatchPredict(vectors [][]float64) []string {
	return batchPredict(m, vectors)
}

// MajorClassTrainer picks the most frequent tag. Ties go to the tag seen
// first in the training data.
type MajorClassTrainer struct{}

// Train returns a MajorClass model.
func (MajorClassTrainer) Train(data []feature.TaggedVector) (Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	tags, counts := tagCounts(data)
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	slog.Info("Majority class", "tag", tags[best], "count", counts[best], "total", len(data))
	return &MajorClass{Tag: tags[best]}, nil
}
