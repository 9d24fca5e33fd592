package model

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/internal/vectorizer"
)

// SVMConfig holds linear SVM hyper-parameters.
type SVMConfig struct {
	Lambda float64 `yaml:"lambda" json:"lambda"`
	Epochs int     `yaml:"epochs" json:"epochs"`
	Seed   uint64  `yaml:"seed" json:"seed"`
}

// DefaultSVMConfig returns default training config.
func DefaultSVMConfig() SVMConfig {
	return SVMConfig{
		Lambda: 0.01,
		Epochs: 20,
	}
}

// SVMTrainer fits one-vs-rest linear SVMs with the Pegasos stochastic
// sub-gradient method on the hinge loss.
type SVMTrainer struct {
	Config SVMConfig
}

// Train fits a Linear model with one binary classifier per tag.
func (t SVMTrainer) Train(data []feature.TaggedVector) (Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	dim, err := inputWidth(data)
	if err != nil {
		return nil, err
	}
	lambda := t.Config.Lambda
	if lambda <= 0 {
		lambda = DefaultSVMConfig().Lambda
	}
	epochs := max(t.Config.Epochs, 1)

	classes, _ := tagCounts(data)
	m := &Linear{
		Classes:   classes,
		Coef:      make([][]float64, len(classes)),
		Intercept: make([]float64, len(classes)),
	}
	for c, cls := range classes {
		rng := rand.New(rand.NewPCG(t.Config.Seed, uint64(c)))
		w := pegasos(data, cls, dim, lambda, epochs, rng)
		m.Coef[c] = w[:dim]
		m.Intercept[c] = w[dim]
		slog.Debug("SVM class fitted", "class", cls, "norm", vectorizer.L2Norm(w))
	}
	return m, nil
}

// pegasos returns the weights of a binary classifier separating cls from
// the other tags. The last weight is the bias, fitted as a constant feature.
func pegasos(data []feature.TaggedVector, cls string, dim int, lambda float64, epochs int, rng *rand.Rand) []float64 {
	w := make([]float64, dim+1)
	radius := 1 / math.Sqrt(lambda)
	step := 0
	for range epochs {
		for _, j := range rng.Perm(len(data)) {
			step++
			eta := 1 / (lambda * float64(step))
			x := data[j].Vector
			y := -1.0
			if data[j].Tag == cls {
				y = 1
			}
			margin := y * (vectorizer.Dot(w[:dim], x) + w[dim])

			scale := 1 - eta*lambda
			for i := range w {
				w[i] *= scale
			}
			if margin < 1 {
				for i, v := range x {
					w[i] += eta * y * v
				}
				w[dim] += eta * y
			}

			if norm := vectorizer.L2Norm(w); norm > radius {
				for i := range w {
					w[i] *= radius / norm
				}
			}
		}
	}
	return w
}
