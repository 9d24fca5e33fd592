package model

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/happyhackingspace/nertag/feature"
)

// lowSentinel bounds the first interval from below so a draw of exactly 0
// always lands in it.
const lowSentinel = -0.1

// Interval assigns the draws in [Low, High) to Tag.
type Interval struct {
	Tag  string  `json:"tag"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Random samples a tag from the training tag distribution, ignoring the
// input vector.
type Random struct {
	Intervals []Interval `json:"intervals"`
	Seed      uint64     `json:"seed"`

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a model over intervals with a deterministic source
// seeded by seed.
func NewRandom(intervals []Interval, seed uint64) *Random {
	return &Random{Intervals: intervals, Seed: seed}
}

func (m *Random) draw() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(m.Seed, m.Seed^0x9e3779b97f4a7c15))
	}
	return m.rng.Float64()
}

// Predict draws a value in [0, 1) and returns the tag of its interval.
func (m *Random) Predict([]float64) string {
	return m.lookup(m.draw())
}

func (m *Random) lookup(r float64) string {
	if len(m.Intervals) == 0 {
		return ""
	}
	for _, iv := range m.Intervals {
		if r >= iv.Low && r < iv.High {
			return iv.Tag
		}
	}
	return m.Intervals[len(m.Intervals)-1].Tag
}

// BatchPredict draws one tag per vector.
func (m *Random) BatchPredict(vectors [][]float64) []string {
	return batchPredict(m, vectors)
}

// RandomTrainer builds the interval table of a Random model from tag
// frequencies.
type RandomTrainer struct {
	Seed uint64
}

// Train returns a Random model. Intervals follow the order in which tags
// first appear; the first starts at -0.1 and the last ends at exactly 1.
func (t RandomTrainer) Train(data []feature.TaggedVector) (Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	intervals := Intervals(data)
	slog.Info("Random model probabilities", "intervals", intervals)
	return NewRandom(intervals, t.Seed), nil
}

// Intervals builds the probability table of the tags in data. Frequencies
// are rounded to 10 decimal places.
func Intervals(data []feature.TaggedVector) []Interval {
	tags, counts := tagCounts(data)
	intervals := make([]Interval, len(tags))
	prev := 0.0
	for i, tag := range tags {
		w := round(float64(counts[i])/float64(len(data)), 10)
		switch {
		case i == 0:
			intervals[i] = Interval{Tag: tag, Low: lowSentinel, High: w}
		case i == len(tags)-1:
			intervals[i] = Interval{Tag: tag, Low: prev, High: 1}
		default:
			intervals[i] = Interval{Tag: tag, Low: prev, High: prev + w}
		}
		prev += w
	}
	return intervals
}

func round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.RoundToEven(x*p) / p
}
