package model

import (
	"log/slog"
	"math"

	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/internal/vectorizer"
)

// Linear scores every class with a weight vector and an intercept and
// predicts the best scoring class. Both LogReg and SVM produce it.
type Linear struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`      // [numClasses][numFeatures]
	Intercept []float64   `json:"intercept"` // [numClasses]
}

// Dim returns the input width the model was fitted on.
func (m *Linear) Dim() int {
	if len(m.Coef) == 0 {
		return 0
	}
	return len(m.Coef[0])
}

// Scores returns the raw class scores of vector.
func (m *Linear) Scores(vector []float64) []float64 {
	scores := make([]float64, len(m.Classes))
	for c := range m.Classes {
		scores[c] = vectorizer.Dot(m.Coef[c], vector) + m.Intercept[c]
	}
	return scores
}

// Predict returns the class with the highest score.
func (m *Linear) Predict(vector []float64) string {
	best := vectorizer.Argmax(m.Scores(vector))
	if best < 0 {
		return ""
	}
	return m.Classes[best]
}

// PredictProba returns softmax probabilities over the classes.
func (m *Linear) PredictProba(vector []float64) map[string]float64 {
	probs := softmax(m.Scores(vector))
	result := make(map[string]float64, len(m.Classes))
	for c, cls := range m.Classes {
		result[cls] = probs[c]
	}
	return result
}

// BatchPredict predicts every vector.
func (m *Linear) BatchPredict(vectors [][]float64) []string {
	return batchPredict(m, vectors)
}

// LogRegConfig holds logistic regression hyper-parameters.
type LogRegConfig struct {
	C       float64 `yaml:"c" json:"c"`
	MaxIter int     `yaml:"max_iter" json:"max_iter"`
}

// DefaultLogRegConfig returns default training config.
func DefaultLogRegConfig() LogRegConfig {
	return LogRegConfig{
		C:       5.0,
		MaxIter: 100,
	}
}

// LogRegTrainer fits multinomial logistic regression with L2 penalty using
// L-BFGS.
type LogRegTrainer struct {
	Config LogRegConfig
}

// Train fits a Linear model. Classes keep their first-seen order.
func (t LogRegTrainer) Train(data []feature.TaggedVector) (Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	totalDim, err := inputWidth(data)
	if err != nil {
		return nil, err
	}

	classes, _ := tagCounts(data)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}
	x := make([][]float64, len(data))
	y := make([]int, len(data))
	for j, tv := range data {
		x[j] = tv.Vector
		y[j] = classIndex[tv.Tag]
	}

	reg := t.Config.C
	if reg <= 0 {
		reg = 5.0
	}
	numClasses := len(classes)
	numParams := numClasses * (totalDim + 1)
	params := make([]float64, numParams)

	lbfgs := newLBFGS(10)
	for iter := range t.Config.MaxIter {
		loss, gradients := logRegObjective(x, y, params, numClasses, totalDim, reg)
		if iter%10 == 0 {
			slog.Debug("LogReg iteration", "iter", iter, "loss", loss)
		}

		dir := lbfgs.computeDirection(gradients, numParams)
		step := logRegLineSearch(x, y, params, dir, numClasses, totalDim, reg, loss)

		prevParams := make([]float64, numParams)
		copy(prevParams, params)
		for i := range numParams {
			params[i] += step * dir[i]
		}

		_, newGrad := logRegObjective(x, y, params, numClasses, totalDim, reg)
		s := make([]float64, numParams)
		yVec := make([]float64, numParams)
		for i := range numParams {
			s[i] = params[i] - prevParams[i]
			yVec[i] = newGrad[i] - gradients[i]
		}
		lbfgs.update(s, yVec)

		maxGrad := 0.0
		for _, g := range newGrad {
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}
		if maxGrad < 1e-5 {
			slog.Debug("LogReg converged", "iter", iter)
			break
		}
	}

	m := &Linear{
		Classes:   classes,
		Coef:      make([][]float64, numClasses),
		Intercept: make([]float64, numClasses),
	}
	for c := range numClasses {
		offset := c * (totalDim + 1)
		m.Coef[c] = append([]float64(nil), params[offset:offset+totalDim]...)
		m.Intercept[c] = params[offset+totalDim]
	}
	return m, nil
}

func logRegObjective(x [][]float64, y []int, params []float64, numClasses, totalDim int, c float64) (float64, []float64) {
	grad := make([]float64, len(params))
	loss := 0.0
	logits := make([]float64, numClasses)

	for j, row := range x {
		for k := range numClasses {
			offset := k * (totalDim + 1)
			logits[k] = vectorizer.Dot(row, params[offset:offset+totalDim]) + params[offset+totalDim]
		}
		probs := softmax(logits)

		if probs[y[j]] > 0 {
			loss -= math.Log(probs[y[j]])
		} else {
			loss += 100
		}

		for k := range numClasses {
			offset := k * (totalDim + 1)
			diff := probs[k]
			if k == y[j] {
				diff -= 1
			}
			for i, v := range row {
				grad[offset+i] += diff * v
			}
			grad[offset+totalDim] += diff
		}
	}

	regCoeff := 1.0 / c
	for k := range numClasses {
		offset := k * (totalDim + 1)
		for i := range totalDim {
			loss += 0.5 * regCoeff * params[offset+i] * params[offset+i]
			grad[offset+i] += regCoeff * params[offset+i]
		}
	}
	return loss, grad
}

func logRegLineSearch(x [][]float64, y []int, params, dir []float64, numClasses, totalDim int, c, currentLoss float64) float64 {
	step := 1.0
	wNew := make([]float64, len(params))
	for range 20 {
		for i := range params {
			wNew[i] = params[i] + step*dir[i]
		}
		newLoss, _ := logRegObjective(x, y, wNew, numClasses, totalDim, c)
		if newLoss < currentLoss {
			return step
		}
		step *= 0.5
	}
	return step
}

func softmax(logits []float64) []float64 {
	probs := make([]float64, len(logits))
	if len(logits) == 0 {
		return probs
	}
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		maxLogit = math.Max(maxLogit, l)
	}
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// lbfgs keeps the last m curvature pairs of the limited-memory BFGS update.
type lbfgs struct {
	m    int
	s    [][]float64
	y    [][]float64
	rho  []float64
	k    int
	size int
}

func newLBFGS(m int) *lbfgs {
	return &lbfgs{
		m:   m,
		s:   make([][]float64, m),
		y:   make([][]float64, m),
		rho: make([]float64, m),
	}
}

func (l *lbfgs) update(s, y []float64) {
	sy := vectorizer.Dot(s, y)
	if sy <= 0 {
		return
	}
	idx := l.k % l.m
	l.s[idx] = append([]float64(nil), s...)
	l.y[idx] = append([]float64(nil), y...)
	l.rho[idx] = 1.0 / sy
	l.k++
	if l.size < l.m {
		l.size++
	}
}

// slot maps the i-th stored pair, oldest first, to its ring index.
func (l *lbfgs) slot(i int) int {
	idx := (l.k - l.size + i) % l.m
	if idx < 0 {
		idx += l.m
	}
	return idx
}

func (l *lbfgs) computeDirection(grad []float64, n int) []float64 {
	q := append(make([]float64, 0, n), grad...)

	if l.size > 0 {
		alpha := make([]float64, l.size)
		for i := l.size - 1; i >= 0; i-- {
			idx := l.slot(i)
			a := l.rho[idx] * vectorizer.Dot(l.s[idx], q)
			alpha[i] = a
			for j := range n {
				q[j] -= a * l.y[idx][j]
			}
		}

		latest := l.slot(l.size - 1)
		if yy := vectorizer.Dot(l.y[latest], l.y[latest]); yy > 0 {
			gamma := vectorizer.Dot(l.s[latest], l.y[latest]) / yy
			for i := range q {
				q[i] *= gamma
			}
		}

		for i := range l.size {
			idx := l.slot(i)
			beta := l.rho[idx] * vectorizer.Dot(l.y[idx], q)
			for j := range n {
				q[j] += (alpha[i] - beta) * l.s[idx][j]
			}
		}
	}

	for i := range q {
		q[i] = -q[i]
	}
	return q
}
