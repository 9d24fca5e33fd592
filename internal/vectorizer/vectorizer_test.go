package vectorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphabet(t *testing.T) {
	a := NewAlphabet()
	id0 := a.Add("hello")
	id1 := a.Add("world")
	id2 := a.Add("hello") // duplicate

	assert.Equal(t, []int{0, 1, 0}, []int{id0, id1, id2})
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, -1, a.Get("missing"))
}

func TestOneHot(t *testing.T) {
	a := NewAlphabet("NOUN", "VERB", "UNKN")

	assert.Equal(t, []float64{0, 1, 0}, a.OneHot("VERB", "UNKN"))
	assert.Equal(t, []float64{0, 0, 1}, a.OneHot("ADVB", "UNKN"))
	assert.Equal(t, []float64{0, 0, 0}, a.OneHot("ADVB", ""))
}

func TestConcat(t *testing.T) {
	got := Concat([]float64{1}, nil, []float64{2, 3})
	assert.Equal(t, []float64{1, 2, 3}, got)
	assert.Empty(t, Concat())
}

func TestDotAndArgmax(t *testing.T) {
	assert.Equal(t, 2.0*2+4.0*4, Dot([]float64{0, 2, 0, 4}, []float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 1, Argmax([]float64{0.1, 0.7, 0.7}))
	assert.Equal(t, -1, Argmax(nil))
	assert.InDelta(t, 5.0, L2Norm([]float64{3, 4}), 1e-12)
	assert.Equal(t, []float64{0, 0}, Zeros(2))
}
