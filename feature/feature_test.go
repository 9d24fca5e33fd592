package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/morph"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

type lexicon map[string]corpus.Morph

func (l lexicon) Analyze(word string) corpus.Morph {
	if m, ok := l[word]; ok {
		return m
	}
	return corpus.Morph{POS: morph.POSUnknown}
}

var testLexicon = lexicon{
	"Мэр":     {POS: "NOUN", Case: "nomn"},
	"Москвы":  {POS: "NOUN", Case: "gent"},
	"Сергей":  {POS: "NOUN", Case: "nomn"},
	"Собянин": {POS: "NOUN", Case: "nomn"},
	",":       {POS: morph.POSPunct},
}

func newDoc(t *testing.T, tags []string, texts ...string) *corpus.Document {
	t.Helper()
	tokens := make([]corpus.Token, len(texts))
	pos := 0
	for i, text := range texts {
		n := len([]rune(text))
		tokens[i] = corpus.Token{ID: i, Position: pos, Length: n, Text: text}
		pos += n + 1
	}
	doc, err := corpus.NewDocument("doc", tokens, tags, nil, testLexicon)
	require.NoError(t, err)
	return doc
}

func TestAtomicFeatures(t *testing.T) {
	doc := newDoc(t, nil, "Мэр", "Москвы", ",", "Сергей", "Собянин", "МВД-2", "Москвы")

	tests := []struct {
		f     Feature
		index int
		want  float64
	}{
		{Length(), 1, 6},
		{Numbers(), 5, 1},
		{Letters(), 5, 3},
		{SpecChars(), 5, 1},
		{LowerCase(), 5, 1},
		{LowerCase(), 1, 0},
		{Punct(), 2, 1},
		{Punct(), 1, 0},
		{Position(), 4, 4},
		{DF(), 1, 2},
		{DF(), 0, 1},
		{ConcordCase(), 3, 1},
		{ConcordCase(), 1, 0},
		{ConcordCase(), 2, 0},
	}
	for _, tt := range tests {
		got := tt.f.Value(doc, tt.index)
		require.Len(t, got, tt.f.Width(), tt.f.Name())
		assert.Equal(t, tt.want, got[0], "%s at %d", tt.f.Name(), tt.index)
	}
}

func TestOneHotFeatures(t *testing.T) {
	doc := newDoc(t, nil, "Мэр", "Москвы", ",", "iPhone")

	pos := POS()
	require.Equal(t, len(morph.POSTags), pos.Width())
	v := pos.Value(doc, 2)
	assert.Equal(t, 1.0, v[indexOf(morph.POSTags, morph.POSPunct)])
	assert.Equal(t, 1.0, sum(v))

	mc := MorphoCase()
	require.Equal(t, len(morph.Cases)+1, mc.Width())
	assert.Equal(t, 1.0, mc.Value(doc, 1)[indexOf(morph.Cases, "gent")])
	assert.Equal(t, 1.0, mc.Value(doc, 2)[len(morph.Cases)])

	c := Case()
	assert.Equal(t, 1.0, c.Value(doc, 0)[indexOf(textutil.Shapes, textutil.ShapeTitle)])
	assert.Equal(t, 1.0, c.Value(doc, 3)[indexOf(textutil.Shapes, textutil.ShapeMixed)])
}

func TestCheckElementFeatures(t *testing.T) {
	doc := newDoc(t, nil, "running", "cat", "Москва", "И")

	sf := NewSuffix(corpus.NewVocabulary("ing"), 3)
	assert.Equal(t, []float64{1}, sf.Value(doc, 0))
	assert.Equal(t, []float64{0}, sf.Value(doc, 1))

	pf := NewPrefix(corpus.NewVocabulary("Мо"), 2)
	assert.Equal(t, []float64{1}, pf.Value(doc, 2))
	assert.Equal(t, NamePrefix, pf.Name())

	gz := NewGazetteer(corpus.NewVocabulary("Москва"))
	assert.Equal(t, []float64{1}, gz.Value(doc, 2))
	assert.Equal(t, []float64{0}, gz.Value(doc, 1))

	sw := NewStopWords(corpus.NewVocabulary("и"))
	assert.Equal(t, []float64{1}, sw.Value(doc, 3))
	assert.Equal(t, []float64{0}, sw.Value(doc, 2))
}

func TestAffixScenario(t *testing.T) {
	doc := newDoc(t, nil, "running", "cat", "sprinting")
	assert.Equal(t, []string{"cat", "ing"}, doc.Suffixes(3).Words())
}

func TestContextBoundaries(t *testing.T) {
	doc := newDoc(t, nil, "Мэр", "Москвы", "Сергей")
	base := POS()

	for _, offset := range []int{-2, -1, 0, 1, 2} {
		ctx := NewContext(base, offset)
		for i := range doc.Len() {
			v := ctx.Value(doc, i)
			require.Len(t, v, base.Width(), "offset %d index %d", offset, i)
			j := i + offset
			if j < 0 || j >= doc.Len() {
				assert.Equal(t, 0.0, sum(v), "offset %d index %d", offset, i)
			} else {
				assert.Equal(t, base.Value(doc, j), v)
			}
		}
	}
	assert.Equal(t, "pos[-1]", NewContext(base, -1).Name())
	assert.Equal(t, "pos[+2]", NewContext(base, 2).Name())
}

func TestWindow(t *testing.T) {
	features := Window(1, Punct(), Length())
	var names []string
	for _, f := range features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"punct[-1]", "punct[+0]", "punct[+1]", "length[-1]", "length[+0]", "length[+1]"}, names)
}

func TestCompositeWidthAndOrder(t *testing.T) {
	doc := newDoc(t, nil, "Мэр", "Москвы", ",")
	comp := NewComposite(Length(), Punct(), NewContext(Length(), 1), POS())

	assert.Equal(t, 3+len(morph.POSTags), comp.Width())
	assert.Equal(t, []Segment{
		{Name: "length", Width: 1},
		{Name: "punct", Width: 1},
		{Name: "length[+1]", Width: 1},
		{Name: "pos", Width: len(morph.POSTags)},
	}, comp.Layout())

	for i := range doc.Len() {
		v := comp.Value(doc, i)
		require.Len(t, v, comp.Width())
		assert.Equal(t, v, comp.Value(doc, i), "determinism at %d", i)
	}
	v := comp.Value(doc, 1)
	assert.Equal(t, []float64{6, 0, 1}, v[:3])

	empty := NewComposite()
	assert.Equal(t, 0, empty.Width())
	assert.Empty(t, empty.Value(doc, 0))
}

type fakeTable map[string][]float64

func (f fakeTable) Dim() int { return 2 }
func (f fakeTable) Lookup(word string) ([]float64, bool) {
	v, ok := f[word]
	return v, ok
}

func TestEmbedding(t *testing.T) {
	doc := newDoc(t, nil, "Москва", "неведомое")
	table := fakeTable{"москва": {0.5, -1}}
	e := NewEmbedding(table)

	assert.Equal(t, 2, e.Width())
	got := e.Value(doc, 0)
	assert.Equal(t, []float64{0.5, -1}, got)
	got[0] = 9
	assert.Equal(t, 0.5, table["москва"][0], "value must not alias the table")
	assert.Equal(t, []float64{0, 0}, e.Value(doc, 1))
}

func TestNew(t *testing.T) {
	res := Resources{AffixLength: 2}
	for _, name := range []string{
		NameLength, NameNumbers, NamePosition, NameConcordCase, NameDF, NameLetters,
		NameGazetteer, NameLowerCase, NameSpecChars, NameStopWords, NamePOS,
		NameCase, NameMorphoCase, NamePunct, NamePrefix, NameSuffix,
	} {
		f, err := New(name, res)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}

	_, err := New("sparkle", res)
	assert.ErrorIs(t, err, ErrUnknownFeature)
	_, err = New(NameEmbedding, res)
	assert.ErrorIs(t, err, ErrUnknownFeature)

	res.Embeddings = fakeTable{}
	f, err := New(NameEmbedding, res)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Width())
}

type brokenFeature struct{}

func (brokenFeature) Name() string { return "broken" }
func (brokenFeature) Width() int   { return 2 }
func (brokenFeature) Value(_ *corpus.Document, i int) []float64 {
	return make([]float64, i+1)
}

func TestVectorizeDetectsWidthDrift(t *testing.T) {
	doc := newDoc(t, nil, "a", "b")
	_, err := Vectorize(doc, brokenFeature{})
	assert.ErrorIs(t, err, ErrWidthMismatch)
}

func TestAssemble(t *testing.T) {
	tagged := newDoc(t, []string{"O", "LOC"}, "Мэр", "Москвы")
	untagged, err := corpus.NewDocument("test", []corpus.Token{{ID: 0, Text: "x"}}, nil, nil, nil)
	require.NoError(t, err)
	coll, err := corpus.NewCollection(tagged, untagged)
	require.NoError(t, err)

	comp := NewComposite(Length(), NewContext(Length(), -1))
	got, err := Assemble(coll, comp)
	require.NoError(t, err)
	assert.Equal(t, []TaggedVector{
		{Vector: []float64{3, 0}, Tag: "O"},
		{Vector: []float64{6, 3}, Tag: "LOC"},
	}, got)

	all, err := VectorizeAll(coll, comp)
	require.NoError(t, err)
	assert.Len(t, all["doc"], 2)
	assert.Equal(t, [][]float64{{1, 0}}, all["test"])
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
