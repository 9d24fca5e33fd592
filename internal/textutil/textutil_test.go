package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"user_name", []string{"user_name"}},
		{"", nil},
		{"  spaces  ", []string{"spaces"}},
		{"café résumé", []string{"café", "résumé"}},
		{"Нижний Новгород", []string{"Нижний", "Новгород"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.input), "Tokenize(%q)", tt.input)
	}
}

func TestTokenizeSpans(t *testing.T) {
	spans := TokenizeSpans("Мэр Москвы, Собянин.")
	want := []Span{
		{Start: 0, End: 3, Text: "Мэр"},
		{Start: 4, End: 10, Text: "Москвы"},
		{Start: 10, End: 11, Text: ","},
		{Start: 12, End: 19, Text: "Собянин"},
		{Start: 19, End: 20, Text: "."},
	}
	assert.Equal(t, want, spans)
	assert.Empty(t, TokenizeSpans("   "))
}

func TestPrefixSuffix(t *testing.T) {
	tests := []struct {
		s      string
		n      int
		prefix string
		suffix string
	}{
		{"running", 3, "run", "ing"},
		{"cat", 3, "cat", "cat"},
		{"at", 3, "at", "at"},
		{"москва", 2, "мо", "ва"},
		{"word", 0, "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prefix, Prefix(tt.s, tt.n), "Prefix(%q, %d)", tt.s, tt.n)
		assert.Equal(t, tt.suffix, Suffix(tt.s, tt.n), "Suffix(%q, %d)", tt.s, tt.n)
	}
}

func TestCounts(t *testing.T) {
	assert.Equal(t, 3, CountDigits("a1b22"))
	assert.Equal(t, 2, CountLetters("a1b22"))
	assert.Equal(t, 2, CountSpecial("e-mail!"))
	assert.Equal(t, 0, CountSpecial("Москва"))
}

func TestIsPunct(t *testing.T) {
	assert.True(t, IsPunct("."))
	assert.True(t, IsPunct("?!"))
	assert.True(t, IsPunct("«"))
	assert.False(t, IsPunct(""))
	assert.False(t, IsPunct("a."))
}

func TestShape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"москва", ShapeLower},
		{"ООН", ShapeUpper},
		{"Москва", ShapeTitle},
		{"iPhone", ShapeMixed},
		{"McDonald", ShapeMixed},
		{"1990", ShapeOther},
		{",", ShapeOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Shape(tt.input), "Shape(%q)", tt.input)
	}
}

func TestLowerAndHasLower(t *testing.T) {
	assert.Equal(t, "привет мир", Lower("Привет МИР"))
	assert.True(t, HasLower("Abc"))
	assert.False(t, HasLower("ABC-1"))
}

func TestNormalizeWhitespaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello\nworld", "hello world"},
		{"hello\r\nworld", "hello world"},
		{"a  b   c", "a b c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeWhitespaces(tt.input))
	}
}
