package morph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/nertag/corpus"
)

func TestLexiconLoad(t *testing.T) {
	l := NewLexicon()
	err := l.Load(strings.NewReader("# forms\nМосквы NOUN gent\nзаявил VERB\n\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, corpus.Morph{POS: "NOUN", Case: "gent"}, l.Analyze("москвы"))
	assert.Equal(t, corpus.Morph{POS: "VERB"}, l.Analyze("Заявил"))

	assert.Error(t, NewLexicon().Load(strings.NewReader("lonely\n")))
}

func TestFallbackPOS(t *testing.T) {
	l := NewLexicon()
	tests := []struct {
		word string
		want string
	}{
		{",", POSPunct},
		{"1990", POSNumber},
		{"Google", POSLatin},
		{"Газпром", POSUnknown},
		{"", POSUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.Analyze(tt.word).POS, "Analyze(%q)", tt.word)
	}
}
