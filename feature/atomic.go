package feature

import (
	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/morph"
	"github.com/happyhackingspace/nertag/internal/textutil"
	"github.com/happyhackingspace/nertag/internal/vectorizer"
)

// Feature names accepted by New.
const (
	NameLength      = "length"
	NameNumbers     = "numbers"
	NamePosition    = "position"
	NameConcordCase = "concord_case"
	NameDF          = "df"
	NameLetters     = "letters"
	NameGazetteer   = "gazetteer"
	NameLowerCase   = "lowercase"
	NameSpecChars   = "spec_chars"
	NameStopWords   = "stop_words"
	NamePOS         = "pos"
	NameCase        = "case"
	NameMorphoCase  = "morpho_case"
	NamePunct       = "punct"
	NameEmbedding   = "embedding"
	NamePrefix      = "prefix"
	NameSuffix      = "suffix"
)

// Length is the token length in runes.
func Length() Feature {
	return scalar{NameLength, func(doc *corpus.Document, i int) float64 {
		return float64(len([]rune(doc.Tokens[i].Text)))
	}}
}

// Numbers is the number of digits in the token.
func Numbers() Feature {
	return scalar{NameNumbers, func(doc *corpus.Document, i int) float64 {
		return float64(textutil.CountDigits(doc.Tokens[i].Text))
	}}
}

// Letters is the number of letters in the token.
func Letters() Feature {
	return scalar{NameLetters, func(doc *corpus.Document, i int) float64 {
		return float64(textutil.CountLetters(doc.Tokens[i].Text))
	}}
}

// SpecChars is the number of characters that are neither letters nor digits.
func SpecChars() Feature {
	return scalar{NameSpecChars, func(doc *corpus.Document, i int) float64 {
		return float64(textutil.CountSpecial(doc.Tokens[i].Text))
	}}
}

// LowerCase is 1 when the token has no lowercase letter.
func LowerCase() Feature {
	return scalar{NameLowerCase, func(doc *corpus.Document, i int) float64 {
		return indicator(!textutil.HasLower(doc.Tokens[i].Text))
	}}
}

// Punct is 1 when the token consists of punctuation only.
func Punct() Feature {
	return scalar{NamePunct, func(doc *corpus.Document, i int) float64 {
		return indicator(textutil.IsPunct(doc.Tokens[i].Text))
	}}
}

// Position is the index of the token within its sentence.
func Position() Feature {
	return scalar{NamePosition, func(doc *corpus.Document, i int) float64 {
		return float64(doc.SentencePosition(i))
	}}
}

// DF is the number of occurrences of the token text in the document.
func DF() Feature {
	return scalar{NameDF, func(doc *corpus.Document, i int) float64 {
		return float64(doc.Count(doc.Tokens[i].Text))
	}}
}

// ConcordCase is 1 when the token has a grammatical case shared by the
// previous or the next token.
func ConcordCase() Feature {
	return scalar{NameConcordCase, func(doc *corpus.Document, i int) float64 {
		c := doc.MorphAt(i).Case
		if c == "" {
			return 0
		}
		if i > 0 && doc.MorphAt(i-1).Case == c {
			return 1
		}
		if i+1 < doc.Len() && doc.MorphAt(i+1).Case == c {
			return 1
		}
		return 0
	}}
}

// oneHot encodes a categorical token property over a fixed category list.
type oneHot struct {
	name     string
	alphabet *vectorizer.Alphabet
	fallback string
	value    func(doc *corpus.Document, i int) string
}

func (o oneHot) Name() string { return o.name }
func (o oneHot) Width() int   { return o.alphabet.Size() }
func (o oneHot) Value(doc *corpus.Document, i int) []float64 {
	return o.alphabet.OneHot(o.value(doc, i), o.fallback)
}

// noCase marks tokens without grammatical case.
const noCase = "none"

// POS one-hot encodes the part of speech over morph.POSTags.
func POS() Feature {
	return oneHot{
		name:     NamePOS,
		alphabet: vectorizer.NewAlphabet(morph.POSTags...),
		fallback: morph.POSUnknown,
		value: func(doc *corpus.Document, i int) string {
			return doc.MorphAt(i).POS
		},
	}
}

// MorphoCase one-hot encodes the grammatical case over morph.Cases plus "none".
func MorphoCase() Feature {
	return oneHot{
		name:     NameMorphoCase,
		alphabet: vectorizer.NewAlphabet(append(append([]string(nil), morph.Cases...), noCase)...),
		fallback: noCase,
		value: func(doc *corpus.Document, i int) string {
			return doc.MorphAt(i).Case
		},
	}
}

// Case one-hot encodes the casing shape of the token over textutil.Shapes.
func Case() Feature {
	return oneHot{
		name:     NameCase,
		alphabet: vectorizer.NewAlphabet(textutil.Shapes...),
		fallback: textutil.ShapeOther,
		value: func(doc *corpus.Document, i int) string {
			return textutil.Shape(doc.Tokens[i].Text)
		},
	}
}
