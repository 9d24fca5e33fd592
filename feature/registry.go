package feature

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/nertag/corpus"
)

// ErrUnknownFeature is returned by New for names it does not recognise.
var ErrUnknownFeature = errors.New("feature: unknown feature")

// Resources holds the shared vocabularies features are built from. They are
// built once and only read afterwards.
type Resources struct {
	Gazetteer   corpus.Vocabulary
	StopWords   corpus.Vocabulary
	Prefixes    corpus.Vocabulary
	Suffixes    corpus.Vocabulary
	AffixLength int
	Embeddings  Embedder
}

// New builds the named feature from res.
func New(name string, res Resources) (Feature, error) {
	switch name {
	case NameLength:
		return Length(), nil
	case NameNumbers:
		return Numbers(), nil
	case NamePosition:
		return Position(), nil
	case NameConcordCase:
		return ConcordCase(), nil
	case NameDF:
		return DF(), nil
	case NameLetters:
		return Letters(), nil
	case NameGazetteer:
		return NewGazetteer(res.Gazetteer), nil
	case NameLowerCase:
		return LowerCase(), nil
	case NameSpecChars:
		return SpecChars(), nil
	case NameStopWords:
		return NewStopWords(res.StopWords), nil
	case NamePOS:
		return POS(), nil
	case NameCase:
		return Case(), nil
	case NameMorphoCase:
		return MorphoCase(), nil
	case NamePunct:
		return Punct(), nil
	case NamePrefix:
		return NewPrefix(res.Prefixes, res.AffixLength), nil
	case NameSuffix:
		return NewSuffix(res.Suffixes, res.AffixLength), nil
	case NameEmbedding:
		if res.Embeddings == nil {
			return nil, fmt.Errorf("%w: %s requires an embedding table", ErrUnknownFeature, name)
		}
		return NewEmbedding(res.Embeddings), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
}
