package nertag

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/internal/morph"
	"github.com/happyhackingspace/nertag/internal/storage"
)

// Resources are the shared read-only inputs of feature construction and
// corpus reading.
type Resources struct {
	Gazetteer  corpus.Vocabulary
	StopWords  corpus.Vocabulary
	Lexicon    *morph.Lexicon
	Embeddings *storage.Embeddings
}

// LoadResources reads the resource files named by cfg. The embedding table
// is only read when the embedding feature is enabled.
func LoadResources(cfg Config) (*Resources, error) {
	store := storage.NewStorage(cfg.Resources.Folder)

	gazetteer, err := optionalWordList(store, cfg.Resources.Gazetteer)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	stopWords, err := optionalWordList(store, cfg.Resources.StopWords)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	lexicon, err := store.Lexicon(cfg.Resources.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}

	res := &Resources{Gazetteer: gazetteer, StopWords: stopWords, Lexicon: lexicon}
	if cfg.Embedding.Enabled {
		res.Embeddings, err = store.Embeddings(cfg.Resources.Embeddings)
		if err != nil {
			return nil, fmt.Errorf("nertag: %w", err)
		}
		slog.Debug("Embeddings loaded", "words", res.Embeddings.Len(), "dim", res.Embeddings.Dim())
	}
	return res, nil
}

// optionalWordList reads a word list, treating a missing file as empty.
func optionalWordList(store *storage.Storage, name string) (corpus.Vocabulary, error) {
	if name == "" {
		return corpus.Vocabulary{}, nil
	}
	vocab, err := store.WordList(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Word list not found, feature will be constant", "path", store.Path(name))
			return corpus.Vocabulary{}, nil
		}
		return corpus.Vocabulary{}, err
	}
	return vocab, nil
}

// Analyzer returns the morphological analyzer of the resources.
func (r *Resources) Analyzer() corpus.MorphAnalyzer {
	if r == nil || r.Lexicon == nil {
		return morph.NewLexicon()
	}
	return r.Lexicon
}

// BuildComposite assembles the feature composite described by cfg.
// prefixes and suffixes are the affix sets of the training corpus. The
// majority and random baselines get an empty composite unless
// cfg.BaselineFeatures is set.
func BuildComposite(cfg Config, res *Resources, prefixes, suffixes corpus.Vocabulary) (*feature.Composite, error) {
	if cfg.baseline() && !cfg.BaselineFeatures {
		return feature.NewComposite(), nil
	}
	if res == nil {
		res = &Resources{}
	}

	fres := feature.Resources{
		Gazetteer:   res.Gazetteer,
		StopWords:   res.StopWords,
		Prefixes:    prefixes,
		Suffixes:    suffixes,
		AffixLength: cfg.Affixes.Length,
	}
	if res.Embeddings != nil {
		fres.Embeddings = res.Embeddings
	}

	names := append([]string(nil), cfg.Features...)
	if cfg.Affixes.Enabled {
		names = append(names, feature.NamePrefix, feature.NameSuffix)
	}
	if cfg.Embedding.Enabled {
		names = append(names, feature.NameEmbedding)
	}

	var features []feature.Feature
	for _, name := range names {
		f, err := feature.New(name, fres)
		if err != nil {
			return nil, fmt.Errorf("nertag: %w", err)
		}
		features = append(features, f)
	}

	var bases []feature.Feature
	for _, name := range cfg.ContextFeatures {
		f, err := feature.New(name, fres)
		if err != nil {
			return nil, fmt.Errorf("nertag: %w", err)
		}
		bases = append(bases, f)
	}
	features = append(features, feature.Window(cfg.Window, bases...)...)

	comp := feature.NewComposite(features...)
	slog.Debug("Feature composite built", "features", len(features), "width", comp.Width())
	return comp, nil
}

// affixSets returns the prefix and suffix sets of coll, or empty sets when
// affixes are disabled.
func affixSets(cfg Config, coll *corpus.Collection) (prefixes, suffixes corpus.Vocabulary) {
	if !cfg.Affixes.Enabled {
		return corpus.Vocabulary{}, corpus.Vocabulary{}
	}
	return coll.Prefixes(cfg.Affixes.Length), coll.Suffixes(cfg.Affixes.Length)
}
