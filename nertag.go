// Package nertag tags the tokens of documents with named-entity classes.
//
// Every token is turned into a fixed-width vector by a composite of
// features and classified by a trained model.
//
//	cfg := nertag.DefaultConfig()
//	t, _ := nertag.Train("corpus/train", cfg)
//	coll, tags, _ := t.TagDir(ctx, "corpus/test")
//	_ = corpus.WriteCollection("out", coll, tags)
package nertag

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/model"
)

// ModelFile is the default file name of a saved tagger.
const ModelFile = "model.json"

// Tagger pairs a feature composite with the model trained on its vectors.
type Tagger struct {
	cfg       Config
	res       *Resources
	composite *feature.Composite
	model     model.Model
	prefixes  corpus.Vocabulary
	suffixes  corpus.Vocabulary
}

// bundle is the on-disk form of a Tagger.
type bundle struct {
	Config   Config            `json:"config"`
	Prefixes corpus.Vocabulary `json:"prefixes"`
	Suffixes corpus.Vocabulary `json:"suffixes"`
	Layout   []feature.Segment `json:"layout"`
	Width    int               `json:"width"`
	Model    json.RawMessage   `json:"model"`
}

// ModelDir returns the per-user directory searched for a saved tagger.
func ModelDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nertag"
	}
	return filepath.Join(home, ".nertag")
}

// New loads the tagger from "model.json", searching the current directory
// and parent directories up to the module root, then ModelDir.
func New() (*Tagger, error) {
	path, err := findModel(ModelFile)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	return Load(path)
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if path := filepath.Join(ModelDir(), name); fileExists(path) {
		return path, nil
	}
	return "", fmt.Errorf("%s not found", name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads a tagger saved by Save, resolving resources as configured at
// training time.
func Load(path string) (*Tagger, error) {
	return LoadWithResources(path, "")
}

// LoadWithResources reads a tagger saved by Save. A non-empty folder
// replaces the saved resource folder. The rebuilt composite must match the
// saved layout exactly.
func LoadWithResources(path, folder string) (*Tagger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("nertag: decode %s: %w", path, err)
	}
	m, err := model.Unmarshal(b.Model)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}

	cfg := b.Config
	if folder != "" {
		cfg.Resources.Folder = folder
	}
	res, err := LoadResources(cfg)
	if err != nil {
		return nil, err
	}
	comp, err := BuildComposite(cfg, res, b.Prefixes, b.Suffixes)
	if err != nil {
		return nil, err
	}
	if comp.Width() != b.Width || !slices.Equal(comp.Layout(), b.Layout) {
		return nil, fmt.Errorf("nertag: %w: saved composite has width %d, rebuilt has %d", feature.ErrWidthMismatch, b.Width, comp.Width())
	}
	if err := model.CheckWidth(m, comp.Width()); err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}

	return &Tagger{
		cfg:       cfg,
		res:       res,
		composite: comp,
		model:     m,
		prefixes:  b.Prefixes,
		suffixes:  b.Suffixes,
	}, nil
}

// Save writes the tagger to a model file.
func (t *Tagger) Save(path string) error {
	if t.model == nil {
		return fmt.Errorf("nertag: tagger not initialized")
	}
	raw, err := model.Marshal(t.model)
	if err != nil {
		return fmt.Errorf("nertag: %w", err)
	}
	data, err := json.Marshal(bundle{
		Config:   t.cfg,
		Prefixes: t.prefixes,
		Suffixes: t.suffixes,
		Layout:   t.composite.Layout(),
		Width:    t.composite.Width(),
		Model:    raw,
	})
	if err != nil {
		return fmt.Errorf("nertag: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("nertag: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("nertag: %w", err)
	}
	return nil
}

// Config returns the configuration the tagger was trained with.
func (t *Tagger) Config() Config { return t.cfg }

// Composite returns the feature composite of the tagger.
func (t *Tagger) Composite() *feature.Composite { return t.composite }

// Model returns the trained model.
func (t *Tagger) Model() model.Model { return t.model }

// Analyzer returns the morphological analyzer documents must be read with.
func (t *Tagger) Analyzer() corpus.MorphAnalyzer { return t.res.Analyzer() }

// TagDocument predicts one tag per token of doc.
func (t *Tagger) TagDocument(ctx context.Context, doc *corpus.Document) ([]string, error) {
	if t.model == nil {
		return nil, fmt.Errorf("nertag: tagger not initialized")
	}
	vectors, err := feature.Vectorize(doc, t.composite)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	tags, err := model.ParallelBatchPredict(ctx, t.model, vectors, t.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	return tags, nil
}

// Tag predicts the tags of every document of coll, keyed by document name.
// Gold tags present in coll are ignored.
func (t *Tagger) Tag(ctx context.Context, coll *corpus.Collection) (map[string][]string, error) {
	out := make(map[string][]string, coll.Len())
	for _, doc := range coll.Documents() {
		tags, err := t.TagDocument(ctx, doc)
		if err != nil {
			return nil, err
		}
		out[doc.Name] = tags
	}
	return out, nil
}

// TagDir reads the corpus in dir with the tagger's format and analyzer and
// tags it.
func (t *Tagger) TagDir(ctx context.Context, dir string) (*corpus.Collection, map[string][]string, error) {
	coll, err := ReadCorpus(dir, t.cfg.Format, t.Analyzer(), false)
	if err != nil {
		return nil, nil, err
	}
	tags, err := t.Tag(ctx, coll)
	if err != nil {
		return nil, nil, err
	}
	return coll, tags, nil
}

// ReadCorpus reads dir in the given format. Token tables are read with gold
// tags when tagged is set; ENAMEX files always carry them.
func ReadCorpus(dir, format string, analyzer corpus.MorphAnalyzer, tagged bool) (*corpus.Collection, error) {
	var (
		coll *corpus.Collection
		err  error
	)
	switch format {
	case FormatTokens, "":
		if tagged {
			coll, err = corpus.ReadTagged(dir, analyzer)
		} else {
			coll, err = corpus.ReadUntagged(dir, analyzer)
		}
	case FormatEnamex:
		coll, err = corpus.ReadEnamex(dir, analyzer)
	default:
		return nil, fmt.Errorf("nertag: unknown corpus format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	return coll, nil
}
