package nertag

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/model"
)

// Corpus formats accepted by ReadCorpus.
const (
	FormatTokens = "tokens"
	FormatEnamex = "enamex"
)

// DefaultFeatures is the ordered list of token-level features.
var DefaultFeatures = []string{
	feature.NameLength,
	feature.NameNumbers,
	feature.NamePosition,
	feature.NameConcordCase,
	feature.NameDF,
	feature.NameLetters,
	feature.NameGazetteer,
	feature.NameLowerCase,
	feature.NameSpecChars,
	feature.NameStopWords,
}

// DefaultContextFeatures are evaluated at every offset of the window.
var DefaultContextFeatures = []string{
	feature.NamePOS,
	feature.NameCase,
	feature.NameMorphoCase,
	feature.NamePunct,
}

// AffixConfig controls the prefix and suffix features.
type AffixConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Length  int  `yaml:"length" json:"length"`
}

// EmbeddingConfig controls the word-embedding feature.
type EmbeddingConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// ResourceConfig names the files of the resource folder.
type ResourceConfig struct {
	Folder     string `yaml:"folder" json:"folder"`
	Gazetteer  string `yaml:"gazetteer" json:"gazetteer"`
	StopWords  string `yaml:"stop_words" json:"stop_words"`
	Lexicon    string `yaml:"lexicon" json:"lexicon"`
	Embeddings string `yaml:"embeddings" json:"embeddings"`
}

// Config describes the tagging pipeline: how corpora are read, which
// features make up the vector and which strategy is trained on it.
type Config struct {
	Algorithm        string             `yaml:"algorithm" json:"algorithm"`
	Format           string             `yaml:"format" json:"format"`
	Window           int                `yaml:"window" json:"window"`
	Affixes          AffixConfig        `yaml:"affixes" json:"affixes"`
	Features         []string           `yaml:"features" json:"features"`
	ContextFeatures  []string           `yaml:"context_features" json:"context_features"`
	Embedding        EmbeddingConfig    `yaml:"embedding" json:"embedding"`
	Resources        ResourceConfig     `yaml:"resources" json:"resources"`
	BaselineFeatures bool               `yaml:"baseline_features" json:"baseline_features"`
	Workers          int                `yaml:"workers" json:"workers"`
	Seed             uint64             `yaml:"seed" json:"seed"`
	SVM              model.SVMConfig    `yaml:"svm" json:"svm"`
	LogReg           model.LogRegConfig `yaml:"logreg" json:"logreg"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:       model.StrategySVM,
		Format:          FormatTokens,
		Window:          2,
		Affixes:         AffixConfig{Length: 2},
		Features:        append([]string(nil), DefaultFeatures...),
		ContextFeatures: append([]string(nil), DefaultContextFeatures...),
		Resources: ResourceConfig{
			Folder:     "resources",
			Gazetteer:  "gazetteer.txt",
			StopWords:  "stop_words.txt",
			Lexicon:    "lexicon.txt",
			Embeddings: "embeddings.txt",
		},
		Workers: 1,
		SVM:     model.DefaultSVMConfig(),
		LogReg:  model.DefaultLogRegConfig(),
	}
}

// LoadConfig reads a YAML config. Keys missing from the file keep their
// default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("nertag: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("nertag: config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the config for values no pipeline can run with.
func (c Config) Validate() error {
	var errs []error
	if _, err := model.NewTrainer(c.Algorithm, c.TrainerConfig()); err != nil {
		errs = append(errs, err)
	}
	if c.Format != FormatTokens && c.Format != FormatEnamex {
		errs = append(errs, fmt.Errorf("unknown corpus format %q", c.Format))
	}
	if c.Window < 0 {
		errs = append(errs, fmt.Errorf("window must not be negative, got %d", c.Window))
	}
	if c.Affixes.Enabled && c.Affixes.Length <= 0 {
		errs = append(errs, fmt.Errorf("affix length must be positive, got %d", c.Affixes.Length))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("nertag: invalid config: %w", err)
	}
	return nil
}

// TrainerConfig returns the strategy parameters of the config.
func (c Config) TrainerConfig() model.TrainerConfig {
	return model.TrainerConfig{
		Seed:   c.Seed,
		SVM:    c.SVM,
		LogReg: c.LogReg,
	}
}

// baseline reports whether the algorithm ignores its input vectors.
func (c Config) baseline() bool {
	return c.Algorithm == model.StrategyMajorClass || c.Algorithm == model.StrategyRandom
}
