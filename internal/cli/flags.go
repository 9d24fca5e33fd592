package cli

import (
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/nertag"
)

// pipelineFlags are the flags shared by commands that train a tagger. A
// config file supplies the base values and explicitly set flags win.
type pipelineFlags struct {
	configPath string
	resources  string
	format     string
	algorithm  string
	window     int
	affixes    int
	workers    int
	seed       uint64
}

func (p *pipelineFlags) register(cmd *cobra.Command) {
	def := nertag.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&p.configPath, "config", "", "Path to YAML pipeline config")
	f.StringVar(&p.resources, "resources", def.Resources.Folder, "Resource folder (gazetteer, stop words, lexicon, embeddings)")
	f.StringVar(&p.format, "format", def.Format, `Corpus format: "tokens" or "enamex"`)
	f.StringVarP(&p.algorithm, "algorithm", "a", def.Algorithm, `Algorithm: "majorclass", "random", "svm" or "logreg"`)
	f.IntVarP(&p.window, "window", "w", def.Window, "Context window size")
	f.IntVarP(&p.affixes, "ngram-affixes", "n", def.Affixes.Length, "Affix length; enables prefix and suffix features")
	f.IntVar(&p.workers, "workers", def.Workers, "Parallel prediction workers")
	f.Uint64Var(&p.seed, "seed", def.Seed, "Random seed")
}

func (p *pipelineFlags) config(cmd *cobra.Command) (nertag.Config, error) {
	cfg := nertag.DefaultConfig()
	if p.configPath != "" {
		var err error
		if cfg, err = nertag.LoadConfig(p.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("resources") {
		cfg.Resources.Folder = p.resources
	}
	if f.Changed("format") {
		cfg.Format = p.format
	}
	if f.Changed("algorithm") {
		cfg.Algorithm = p.algorithm
	}
	if f.Changed("window") {
		cfg.Window = p.window
	}
	if f.Changed("ngram-affixes") {
		cfg.Affixes.Enabled = true
		cfg.Affixes.Length = p.affixes
	}
	if f.Changed("workers") {
		cfg.Workers = p.workers
	}
	if f.Changed("seed") {
		cfg.Seed = p.seed
	}
	return cfg, cfg.Validate()
}
