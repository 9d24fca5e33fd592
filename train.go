package nertag

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/model"
)

// Train trains a tagger on the tagged corpus in dataDir.
func Train(dataDir string, cfg Config) (*Tagger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := LoadResources(cfg)
	if err != nil {
		return nil, err
	}
	coll, err := ReadCorpus(dataDir, cfg.Format, res.Analyzer(), true)
	if err != nil {
		return nil, err
	}
	if coll.Len() == 0 {
		return nil, fmt.Errorf("nertag: no documents found in %s", dataDir)
	}
	return TrainCollection(coll, cfg, res)
}

// TrainCollection trains a tagger on the tagged documents of coll. Affix
// sets are derived from coll.
func TrainCollection(coll *corpus.Collection, cfg Config, res *Resources) (*Tagger, error) {
	trainer, err := model.NewTrainer(cfg.Algorithm, cfg.TrainerConfig())
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}

	prefixes, suffixes := affixSets(cfg, coll)
	comp, err := BuildComposite(cfg, res, prefixes, suffixes)
	if err != nil {
		return nil, err
	}

	data, err := feature.Assemble(coll, comp)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	slog.Debug("Training vectors assembled", "vectors", len(data), "width", comp.Width())

	m, err := trainer.Train(data)
	if err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}
	if err := model.CheckWidth(m, comp.Width()); err != nil {
		return nil, fmt.Errorf("nertag: %w", err)
	}

	return &Tagger{
		cfg:       cfg,
		res:       res,
		composite: comp,
		model:     m,
		prefixes:  prefixes,
		suffixes:  suffixes,
	}, nil
}

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	Folds int
}

// EvalResult holds cross-validation evaluation results. Confusion is
// indexed [gold][predicted].
type EvalResult struct {
	Accuracy   float64
	Correct    int
	Total      int
	MacroF1    float64
	WeightedF1 float64
	Classes    []string
	Confusion  map[string]map[string]int
	Precision  map[string]float64
	Recall     map[string]float64
	F1         map[string]float64
}

// Evaluate runs document-grouped cross-validation on the tagged corpus in
// dataDir. Every fold trains a fresh tagger, affix sets included, on the
// remaining documents.
func Evaluate(ctx context.Context, dataDir string, cfg Config, config *EvalConfig) (*EvalResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := LoadResources(cfg)
	if err != nil {
		return nil, err
	}
	coll, err := ReadCorpus(dataDir, cfg.Format, res.Analyzer(), true)
	if err != nil {
		return nil, err
	}
	if coll.Len() == 0 {
		return nil, fmt.Errorf("nertag: no documents found in %s", dataDir)
	}
	return EvaluateCollection(ctx, coll, cfg, res, config)
}

// EvaluateCollection runs cross-validation over the documents of coll.
func EvaluateCollection(ctx context.Context, coll *corpus.Collection, cfg Config, res *Resources, config *EvalConfig) (*EvalResult, error) {
	nFolds := 10
	if config != nil && config.Folds > 0 {
		nFolds = config.Folds
	}
	if coll.Len() < 2 {
		return nil, fmt.Errorf("nertag: cross-validation needs at least 2 documents, got %d", coll.Len())
	}

	groups := make([]int, coll.Len())
	for i := range groups {
		groups[i] = i
	}
	folds := groupKFold(groups, nFolds)

	result := &EvalResult{Confusion: make(map[string]map[string]int)}
	for k, testIdx := range folds {
		testSet := makeTestSet(coll.Len(), testIdx)
		var trainIdx []int
		for i, isTest := range testSet {
			if !isTest {
				trainIdx = append(trainIdx, i)
			}
		}

		tagger, err := TrainCollection(coll.Subset(trainIdx), cfg, res)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}
		test := coll.Subset(testIdx)
		predicted, err := tagger.Tag(ctx, test)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}
		for _, doc := range test.Documents() {
			for i, gold := range doc.Tags {
				result.add(gold, predicted[doc.Name][i])
			}
		}
		slog.Debug("Fold evaluated", "fold", k, "train", len(trainIdx), "test", len(testIdx))
	}
	result.finish()
	return result, nil
}

func (r *EvalResult) add(gold, pred string) {
	if r.Confusion[gold] == nil {
		r.Confusion[gold] = make(map[string]int)
	}
	r.Confusion[gold][pred]++
	if gold == pred {
		r.Correct++
	}
	r.Total++
}

// finish derives accuracy and per-class metrics from the confusion matrix.
func (r *EvalResult) finish() {
	classSet := make(map[string]bool)
	for gold, row := range r.Confusion {
		classSet[gold] = true
		for pred := range row {
			classSet[pred] = true
		}
	}
	r.Classes = make([]string, 0, len(classSet))
	for cls := range classSet {
		r.Classes = append(r.Classes, cls)
	}
	sort.Strings(r.Classes)

	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}

	r.Precision = make(map[string]float64, len(r.Classes))
	r.Recall = make(map[string]float64, len(r.Classes))
	r.F1 = make(map[string]float64, len(r.Classes))
	for _, cls := range r.Classes {
		tp := r.Confusion[cls][cls]
		support, predicted := 0, 0
		for _, n := range r.Confusion[cls] {
			support += n
		}
		for _, row := range r.Confusion {
			predicted += row[cls]
		}
		if predicted > 0 {
			r.Precision[cls] = float64(tp) / float64(predicted)
		}
		if support > 0 {
			r.Recall[cls] = float64(tp) / float64(support)
		}
		if p, rec := r.Precision[cls], r.Recall[cls]; p+rec > 0 {
			r.F1[cls] = 2 * p * rec / (p + rec)
		}
		r.MacroF1 += r.F1[cls]
		r.WeightedF1 += r.F1[cls] * float64(support)
	}
	if len(r.Classes) > 0 {
		r.MacroF1 /= float64(len(r.Classes))
	}
	if r.Total > 0 {
		r.WeightedF1 /= float64(r.Total)
	}
}

// groupKFold assigns whole groups to folds round-robin in group order, so
// members of a group never straddle train and test.
func groupKFold(groups []int, nFolds int) [][]int {
	uniqueGroups := make(map[int]bool)
	for _, g := range groups {
		uniqueGroups[g] = true
	}
	sortedGroups := make([]int, 0, len(uniqueGroups))
	for g := range uniqueGroups {
		sortedGroups = append(sortedGroups, g)
	}
	sort.Ints(sortedGroups)

	if nFolds > len(sortedGroups) {
		nFolds = len(sortedGroups)
	}

	groupToFold := make(map[int]int)
	for i, g := range sortedGroups {
		groupToFold[g] = i % nFolds
	}

	folds := make([][]int, nFolds)
	for i, g := range groups {
		fold := groupToFold[g]
		folds[fold] = append(folds[fold], i)
	}
	return folds
}

func makeTestSet(n int, testIdx []int) []bool {
	set := make([]bool, n)
	for _, i := range testIdx {
		set[i] = true
	}
	return set
}
