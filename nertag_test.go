package nertag

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/feature"
	"github.com/happyhackingspace/nertag/internal/morph"
	"github.com/happyhackingspace/nertag/internal/textutil"
	"github.com/happyhackingspace/nertag/model"
)

var sentences = [][2][]string{
	{{"Мэр", "Москвы", "Сергей", "Собянин", "открыл", "парк", "."}, {"O", "LOC", "PER", "PER", "O", "O", "O"}},
	{{"Владимир", "Путин", "посетил", "Казань", "."}, {"PER", "PER", "O", "LOC", "O"}},
	{{"В", "Петербурге", "прошёл", "форум", "."}, {"O", "LOC", "O", "O", "O"}},
	{{"Иван", "Петров", "живёт", "в", "Москве", "."}, {"PER", "PER", "O", "O", "LOC", "O"}},
}

// writeCorpus writes one token-table file per sentence into a new directory.
func writeCorpus(t *testing.T, withTags bool) string {
	t.Helper()
	dir := t.TempDir()
	for n, s := range sentences {
		var b strings.Builder
		pos := 0
		for i, text := range s[0] {
			length := len([]rune(text))
			fmt.Fprintf(&b, "%d %d %d %s", 100+i, pos, length, text)
			if withTags {
				fmt.Fprintf(&b, " %s", s[1][i])
			}
			b.WriteString("\n")
			pos += length + 1
		}
		name := filepath.Join(dir, fmt.Sprintf("doc_%d%s", n, corpus.TokensExt))
		require.NoError(t, os.WriteFile(name, []byte(b.String()), 0644))
	}
	return dir
}

func testConfig(t *testing.T, algorithm string) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Algorithm = algorithm
	cfg.Resources.Folder = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Resources.Folder, cfg.Resources.Gazetteer), []byte("Москва\nМосквы\nКазань\n"), 0644))
	return cfg
}

func TestDefaultCompositeWidth(t *testing.T) {
	cfg := DefaultConfig()
	comp, err := BuildComposite(cfg, &Resources{}, corpus.Vocabulary{}, corpus.Vocabulary{})
	require.NoError(t, err)

	contextWidth := len(morph.POSTags) + len(textutil.Shapes) + len(morph.Cases) + 1 + 1
	assert.Equal(t, len(DefaultFeatures)+(2*cfg.Window+1)*contextWidth, comp.Width())

	layout := comp.Layout()
	assert.Equal(t, feature.NameLength, layout[0].Name)
	assert.Equal(t, "pos[-2]", layout[len(DefaultFeatures)].Name)
	assert.Equal(t, "punct[+2]", layout[len(layout)-1].Name)
}

func TestBaselineCompositeIsEmpty(t *testing.T) {
	for _, alg := range []string{model.StrategyMajorClass, model.StrategyRandom} {
		cfg := DefaultConfig()
		cfg.Algorithm = alg
		comp, err := BuildComposite(cfg, nil, corpus.Vocabulary{}, corpus.Vocabulary{})
		require.NoError(t, err)
		assert.Equal(t, 0, comp.Width(), alg)

		cfg.BaselineFeatures = true
		comp, err = BuildComposite(cfg, nil, corpus.Vocabulary{}, corpus.Vocabulary{})
		require.NoError(t, err)
		assert.Positive(t, comp.Width(), alg)
	}
}

func TestAffixesAndEmbeddingExtendComposite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Affixes.Enabled = true
	cfg.ContextFeatures = nil
	comp, err := BuildComposite(cfg, nil, corpus.NewVocabulary("Мо"), corpus.NewVocabulary("ва"))
	require.NoError(t, err)
	layout := comp.Layout()
	assert.Equal(t, feature.NamePrefix, layout[len(layout)-2].Name)
	assert.Equal(t, feature.NameSuffix, layout[len(layout)-1].Name)

	cfg.Embedding.Enabled = true
	_, err = BuildComposite(cfg, nil, corpus.Vocabulary{}, corpus.Vocabulary{})
	assert.ErrorIs(t, err, feature.ErrUnknownFeature)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nertag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
algorithm: logreg
window: 1
affixes:
  enabled: true
  length: 3
context_features: [pos, punct]
logreg:
  c: 2
  max_iter: 30
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.StrategyLogReg, cfg.Algorithm)
	assert.Equal(t, 1, cfg.Window)
	assert.Equal(t, AffixConfig{Enabled: true, Length: 3}, cfg.Affixes)
	assert.Equal(t, []string{"pos", "punct"}, cfg.ContextFeatures)
	assert.Equal(t, DefaultFeatures, cfg.Features)
	assert.Equal(t, model.LogRegConfig{C: 2, MaxIter: 30}, cfg.LogReg)
	assert.Equal(t, FormatTokens, cfg.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	_, err := LoadConfig(write("alg.yaml", "algorithm: cnn\n"))
	assert.ErrorIs(t, err, model.ErrUnsupportedStrategy)

	_, err = LoadConfig(write("unknown.yaml", "algorythm: svm\n"))
	assert.Error(t, err)

	_, err = LoadConfig(write("window.yaml", "window: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTrainUnsupportedStrategy(t *testing.T) {
	cfg := testConfig(t, "crf")
	_, err := Train(writeCorpus(t, true), cfg)
	assert.ErrorIs(t, err, model.ErrUnsupportedStrategy)
}

func TestTrainMajorClass(t *testing.T) {
	cfg := testConfig(t, model.StrategyMajorClass)
	tagger, err := Train(writeCorpus(t, true), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, tagger.Composite().Width())

	coll, tags, err := tagger.TagDir(context.Background(), writeCorpus(t, false))
	require.NoError(t, err)
	for _, doc := range coll.Documents() {
		require.Len(t, tags[doc.Name], doc.Len())
		for _, tag := range tags[doc.Name] {
			assert.Equal(t, "O", tag)
		}
	}
}

func TestTrainSaveLoadRoundTrip(t *testing.T) {
	cfg := testConfig(t, model.StrategyLogReg)
	cfg.Affixes.Enabled = true
	cfg.Workers = 3
	cfg.LogReg.MaxIter = 30

	tagger, err := Train(writeCorpus(t, true), cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "models", ModelFile)
	require.NoError(t, tagger.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tagger.Composite().Layout(), loaded.Composite().Layout())
	assert.Equal(t, cfg, loaded.Config())

	ctx := context.Background()
	test := writeCorpus(t, false)
	_, want, err := tagger.TagDir(ctx, test)
	require.NoError(t, err)
	coll, got, err := loaded.TagDir(ctx, test)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, corpus.WriteCollection(out, coll, got))
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, len(sentences))
}

func TestLoadRejectsLayoutDrift(t *testing.T) {
	cfg := testConfig(t, model.StrategyLogReg)
	cfg.LogReg.MaxIter = 5
	tagger, err := Train(writeCorpus(t, true), cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ModelFile)
	require.NoError(t, tagger.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	var saved Config
	require.NoError(t, json.Unmarshal(raw["config"], &saved))
	saved.Window = 1
	raw["config"], err = json.Marshal(saved)
	require.NoError(t, err)
	data, err = json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	assert.ErrorIs(t, err, feature.ErrWidthMismatch)
}

func TestEvaluate(t *testing.T) {
	cfg := testConfig(t, model.StrategyMajorClass)
	result, err := Evaluate(context.Background(), writeCorpus(t, true), cfg, &EvalConfig{Folds: 2})
	require.NoError(t, err)

	total := 0
	for _, s := range sentences {
		total += len(s[0])
	}
	assert.Equal(t, total, result.Total)
	assert.InDelta(t, float64(result.Correct)/float64(total), result.Accuracy, 1e-12)
	assert.Equal(t, []string{"LOC", "O", "PER"}, result.Classes)
	assert.Equal(t, 1.0, result.Recall["O"])
	assert.Equal(t, 0.0, result.Recall["PER"])
	assert.GreaterOrEqual(t, result.MacroF1, 0.0)
	assert.LessOrEqual(t, result.MacroF1, 1.0)
}

func TestEvaluateNeedsTwoDocuments(t *testing.T) {
	doc, err := corpus.NewDocument("only", []corpus.Token{{ID: 0, Text: "x"}}, []string{"O"}, nil, nil)
	require.NoError(t, err)
	coll, err := corpus.NewCollection(doc)
	require.NoError(t, err)

	_, err = EvaluateCollection(context.Background(), coll, DefaultConfig(), nil, nil)
	assert.Error(t, err)
}

func TestGroupKFold(t *testing.T) {
	folds := groupKFold([]int{0, 0, 1, 2, 2, 3}, 2)
	assert.Equal(t, [][]int{{0, 1, 3, 4}, {2, 5}}, folds)

	folds = groupKFold([]int{5, 6}, 10)
	assert.Len(t, folds, 2)

	assert.Equal(t, []bool{false, true, false, true}, makeTestSet(4, []int{1, 3}))
}

func TestNewWithoutModel(t *testing.T) {
	if _, err := os.Stat(ModelFile); err == nil {
		t.Skip("model.json present, skipping")
	}
	t.Setenv("HOME", t.TempDir())
	_, err := New()
	assert.Error(t, err)
}
