package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/nertag"
	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/model"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docs := map[string]string{
		"a": "1 0 3 Мэр O\n2 4 6 Москвы LOC\n3 11 6 Сергей PER\n",
		"b": "1 0 8 Владимир PER\n2 9 5 Путин PER\n3 15 7 посетил O\n4 23 6 Казань LOC\n",
		"c": "1 0 1 В O\n2 2 10 Петербурге LOC\n3 13 6 прошёл O\n",
	}
	for name, body := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+corpus.TokensExt), []byte(body), 0644))
	}
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New("test")
	c.rootCmd.SetArgs(append([]string{"--silent"}, args...))
	return c.Run()
}

func TestTrainAndTagCommands(t *testing.T) {
	data := writeCorpus(t)
	res := t.TempDir()
	modelPath := filepath.Join(t.TempDir(), "model.json")

	require.NoError(t, run(t, "train", modelPath, "--train", data, "-a", "majorclass", "--resources", res))
	require.FileExists(t, modelPath)

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, run(t, "tag", modelPath, "--test", data, "-o", out))
	for _, name := range []string{"a", "b", "c"} {
		assert.FileExists(t, filepath.Join(out, name+corpus.OutputExt))
	}
}

func TestRunCommandWritesTimestampedOutput(t *testing.T) {
	data := writeCorpus(t)
	out := t.TempDir()

	require.NoError(t, run(t, "run", "--train", data, "--test", data, "-o", out, "-a", "random", "--resources", t.TempDir()))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Name(), len(runDirLayout))
}

func TestEvaluateCommand(t *testing.T) {
	data := writeCorpus(t)
	assert.NoError(t, run(t, "evaluate", "--train", data, "--cv", "3", "-a", "majorclass", "--resources", t.TempDir()))
}

func TestUnsupportedAlgorithm(t *testing.T) {
	data := writeCorpus(t)
	err := run(t, "train", filepath.Join(t.TempDir(), "m.json"), "--train", data, "-a", "cnn")
	assert.ErrorIs(t, err, model.ErrUnsupportedStrategy)
}

func TestPipelineFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nertag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: logreg\nwindow: 3\nworkers: 2\n"), 0644))

	var flags pipelineFlags
	cmd := &cobra.Command{Use: "x"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "-w", "1", "-n", "3"}))

	cfg, err := flags.config(cmd)
	require.NoError(t, err)
	assert.Equal(t, model.StrategyLogReg, cfg.Algorithm)
	assert.Equal(t, 1, cfg.Window)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, nertag.AffixConfig{Enabled: true, Length: 3}, cfg.Affixes)
}
