package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/nertag"
)

// runDirLayout names the per-run output sub-directory.
const runDirLayout = "2006-01-02_15-04-05"

func (c *CLI) newRunCommand() *cobra.Command {
	var trainFolder, testFolder, outputFolder, modelPath string
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train on one corpus and tag another in a single pass",
		Args:  cobra.NoArgs,
		Example: `  # Train an SVM and write entities into output/<timestamp>
  nertag run -a svm --train corpus/train --test corpus/test -o output

  # Majority-class baseline
  nertag run -a majorclass --train corpus/train --test corpus/test

  # Keep the trained model
  nertag run --train corpus/train --test corpus/test --save model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			slog.Info("Training tagger", "train", trainFolder, "algorithm", cfg.Algorithm)
			tagger, err := nertag.Train(trainFolder, cfg)
			if err != nil {
				return err
			}
			slog.Info("Training finished", "duration", time.Since(start))

			if modelPath != "" {
				if err := tagger.Save(modelPath); err != nil {
					return err
				}
				slog.Info("Model saved", "path", modelPath)
			}

			out := filepath.Join(outputFolder, start.Format(runDirLayout))
			if err := tagAndWrite(cmd, tagger, testFolder, out); err != nil {
				return err
			}
			fmt.Printf("Output path:\n %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&trainFolder, "train", "t", "train", "Path to the tagged training corpus")
	cmd.Flags().StringVar(&testFolder, "test", "test", "Path to the corpus to tag")
	cmd.Flags().StringVarP(&outputFolder, "output", "o", "output", "Output folder; a timestamped sub-folder is created")
	cmd.Flags().StringVar(&modelPath, "save", "", "Also save the trained model to this file")
	flags.register(cmd)
	return cmd
}
