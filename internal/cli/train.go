package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/nertag"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var trainFolder string
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "train <modelfile>",
		Short: "Train a tagger on a tagged corpus",
		Args:  cobra.ExactArgs(1),
		Example: `  nertag train model.json --train corpus/train
  nertag train model.json --train corpus/train -a logreg -w 3
  nertag train model.json --train corpus/train --config nertag.yaml -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			modelPath := args[0]
			slog.Info("Training tagger", "train", trainFolder, "algorithm", cfg.Algorithm, "output", modelPath)
			start := time.Now()
			tagger, err := nertag.Train(trainFolder, cfg)
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start), "width", tagger.Composite().Width())
			if err := tagger.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&trainFolder, "train", "t", "train", "Path to the tagged training corpus")
	flags.register(cmd)
	return cmd
}
