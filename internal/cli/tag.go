package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/nertag"
	"github.com/happyhackingspace/nertag/corpus"
)

func (c *CLI) newTagCommand() *cobra.Command {
	var testFolder, outputFolder, resources string

	cmd := &cobra.Command{
		Use:   "tag [modelfile]",
		Short: "Tag a corpus with a trained model and write entity files",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Tag with an explicit model file
  nertag tag model.json --test corpus/test -o output

  # Auto-detect model.json in the working tree or ~/.nertag
  nertag tag --test corpus/test -o output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			tagger, err := loadTagger(args, resources)
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "duration", time.Since(start))

			return tagAndWrite(cmd, tagger, testFolder, outputFolder)
		},
	}

	cmd.Flags().StringVar(&testFolder, "test", "test", "Path to the corpus to tag")
	cmd.Flags().StringVarP(&outputFolder, "output", "o", "output", "Output folder for entity files")
	cmd.Flags().StringVar(&resources, "resources", "", "Override the resource folder saved with the model")
	return cmd
}

func loadTagger(args []string, resources string) (*nertag.Tagger, error) {
	if len(args) == 0 {
		slog.Debug("Searching for model", "name", nertag.ModelFile)
		return nertag.New()
	}
	slog.Debug("Loading model", "path", args[0])
	return nertag.LoadWithResources(args[0], resources)
}

func tagAndWrite(cmd *cobra.Command, tagger *nertag.Tagger, testFolder, outputFolder string) error {
	start := time.Now()
	coll, tags, err := tagger.TagDir(cmd.Context(), testFolder)
	if err != nil {
		return err
	}
	slog.Debug("Tagging completed", "documents", coll.Len(), "duration", time.Since(start))

	if err := corpus.WriteCollection(outputFolder, coll, tags); err != nil {
		return err
	}
	slog.Info("Entities written", "documents", coll.Len(), "output", outputFolder)
	return nil
}
