package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/nertag"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var trainFolder string
	var cvFolds int
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate tagging accuracy via cross-validation",
		Example: `  nertag evaluate --train corpus/train --cv 10
  nertag evaluate --train corpus/train --cv 5 -a logreg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			slog.Info("Evaluating", "folds", cvFolds, "train", trainFolder, "algorithm", cfg.Algorithm)
			start := time.Now()
			result, err := nertag.Evaluate(cmd.Context(), trainFolder, cfg, &nertag.EvalConfig{Folds: cvFolds})
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			fmt.Printf("Token accuracy: %.1f%% (%d/%d)\n",
				result.Accuracy*100, result.Correct, result.Total)
			fmt.Printf("Macro F1: %.1f%%  Weighted F1: %.1f%%\n",
				result.MacroF1*100, result.WeightedF1*100)
			printConfusionMatrix(result.Confusion, append([]string(nil), result.Classes...))
			printClassReport(result.Confusion, result.Classes, result.Precision, result.Recall, result.F1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&trainFolder, "train", "t", "train", "Path to the tagged corpus")
	cmd.Flags().IntVar(&cvFolds, "cv", 10, "Number of cross-validation folds")
	flags.register(cmd)
	return cmd
}

func printClassReport(confusion map[string]map[string]int, classes []string, precision, recall, f1 map[string]float64) {
	fmt.Printf("\nPer-class metrics:\n")
	fmt.Printf("%8s  %6s  %6s  %6s  %7s\n", "class", "prec", "recall", "f1", "support")
	for _, cls := range classes {
		support := 0
		for _, v := range confusion[cls] {
			support += v
		}
		fmt.Printf("%8s  %5.1f%%  %5.1f%%  %5.1f%%  %7d\n",
			cls, precision[cls]*100, recall[cls]*100, f1[cls]*100, support)
	}
}

// printConfusionMatrix prints rows ordered by support, largest first.
func printConfusionMatrix(confusion map[string]map[string]int, classes []string) {
	if len(confusion) == 0 {
		return
	}

	support := func(cls string) int {
		total := 0
		for _, v := range confusion[cls] {
			total += v
		}
		return total
	}
	sort.SliceStable(classes, func(i, j int) bool {
		return support(classes[i]) > support(classes[j])
	})

	fmt.Printf("\nConfusion matrix (rows=true, cols=predicted):\n")
	fmt.Printf("%8s", "")
	for _, c := range classes {
		fmt.Printf(" %5s", c)
	}
	fmt.Printf("  total  acc%%\n")

	for _, trueClass := range classes {
		fmt.Printf("%8s", trueClass)
		total, correct := 0, 0
		for _, predClass := range classes {
			count := confusion[trueClass][predClass]
			total += count
			if trueClass == predClass {
				correct = count
			}
			if count == 0 {
				fmt.Printf(" %5s", ".")
			} else {
				fmt.Printf(" %5d", count)
			}
		}
		acc := 0.0
		if total > 0 {
			acc = float64(correct) / float64(total) * 100
		}
		fmt.Printf("  %5d %5.1f\n", total, acc)
	}
}
