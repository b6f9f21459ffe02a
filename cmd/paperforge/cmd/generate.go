package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a randomized practice paper",
	Long: `Build a practice paper from an exam's approved question pool. The requested
total is split across categories by the given ratios; which questions fill
each category's share is randomized by the seed.

Examples:
  paperforge generate --exam 2024-midterm --booklet booklet.pdf --total 20 \
      --ratio algebra=60 --ratio geometry=40
  paperforge generate --exam 2024-midterm --booklet booklet.pdf --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("exam", "", "exam identifier (pool file name)")
	generateCmd.Flags().String("booklet", "", "source booklet PDF to crop question images from")
	generateCmd.Flags().Int("total", 0, "number of questions in the paper (default from config)")
	generateCmd.Flags().StringSlice("ratio", nil, "category weight as name=value (repeatable)")
	generateCmd.Flags().Int64("seed", 0, "selection seed (0 picks a fresh one)")
	generateCmd.Flags().String("output", "", "output PDF path")
	_ = generateCmd.MarkFlagRequired("exam")
	_ = generateCmd.MarkFlagRequired("booklet")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	examID, _ := cmd.Flags().GetString("exam")
	booklet, _ := cmd.Flags().GetString("booklet")
	total, _ := cmd.Flags().GetInt("total")
	ratios, _ := cmd.Flags().GetStringSlice("ratio")
	seed, _ := cmd.Flags().GetInt64("seed")
	output, _ := cmd.Flags().GetString("output")

	if total == 0 {
		total = cfg.Paper.DefaultTotal
	}
	if output == "" {
		output = filepath.Join(cfg.Paper.OutputDir,
			"paper_"+time.Now().UTC().Format("20060102_150405")+".pdf")
	}

	weights, err := parseRatios(ratios)
	if err != nil {
		return err
	}

	store, err := exam.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	source, err := pipeline.NewBookletSource(booklet, nil)
	if err != nil {
		return err
	}

	gen := pipeline.NewGenerator(store, source)
	result, err := gen.Generate(pipeline.PaperRequest{
		Exam:    examID,
		Total:   total,
		Weights: weights,
		Seed:    seed,
		Output:  output,
		Layout:  cfg.Paper.Layout,
	}, nil)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// parseRatios converts repeated name=value flags into a weight map. An empty
// flag list means equal weighting, which the pipeline resolves against the
// pool's categories.
func parseRatios(ratios []string) (map[string]float64, error) {
	weights := make(map[string]float64, len(ratios))
	for _, r := range ratios {
		name, value, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid ratio %q (expected name=value)", r)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio value in %q: %w", r, err)
		}
		weights[exam.NormalizeCategory(name)] = w
	}
	return weights, nil
}
