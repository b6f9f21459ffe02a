package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage exam candidate pools",
}

var poolListCmd = &cobra.Command{
	Use:   "list [exam]",
	Short: "List the candidates of an exam pool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPoolList,
}

var poolAddCmd = &cobra.Command{
	Use:   "add [exam]",
	Short: "Add or replace a question candidate",
	Long: `Upsert a question candidate by its (page, question-number) key. The region
is given in reference frame coordinates (see paperforge detect).

Example:
  paperforge pool add 2024-midterm --page 3 --number 7 --category algebra \
      --rect 180,420,2100,560`,
	Args: cobra.ExactArgs(1),
	RunE: runPoolAdd,
}

var poolApproveCmd = &cobra.Command{
	Use:   "approve [exam]",
	Short: "Set the review status of a candidate",
	Args:  cobra.ExactArgs(1),
	RunE:  runPoolApprove,
}

func init() {
	poolAddCmd.Flags().Int("page", 0, "booklet page number")
	poolAddCmd.Flags().Int("number", 0, "question number on the page")
	poolAddCmd.Flags().String("category", "", "topic category label")
	poolAddCmd.Flags().IntSlice("rect", nil, "region as x,y,width,height in frame coordinates")

	poolApproveCmd.Flags().Int("page", 0, "booklet page number")
	poolApproveCmd.Flags().Int("number", 0, "question number on the page")
	poolApproveCmd.Flags().String("status", string(exam.StatusApproved), "review status (pending, approved, rejected)")

	poolCmd.AddCommand(poolListCmd, poolAddCmd, poolApproveCmd)
	rootCmd.AddCommand(poolCmd)
}

func openStore() (*exam.Store, error) {
	cfg := GetConfig()
	return exam.NewStore(cfg.DataDir)
}

func runPoolList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		exams, err := store.ListExams()
		if err != nil {
			return err
		}
		for _, e := range exams {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	}

	pool, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pool)
}

func runPoolAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	number, _ := cmd.Flags().GetInt("number")
	category, _ := cmd.Flags().GetString("category")
	rect, _ := cmd.Flags().GetIntSlice("rect")
	if len(rect) != 4 {
		return fmt.Errorf("--rect requires exactly 4 values (x,y,width,height), got %d", len(rect))
	}

	cand, err := store.Upsert(args[0], exam.Candidate{
		Page:     page,
		Number:   number,
		Category: category,
		Region:   utils.Rect{X: rect[0], Y: rect[1], Width: rect[2], Height: rect[3]},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s question %s (%s, v%d)\n",
		args[0], cand.Key(), cand.Category, cand.Version)
	return nil
}

func runPoolApprove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	number, _ := cmd.Flags().GetInt("number")
	status, _ := cmd.Flags().GetString("status")

	cand, err := store.SetStatus(args[0], page, number, exam.ReviewStatus(status))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "question %s is now %s\n", cand.Key(), cand.Status)
	return nil
}
