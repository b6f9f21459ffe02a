package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/paperforge/internal/pdf"
)

var pagesCmd = &cobra.Command{
	Use:   "pages [booklet.pdf]",
	Short: "Extract rasterized page images from an exam booklet PDF",
	Long: `Extract the page images embedded in a scanned exam booklet so they can be
marked up in a page-edit session.

Examples:
  paperforge pages booklet.pdf
  paperforge pages booklet.pdf --out pages/ --pages 1,2,3`,
	Args: cobra.ExactArgs(1),
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().String("out", "pages", "output directory for page images")
	pagesCmd.Flags().IntSlice("pages", nil, "page numbers to extract (default all)")
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	pages, _ := cmd.Flags().GetIntSlice("pages")

	images, err := pdf.ExtractPageImages(args[0], pages)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no page images found in %s", args[0])
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	for _, page := range pdf.SortedPages(images) {
		out := filepath.Join(outDir, fmt.Sprintf("page_%03d.png", page))
		if err := imaging.Save(images[page], out); err != nil {
			return fmt.Errorf("failed to write page %d: %w", page, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
	}
	return nil
}
