package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/paperforge/internal/detector"
	"github.com/MeKo-Tech/paperforge/internal/pipeline"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

var detectCmd = &cobra.Command{
	Use:   "detect [image files...]",
	Short: "Suggest question bounding regions on page images",
	Long: `Run region suggestion on rendered booklet page images and print the
candidate question rectangles in reference frame coordinates.

Examples:
  paperforge detect page_003.png
  paperforge detect page_*.png --format text
  paperforge detect page_003.png --overlay-dir overlays/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().String("format", "json", "output format (json, text)")
	detectCmd.Flags().String("overlay-dir", "", "write page images with suggested regions outlined to this directory")
	rootCmd.AddCommand(detectCmd)
}

// detectFileResult is the per-file JSON output of the detect command.
type detectFileResult struct {
	File    string          `json:"file"`
	Frame   utils.FrameSize `json:"frame"`
	Regions []utils.Rect    `json:"regions"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	format, _ := cmd.Flags().GetString("format")
	overlayDir, _ := cmd.Flags().GetString("overlay-dir")

	det, err := detector.New(cfg.Detector)
	if err != nil {
		return err
	}
	suggester := pipeline.NewSuggester(det, cfg.Paper.Frame())

	results := make([]detectFileResult, 0, len(args))
	for _, path := range args {
		regions, img, err := suggester.SuggestFile(path)
		if err != nil {
			return err
		}
		results = append(results, detectFileResult{
			File:    path,
			Frame:   suggester.Frame(),
			Regions: regions,
		})

		if overlayDir != "" {
			if err := writeOverlay(path, overlayDir, img, regions, suggester.Frame()); err != nil {
				return err
			}
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "text":
		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d regions\n", res.File, len(res.Regions))
			for i, r := range res.Regions {
				fmt.Fprintf(cmd.OutOrStdout(), "  %2d: %s\n", i+1, r)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeOverlay renders the suggested regions onto the page image, mapped
// back from frame coordinates to the image's native resolution.
func writeOverlay(srcPath, dir string, img image.Image, regions []utils.Rect, frame utils.FrameSize) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create overlay directory %s: %w", dir, err)
	}

	canvas := imaging.Clone(img)
	b := canvas.Bounds()
	native := utils.FrameSize{Width: b.Dx(), Height: b.Dy()}
	outline := color.NRGBA{R: 230, G: 57, B: 70, A: 255}
	for _, r := range regions {
		utils.DrawRectOutline(canvas, utils.ScaleRect(r, frame, native), outline, 3)
	}

	out := filepath.Join(dir, filepath.Base(srcPath))
	if err := imaging.Save(canvas, out); err != nil {
		return fmt.Errorf("failed to write overlay %s: %w", out, err)
	}
	return nil
}
