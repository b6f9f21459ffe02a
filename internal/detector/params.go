package detector

import "fmt"

// Params holds the tuning constants of the region suggestion pipeline.
// Every value is empirically tuned against scanned exam booklets rather than
// derived, so they live here as named configuration instead of inline
// numbers in the algorithm.
type Params struct {
	// Working resolution bounds for the downsampled analysis image.
	MaxWorkingWidth  int `mapstructure:"max_working_width" yaml:"max_working_width" json:"max_working_width"`
	MinWorkingWidth  int `mapstructure:"min_working_width" yaml:"min_working_width" json:"min_working_width"`
	MinWorkingHeight int `mapstructure:"min_working_height" yaml:"min_working_height" json:"min_working_height"`

	// Luminance sampling and binarization.
	LumaSampleStride int     `mapstructure:"luma_sample_stride" yaml:"luma_sample_stride" json:"luma_sample_stride"`
	ThresholdScale   float64 `mapstructure:"threshold_scale" yaml:"threshold_scale" json:"threshold_scale"`
	ThresholdMin     float64 `mapstructure:"threshold_min" yaml:"threshold_min" json:"threshold_min"`
	ThresholdMax     float64 `mapstructure:"threshold_max" yaml:"threshold_max" json:"threshold_max"`

	// Cell grid binarization.
	CellSize     int     `mapstructure:"cell_size" yaml:"cell_size" json:"cell_size"`
	InkCellRatio float64 `mapstructure:"ink_cell_ratio" yaml:"ink_cell_ratio" json:"ink_cell_ratio"`

	// Component footprint filter, in cells.
	MinCellCount int `mapstructure:"min_cell_count" yaml:"min_cell_count" json:"min_cell_count"`
	MinCellSpan  int `mapstructure:"min_cell_span" yaml:"min_cell_span" json:"min_cell_span"`

	// Post-processing: plausible size bounds as fractions of the frame.
	MinWidthFrac  float64 `mapstructure:"min_width_frac" yaml:"min_width_frac" json:"min_width_frac"`
	MinHeightFrac float64 `mapstructure:"min_height_frac" yaml:"min_height_frac" json:"min_height_frac"`
	MaxWidthFrac  float64 `mapstructure:"max_width_frac" yaml:"max_width_frac" json:"max_width_frac"`
	MaxHeightFrac float64 `mapstructure:"max_height_frac" yaml:"max_height_frac" json:"max_height_frac"`

	// Merge and ordering.
	MergeIoU    float64 `mapstructure:"merge_iou" yaml:"merge_iou" json:"merge_iou"`
	RowBandFrac float64 `mapstructure:"row_band_frac" yaml:"row_band_frac" json:"row_band_frac"`

	// Final expansion, as fractions of the frame. Bottom padding exceeds
	// top padding so descenders and sub-question text stay inside the box.
	PadSideFrac   float64 `mapstructure:"pad_side_frac" yaml:"pad_side_frac" json:"pad_side_frac"`
	PadTopFrac    float64 `mapstructure:"pad_top_frac" yaml:"pad_top_frac" json:"pad_top_frac"`
	PadBottomFrac float64 `mapstructure:"pad_bottom_frac" yaml:"pad_bottom_frac" json:"pad_bottom_frac"`

	// Cap on the number of suggestions returned.
	MaxRegions int `mapstructure:"max_regions" yaml:"max_regions" json:"max_regions"`
}

// DefaultParams returns the tuned defaults for scanned exam booklet pages.
func DefaultParams() Params {
	return Params{
		MaxWorkingWidth:  1200,
		MinWorkingWidth:  360,
		MinWorkingHeight: 480,
		LumaSampleStride: 7,
		ThresholdScale:   0.82,
		ThresholdMin:     80,
		ThresholdMax:     205,
		CellSize:         8,
		InkCellRatio:     0.08,
		MinCellCount:     6,
		MinCellSpan:      2,
		MinWidthFrac:     0.05,
		MinHeightFrac:    0.012,
		MaxWidthFrac:     0.98,
		MaxHeightFrac:    0.96,
		MergeIoU:         0.32,
		RowBandFrac:      0.015,
		PadSideFrac:      0.006,
		PadTopFrac:       0.004,
		PadBottomFrac:    0.010,
		MaxRegions:       40,
	}
}

// Validate checks the parameters for internal consistency.
func (p Params) Validate() error {
	if p.MaxWorkingWidth < 1 {
		return fmt.Errorf("max_working_width must be positive, got %d", p.MaxWorkingWidth)
	}
	if p.CellSize < 1 {
		return fmt.Errorf("cell_size must be positive, got %d", p.CellSize)
	}
	if p.InkCellRatio < 0 || p.InkCellRatio > 1 {
		return fmt.Errorf("ink_cell_ratio must be in [0,1], got %g", p.InkCellRatio)
	}
	if p.ThresholdScale <= 0 {
		return fmt.Errorf("threshold_scale must be positive, got %g", p.ThresholdScale)
	}
	if p.ThresholdMin > p.ThresholdMax {
		return fmt.Errorf("threshold_min %g exceeds threshold_max %g", p.ThresholdMin, p.ThresholdMax)
	}
	if p.MergeIoU <= 0 || p.MergeIoU > 1 {
		return fmt.Errorf("merge_iou must be in (0,1], got %g", p.MergeIoU)
	}
	if p.MaxRegions < 1 {
		return fmt.Errorf("max_regions must be positive, got %d", p.MaxRegions)
	}
	return nil
}
