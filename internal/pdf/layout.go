package pdf

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// LayoutOptions controls how question crops are placed onto output pages.
// Placement is plain top-to-bottom flow; nothing clever happens here.
type LayoutOptions struct {
	PageWidth  int `mapstructure:"page_width" yaml:"page_width" json:"page_width"`
	PageHeight int `mapstructure:"page_height" yaml:"page_height" json:"page_height"`
	Margin     int `mapstructure:"margin" yaml:"margin" json:"margin"`
	Gap        int `mapstructure:"gap" yaml:"gap" json:"gap"`
}

// DefaultLayoutOptions returns an A4-proportioned page at 150 DPI.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		PageWidth:  1240,
		PageHeight: 1754,
		Margin:     80,
		Gap:        48,
	}
}

// Validate checks the layout leaves a usable content area.
func (o LayoutOptions) Validate() error {
	if o.PageWidth < 1 || o.PageHeight < 1 {
		return fmt.Errorf("page size %dx%d must be positive", o.PageWidth, o.PageHeight)
	}
	if o.Margin < 0 || o.Gap < 0 {
		return fmt.Errorf("margin %d and gap %d must be non-negative", o.Margin, o.Gap)
	}
	if o.PageWidth-2*o.Margin < 1 || o.PageHeight-2*o.Margin < 1 {
		return fmt.Errorf("margins %d leave no content area on a %dx%d page",
			o.Margin, o.PageWidth, o.PageHeight)
	}
	return nil
}

// ComposePages flows question crops top-to-bottom onto white page canvases,
// starting a new page when the next crop no longer fits. Crops wider than
// the content area are scaled down to fit; a crop taller than a full page
// gets a page of its own, scaled to fit.
func ComposePages(crops []image.Image, opts LayoutOptions) ([]*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	contentWidth := opts.PageWidth - 2*opts.Margin
	contentHeight := opts.PageHeight - 2*opts.Margin

	var pages []*image.NRGBA
	page := imaging.New(opts.PageWidth, opts.PageHeight, color.White)
	y := opts.Margin
	used := false

	for _, crop := range crops {
		fitted := fitToContent(crop, contentWidth, contentHeight)
		h := fitted.Bounds().Dy()

		if used && y+h > opts.PageHeight-opts.Margin {
			pages = append(pages, page)
			page = imaging.New(opts.PageWidth, opts.PageHeight, color.White)
			y = opts.Margin
			used = false
		}

		page = imaging.Paste(page, fitted, image.Pt(opts.Margin, y))
		y += h + opts.Gap
		used = true
	}

	if used || len(pages) == 0 {
		pages = append(pages, page)
	}
	return pages, nil
}

// fitToContent scales a crop down to the content area, preserving aspect
// ratio. Crops already inside the area pass through untouched.
func fitToContent(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
