package pdf

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidCrop(w, h int) image.Image {
	return imaging.New(w, h, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
}

func TestLayoutOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    LayoutOptions
		wantErr bool
	}{
		{name: "defaults", opts: DefaultLayoutOptions()},
		{name: "zero page", opts: LayoutOptions{Margin: 10}, wantErr: true},
		{name: "negative margin", opts: LayoutOptions{PageWidth: 100, PageHeight: 100, Margin: -1}, wantErr: true},
		{name: "margins eat the page", opts: LayoutOptions{PageWidth: 100, PageHeight: 100, Margin: 50}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComposePagesSinglePage(t *testing.T) {
	opts := LayoutOptions{PageWidth: 400, PageHeight: 600, Margin: 40, Gap: 20}

	pages, err := ComposePages([]image.Image{solidCrop(200, 100), solidCrop(200, 100)}, opts)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, 400, page.Bounds().Dx())
	assert.Equal(t, 600, page.Bounds().Dy())

	// First crop lands at the margin; the second below it past the gap.
	assert.Equal(t, uint8(40), page.NRGBAAt(40, 40).R)
	assert.Equal(t, uint8(255), page.NRGBAAt(40, 150).R, "gap row stays white")
	assert.Equal(t, uint8(40), page.NRGBAAt(40, 160).R)
}

func TestComposePagesBreaksToNewPage(t *testing.T) {
	opts := LayoutOptions{PageWidth: 400, PageHeight: 600, Margin: 40, Gap: 20}

	// Content height is 520; three 250-tall crops need two pages.
	crops := []image.Image{solidCrop(200, 250), solidCrop(200, 250), solidCrop(200, 250)}
	pages, err := ComposePages(crops, opts)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestComposePagesScalesWideCrop(t *testing.T) {
	opts := LayoutOptions{PageWidth: 400, PageHeight: 600, Margin: 40, Gap: 20}

	pages, err := ComposePages([]image.Image{solidCrop(1000, 100)}, opts)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// The crop was wider than the 320px content area, so it was scaled to
	// fit and must not paint past the right margin.
	assert.Equal(t, uint8(255), pages[0].NRGBAAt(396, 50).R)
	assert.NotEqual(t, uint8(255), pages[0].NRGBAAt(45, 45).R)
}

func TestComposePagesOversizedCropGetsOwnPage(t *testing.T) {
	opts := LayoutOptions{PageWidth: 400, PageHeight: 600, Margin: 40, Gap: 20}

	crops := []image.Image{solidCrop(200, 100), solidCrop(300, 2000), solidCrop(200, 100)}
	pages, err := ComposePages(crops, opts)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
}

func TestComposePagesEmptyInput(t *testing.T) {
	pages, err := ComposePages(nil, DefaultLayoutOptions())
	require.NoError(t, err)
	assert.Len(t, pages, 1, "an empty paper still renders one blank page")
}

func TestComposePagesInvalidOptions(t *testing.T) {
	_, err := ComposePages([]image.Image{solidCrop(10, 10)}, LayoutOptions{})
	assert.Error(t, err)
}
