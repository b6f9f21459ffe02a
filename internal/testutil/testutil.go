package testutil

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// SaveImage writes an image as PNG, failing the test on error.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	f, err := os.Create(path) //nolint:gosec // G304: test-controlled path
	require.NoError(t, err, "Failed to create file %s", path)
	defer func() { require.NoError(t, f.Close()) }()

	require.NoError(t, png.Encode(f, img), "Failed to encode PNG image")
}

// TempStore creates an exam pool store rooted in a fresh temp directory.
func TempStore(t *testing.T) *exam.Store {
	t.Helper()

	store, err := exam.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// ApprovedCandidate builds a valid approved candidate for tests.
func ApprovedCandidate(page, number int, category string, region utils.Rect) exam.Candidate {
	return exam.Candidate{
		Page:     page,
		Number:   number,
		Category: category,
		Status:   exam.StatusApproved,
		Region:   region,
		Version:  1,
	}
}
