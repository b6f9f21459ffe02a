package pipeline

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/MeKo-Tech/paperforge/internal/allocator"
	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pdf"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// Generator builds practice papers from an exam's approved candidate pool.
type Generator struct {
	store  *exam.Store
	source PageSource
}

// NewGenerator creates a Generator over a pool store and a page source.
func NewGenerator(store *exam.Store, source PageSource) *Generator {
	return &Generator{store: store, source: source}
}

// Generate builds one practice paper. Category counts come from the
// allocator; which candidates fill each category's count is randomized by
// the request seed, so the same request with the same seed reproduces the
// same paper.
func (g *Generator) Generate(req PaperRequest, progress ProgressFunc) (*PaperResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	report := func(stage string, done, total int) {
		if progress != nil {
			progress(stage, done, total)
		}
	}
	start := time.Now()

	pool, err := g.store.Load(req.Exam)
	if err != nil {
		return nil, err
	}
	approved := exam.FilterApproved(pool.Candidates)
	buckets := exam.BucketByCategory(approved)

	// No configured ratios means an even split across the pool's categories.
	weights := req.Weights
	if len(weights) == 0 {
		weights = make(map[string]float64, len(buckets))
		for _, b := range buckets {
			weights[b.Category] = 1
		}
	}

	report(StageAllocate, 0, 1)
	counts, err := allocator.Allocate(buckets, req.Total, weights)
	if err != nil {
		return nil, fmt.Errorf("allocation for %s failed: %w", req.Exam, err)
	}
	report(StageAllocate, 1, 1)

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // selection shuffle, not security

	picks := pickCandidates(approved, buckets, counts, rng)

	crops := make([]image.Image, 0, len(picks))
	for i, c := range picks {
		crop, err := g.cropQuestion(c)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
		report(StageCrop, i+1, len(picks))
	}

	report(StageCompose, 0, 1)
	layout := req.Layout
	if layout == (pdf.LayoutOptions{}) {
		layout = pdf.DefaultLayoutOptions()
	}
	pages, err := pdf.ComposePages(crops, layout)
	if err != nil {
		return nil, fmt.Errorf("composition for %s failed: %w", req.Exam, err)
	}
	report(StageCompose, 1, 1)

	report(StageWrite, 0, 1)
	if err := pdf.WritePaper(pages, req.Output); err != nil {
		return nil, err
	}
	report(StageWrite, 1, 1)

	slog.Info("practice paper generated",
		"exam", req.Exam,
		"questions", len(picks),
		"pages", len(pages),
		"seed", seed,
		"output", req.Output,
		"duration", time.Since(start))

	return &PaperResult{
		Exam:   req.Exam,
		Counts: counts,
		Picks:  picks,
		Pages:  len(pages),
		Seed:   seed,
		Output: req.Output,
	}, nil
}

// pickCandidates chooses counts[category] candidates per bucket at random
// without replacement, then shuffles the combined paper order. All
// randomness flows from the caller's rng.
func pickCandidates(approved []exam.Candidate, buckets []allocator.Bucket,
	counts allocator.Result, rng *rand.Rand,
) []exam.Candidate {
	byKey := make(map[string]exam.Candidate, len(approved))
	for _, c := range approved {
		byKey[c.Key()] = c
	}

	var picks []exam.Candidate
	for _, b := range buckets {
		n := counts[b.Category]
		if n == 0 {
			continue
		}
		keys := make([]string, len(b.Candidates))
		copy(keys, b.Candidates)
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for _, k := range keys[:n] {
			picks = append(picks, byKey[k])
		}
	}

	rng.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	return picks
}

// cropQuestion cuts a candidate's region out of its source page image,
// mapping the region from the reference page frame into the image's native
// resolution.
func (g *Generator) cropQuestion(c exam.Candidate) (image.Image, error) {
	img, err := g.source.PageImage(c.Page)
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", c.Key(), err)
	}
	b := img.Bounds()
	native := utils.ScaleRect(c.Region, utils.DefaultFrame,
		utils.FrameSize{Width: b.Dx(), Height: b.Dy()})
	if native.Empty() {
		return nil, fmt.Errorf("question %s: region %s is empty at page resolution", c.Key(), c.Region)
	}
	return utils.CropRect(img, native), nil
}
