// Package exam holds the question candidate domain model and the pool store
// the authoring workflow reads and writes.
package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/MeKo-Tech/paperforge/internal/allocator"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// ReviewStatus tracks where a marked question region is in the review flow.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// DefaultCategory labels candidates whose category was left empty.
const DefaultCategory = "uncategorized"

// Candidate is one marked question region on a booklet page. Region is
// expressed in the reference page frame (utils.DefaultFrame), not in the
// native resolution of any particular rasterization.
type Candidate struct {
	Exam     string       `yaml:"exam" json:"exam"`
	Page     int          `yaml:"page" json:"page"`
	Number   int          `yaml:"number" json:"number"`
	Category string       `yaml:"category" json:"category"`
	Status   ReviewStatus `yaml:"status" json:"status"`
	Region   utils.Rect   `yaml:"region" json:"region"`
	Version  int          `yaml:"version" json:"version"`
	Updated  time.Time    `yaml:"updated,omitempty" json:"updated,omitempty"`
}

// Key identifies a candidate within its exam: one question number on one
// page. Upserts replace by this key.
func (c Candidate) Key() string {
	return fmt.Sprintf("%d/%d", c.Page, c.Number)
}

// Validate checks the candidate fields against the reference frame.
func (c Candidate) Validate() error {
	if c.Page < 1 {
		return fmt.Errorf("candidate %s: page must be positive", c.Key())
	}
	if c.Number < 1 {
		return fmt.Errorf("candidate %s: question number must be positive", c.Key())
	}
	switch c.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("candidate %s: unknown review status %q", c.Key(), c.Status)
	}
	r := c.Region
	if r.Empty() {
		return fmt.Errorf("candidate %s: region %s is degenerate", c.Key(), r)
	}
	if r.X < 0 || r.Y < 0 ||
		r.Right() > utils.DefaultFrame.Width || r.Bottom() > utils.DefaultFrame.Height {
		return fmt.Errorf("candidate %s: region %s outside the %dx%d page frame",
			c.Key(), r, utils.DefaultFrame.Width, utils.DefaultFrame.Height)
	}
	return nil
}

// NormalizeCategory trims a free-form category label and substitutes the
// default label for empty input. Normalization happens here, before
// candidates reach the allocator.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory
	}
	return s
}

// DedupeLatest keeps only the highest version per (page, question-number)
// key, preserving first-seen order of the surviving keys. Later entries win
// on equal versions, matching the store's upsert semantics.
func DedupeLatest(cands []Candidate) []Candidate {
	index := make(map[string]int, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if i, ok := index[c.Key()]; ok {
			if c.Version >= out[i].Version {
				out[i] = c
			}
			continue
		}
		index[c.Key()] = len(out)
		out = append(out, c)
	}
	return out
}

// FilterApproved returns only candidates that passed review.
func FilterApproved(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Status == StatusApproved {
			out = append(out, c)
		}
	}
	return out
}

// BucketByCategory groups candidates into allocator buckets keyed by their
// normalized category, preserving first-seen category order so allocation
// tie-breaking stays reproducible.
func BucketByCategory(cands []Candidate) []allocator.Bucket {
	order := make([]string, 0)
	byCat := make(map[string][]string)
	for _, c := range cands {
		cat := NormalizeCategory(c.Category)
		if _, ok := byCat[cat]; !ok {
			order = append(order, cat)
		}
		byCat[cat] = append(byCat[cat], c.Key())
	}

	buckets := make([]allocator.Bucket, 0, len(order))
	for _, cat := range order {
		buckets = append(buckets, allocator.Bucket{Category: cat, Candidates: byCat[cat]})
	}
	return buckets
}
