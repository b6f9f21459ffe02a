// Package allocator distributes a requested question count across topic
// categories in proportion to configured weights, capped by what each
// category actually has available. The method is largest-remainder
// (Hamilton) apportionment with an ordered top-up sweep for availability
// shortfalls.
package allocator

import "math"

// Bucket groups the question candidates of one category. Candidate
// identities are opaque to the allocator; only the category label and the
// count matter here.
type Bucket struct {
	Category   string
	Candidates []string
}

// Available returns the number of candidates in the bucket.
func (b Bucket) Available() int { return len(b.Candidates) }

// Result maps each category to its allocated question count. When Allocate
// succeeds, the counts sum exactly to the requested total and no category
// exceeds its availability.
type Result map[string]int

// Sum returns the total allocated count.
func (r Result) Sum() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Allocate distributes total across the bucket categories proportionally to
// weights. Categories missing from weights count as weight zero.
//
// Tie-breaking is deterministic: categories are visited in bucket order and
// exact score ties go to the first-seen category, so identical inputs always
// produce identical allocations.
func Allocate(buckets []Bucket, total int, weights map[string]float64) (Result, error) {
	if total < 0 {
		total = 0
	}

	cats := make([]string, 0, len(buckets))
	avail := make(map[string]int, len(buckets))
	for _, b := range buckets {
		if _, seen := avail[b.Category]; seen {
			// Duplicate bucket labels pool their candidates.
			avail[b.Category] += b.Available()
			continue
		}
		cats = append(cats, b.Category)
		avail[b.Category] = b.Available()
	}

	totalWeight := 0.0
	for _, c := range cats {
		totalWeight += weights[c]
	}
	if totalWeight <= 0 {
		return nil, ErrInsufficientWeight
	}

	// Ideal real-valued share per category, then floor capped by
	// availability: a category never receives more than it has.
	ideal := make(map[string]float64, len(cats))
	alloc := make(Result, len(cats))
	allocated := 0
	for _, c := range cats {
		ideal[c] = float64(total) * weights[c] / totalWeight
		n := int(math.Floor(ideal[c]))
		if n > avail[c] {
			n = avail[c]
		}
		alloc[c] = n
		allocated += n
	}

	remaining := total - allocated

	// Greedy remainder pass: hand out one unit at a time to the category
	// most under-served relative to its ideal share, among those with
	// spare availability.
	for remaining > 0 {
		best := ""
		bestScore := 0.0
		for _, c := range cats {
			if alloc[c] >= avail[c] {
				continue
			}
			score := ideal[c] - float64(alloc[c])
			if best == "" || score > bestScore {
				best = c
				bestScore = score
			}
		}
		if best == "" {
			break
		}
		alloc[best]++
		remaining--
	}

	// Ordered top-up sweep: when some categories were capped below their
	// ideal, fill the rest from categories with slack, in bucket order.
	for _, c := range cats {
		if remaining == 0 {
			break
		}
		for alloc[c] < avail[c] && remaining > 0 {
			alloc[c]++
			remaining--
		}
	}

	if remaining > 0 {
		return nil, &ShortfallError{Requested: total, Available: total - remaining}
	}
	return alloc, nil
}
