package allocator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(category string, n int) Bucket {
	candidates := make([]string, n)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("%s-%d", category, i)
	}
	return Bucket{Category: category, Candidates: candidates}
}

func TestAllocateProportional(t *testing.T) {
	tests := []struct {
		name    string
		buckets []Bucket
		total   int
		weights map[string]float64
		want    Result
	}{
		{
			name:    "even split on equal weights",
			buckets: []Bucket{bucket("algebra", 10), bucket("geometry", 10)},
			total:   10,
			weights: map[string]float64{"algebra": 1, "geometry": 1},
			want:    Result{"algebra": 5, "geometry": 5},
		},
		{
			name:    "sixty forty",
			buckets: []Bucket{bucket("algebra", 10), bucket("geometry", 10)},
			total:   10,
			weights: map[string]float64{"algebra": 0.6, "geometry": 0.4},
			want:    Result{"algebra": 6, "geometry": 4},
		},
		{
			name:    "remainder goes to most under-served",
			buckets: []Bucket{bucket("a", 10), bucket("b", 10), bucket("c", 10)},
			total:   10,
			weights: map[string]float64{"a": 1, "b": 1, "c": 1},
			// ideals 3.33 each, floors give 9, first-seen tie wins the unit
			want: Result{"a": 4, "b": 3, "c": 3},
		},
		{
			name:    "availability caps a heavy category",
			buckets: []Bucket{bucket("a", 3), bucket("b", 20)},
			total:   10,
			weights: map[string]float64{"a": 0.7, "b": 0.3},
			want:    Result{"a": 3, "b": 7},
		},
		{
			name:    "zero weight category gets nothing",
			buckets: []Bucket{bucket("a", 10), bucket("b", 10)},
			total:   6,
			weights: map[string]float64{"a": 1},
			want:    Result{"a": 6, "b": 0},
		},
		{
			name:    "zero total zero allocations",
			buckets: []Bucket{bucket("a", 5)},
			total:   0,
			weights: map[string]float64{"a": 1},
			want:    Result{"a": 0},
		},
		{
			name: "duplicate category labels pool availability",
			buckets: []Bucket{
				bucket("a", 2),
				{Category: "a", Candidates: []string{"x", "y"}},
			},
			total:   4,
			weights: map[string]float64{"a": 1},
			want:    Result{"a": 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.buckets, tt.total, tt.weights)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.total, got.Sum())
		})
	}
}

func TestAllocateShortfall(t *testing.T) {
	buckets := []Bucket{bucket("a", 4), bucket("b", 3)}

	_, err := Allocate(buckets, 10, map[string]float64{"a": 1, "b": 1})
	require.Error(t, err)

	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 10, shortfall.Requested)
	assert.Equal(t, 7, shortfall.Available)
	assert.Equal(t, 3, shortfall.Shortfall())
}

func TestAllocateInsufficientWeight(t *testing.T) {
	buckets := []Bucket{bucket("a", 5), bucket("b", 5)}

	tests := []struct {
		name    string
		weights map[string]float64
	}{
		{name: "nil weights"},
		{name: "all zero", weights: map[string]float64{"a": 0, "b": 0}},
		{name: "weights for unknown categories only", weights: map[string]float64{"c": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(buckets, 5, tt.weights)
			assert.True(t, errors.Is(err, ErrInsufficientWeight))
		})
	}
}

func TestAllocateTopUpSweep(t *testing.T) {
	// Heavy category is capped well below its ideal share; the slack must
	// land on the remaining categories in bucket order.
	buckets := []Bucket{bucket("a", 1), bucket("b", 6), bucket("c", 6)}
	got, err := Allocate(buckets, 10, map[string]float64{"a": 10, "b": 1, "c": 1})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Sum())
	assert.Equal(t, 1, got["a"])
	assert.LessOrEqual(t, got["b"], 6)
	assert.LessOrEqual(t, got["c"], 6)
}

func TestAllocateDeterministic(t *testing.T) {
	buckets := []Bucket{bucket("a", 7), bucket("b", 7), bucket("c", 7)}
	weights := map[string]float64{"a": 1, "b": 1, "c": 1}

	first, err := Allocate(buckets, 11, weights)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got, err := Allocate(buckets, 11, weights)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestAllocateNoBuckets(t *testing.T) {
	_, err := Allocate(nil, 5, map[string]float64{"a": 1})
	assert.True(t, errors.Is(err, ErrInsufficientWeight))
}
