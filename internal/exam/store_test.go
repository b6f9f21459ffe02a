package exam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/paperforge/internal/utils"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testCandidate(page, number int) Candidate {
	return Candidate{
		Page:     page,
		Number:   number,
		Category: "algebra",
		Status:   StatusPending,
		Region:   utils.Rect{X: 100, Y: 200, Width: 800, Height: 400},
	}
}

func TestNewStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pools")
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)

	_, err = NewStore("")
	assert.Error(t, err)
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("nope")
	assert.True(t, errors.Is(err, ErrPoolNotFound))
}

func TestStoreUpsertAndLoad(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Upsert("math-2026", testCandidate(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "math-2026", saved.Exam)
	assert.Equal(t, 1, saved.Version)
	assert.Equal(t, StatusPending, saved.Status)
	assert.False(t, saved.Updated.IsZero())

	pool, err := store.Load("math-2026")
	require.NoError(t, err)
	assert.Equal(t, "math-2026", pool.Exam)
	require.Len(t, pool.Candidates, 1)
	assert.Equal(t, saved.Key(), pool.Candidates[0].Key())
}

func TestStoreUpsertReplaces(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upsert("math-2026", testCandidate(1, 1))
	require.NoError(t, err)

	update := testCandidate(1, 1)
	update.Category = "geometry"
	saved, err := store.Upsert("math-2026", update)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Version, "replacement bumps past the stored version")

	pool, err := store.Load("math-2026")
	require.NoError(t, err)
	require.Len(t, pool.Candidates, 1)
	assert.Equal(t, "geometry", pool.Candidates[0].Category)
}

func TestStoreUpsertValidates(t *testing.T) {
	store := newTestStore(t)

	bad := testCandidate(0, 1)
	_, err := store.Upsert("math-2026", bad)
	assert.Error(t, err)

	_, err = store.Load("math-2026")
	assert.True(t, errors.Is(err, ErrPoolNotFound), "rejected upsert must not create a pool")
}

func TestStoreUpsertDefaultsCategoryAndStatus(t *testing.T) {
	store := newTestStore(t)

	c := testCandidate(3, 2)
	c.Category = "  "
	c.Status = ""
	saved, err := store.Upsert("math-2026", c)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, saved.Category)
	assert.Equal(t, StatusPending, saved.Status)
}

func TestStoreSetStatus(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upsert("math-2026", testCandidate(1, 1))
	require.NoError(t, err)

	saved, err := store.SetStatus("math-2026", 1, 1, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, saved.Status)
	assert.Equal(t, 2, saved.Version)

	_, err = store.SetStatus("math-2026", 9, 9, StatusApproved)
	assert.Error(t, err)
}

func TestStoreListExams(t *testing.T) {
	store := newTestStore(t)

	exams, err := store.ListExams()
	require.NoError(t, err)
	assert.Empty(t, exams)

	_, err = store.Upsert("physics", testCandidate(1, 1))
	require.NoError(t, err)
	_, err = store.Upsert("math", testCandidate(1, 1))
	require.NoError(t, err)

	exams, err = store.ListExams()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"physics", "math"}, exams)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "math-2026", want: "math-2026"},
		{in: "mid term", want: "mid_term"},
		{in: "../escape", want: "__escape"},
		{in: "a/b\\c", want: "a_b_c"},
		{in: "  ", want: "default"},
	}

	for _, tt := range tests {
		got := SanitizeName(tt.in)
		assert.Equal(t, tt.want, got)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, "\\")
		assert.NotContains(t, got, "..")
	}
}

func TestSanitizeExamNameInStore(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upsert("../escape/attempt", testCandidate(1, 1))
	require.NoError(t, err)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
	assert.NotContains(t, entries[0].Name(), "/")
}
