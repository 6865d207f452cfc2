package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/gitbash/internal/models"
)

const projDir = "/Users/Public/proj"

type fakeLister struct {
	entries map[string][]models.Entry
	err     error
	calls   int
}

func (f *fakeLister) ReadDir(_ context.Context, p string) ([]models.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[p], nil
}

func TestInitTransitions(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.IsRepository(projDir))
	assert.False(t, r.Init(projDir))
	assert.True(t, r.IsRepository(projDir))
	assert.True(t, r.Init(projDir), "second init reinitializes")
	assert.Equal(t, 1, r.Len())
}

func TestRegistryKeysAreNormalized(t *testing.T) {
	r := NewRegistry()
	r.Init("/Users//Public/proj/.")

	assert.True(t, r.IsRepository(projDir))
	assert.True(t, r.IsRepository("/Users/Public/other/../proj"))
}

func TestAddRequiresInit(t *testing.T) {
	r := NewRegistry()

	n, err := r.Add(projDir, "a.txt")
	assert.True(t, errors.Is(err, ErrNotRepository))
	assert.Zero(t, n)
	assert.Zero(t, r.Len(), "add never creates state")
}

func TestAddOnlyGrows(t *testing.T) {
	r := NewRegistry()
	r.Init(projDir)

	n, err := r.Add(projDir, "a.txt", "b.txt", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Add(projDir, "b.txt")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []string{"a.txt", "b.txt"}, r.Staged(projDir))

	r.Init(projDir)
	assert.Equal(t, []string{"a.txt", "b.txt"}, r.Staged(projDir), "reinit keeps the staged set")
}

func TestStateIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Init(projDir)
	_, _ = r.Add(projDir, "a.txt")

	st, ok := r.State(projDir)
	require.True(t, ok)
	st.Staged[0] = "mutated"

	assert.Equal(t, []string{"a.txt"}, r.Staged(projDir))

	_, ok = r.State("/elsewhere")
	assert.False(t, ok)
}
