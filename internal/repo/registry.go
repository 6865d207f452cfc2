// Package repo simulates the small part of git the shell understands: a
// per-directory repository flag and a staged file set that only grows.
package repo

import (
	"errors"

	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/paths"
)

// ErrNotRepository is returned when staging outside an initialized directory.
var ErrNotRepository = errors.New("not a git repository")

// Registry maps normalized directory paths to their repository state.
// It belongs to a single session and is not safe for concurrent use.
type Registry struct {
	repos map[string]*models.RepoState
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{repos: make(map[string]*models.RepoState)}
}

// Init marks dir as a repository. It reports true when dir was already one.
func (r *Registry) Init(dir string) (reinit bool) {
	key := paths.Clean(dir)
	if st, ok := r.repos[key]; ok && st.Initialized {
		return true
	}
	r.repos[key] = &models.RepoState{Initialized: true}
	return false
}

// Add stages names in dir and returns how many were new.
func (r *Registry) Add(dir string, names ...string) (int, error) {
	st, ok := r.repos[paths.Clean(dir)]
	if !ok || !st.Initialized {
		return 0, ErrNotRepository
	}
	added := 0
	for _, name := range names {
		if name == "" || st.IsStaged(name) {
			continue
		}
		st.Staged = append(st.Staged, name)
		added++
	}
	return added, nil
}

// State returns a copy of the state for dir.
func (r *Registry) State(dir string) (models.RepoState, bool) {
	st, ok := r.repos[paths.Clean(dir)]
	if !ok {
		return models.RepoState{}, false
	}
	cp := models.RepoState{Initialized: st.Initialized}
	cp.Staged = append([]string(nil), st.Staged...)
	return cp, true
}

// IsRepository reports whether dir was initialized.
func (r *Registry) IsRepository(dir string) bool {
	st, ok := r.repos[paths.Clean(dir)]
	return ok && st.Initialized
}

// Staged returns the staged names for dir in insertion order.
func (r *Registry) Staged(dir string) []string {
	st, _ := r.State(dir)
	return st.Staged
}

// Len returns the number of known repositories.
func (r *Registry) Len() int {
	return len(r.repos)
}
