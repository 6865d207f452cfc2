// Package vfs is the hierarchical file store the shell reads and mutates.
//
// The interpreter only talks to the Store interface. AferoStore implements
// it on top of an afero filesystem, either fully in memory or rooted at a
// host directory.
package vfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/paths"
)

const (
	defaultDirPerms  = 0o755
	defaultFilePerms = 0o644
)

var (
	// ErrNotFound is returned when a path is absent or has the wrong kind.
	ErrNotFound = errors.New("no such file or directory")
	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")
)

// Store is the contract the interpreter consumes.
type Store interface {
	// ReadDir lists the children of a directory.
	ReadDir(ctx context.Context, p string) ([]models.Entry, error)
	// Exists never fails; any lookup error reads as false.
	Exists(ctx context.Context, p string) bool
	// Lstat describes p without following links.
	Lstat(ctx context.Context, p string) (fs.FileInfo, error)
	// Mkdir creates one empty directory.
	Mkdir(ctx context.Context, p string) error
	// WriteFile creates or overwrites a file.
	WriteFile(ctx context.Context, p string, data []byte) error
	// ReadFile returns the content of a file.
	ReadFile(ctx context.Context, p string) ([]byte, error)
	// Unlink removes a file.
	Unlink(ctx context.Context, p string) error
}

// AferoStore implements Store over an afero filesystem.
type AferoStore struct {
	fs afero.Fs
}

var _ Store = (*AferoStore)(nil)

// New wraps an existing afero filesystem.
func New(fsys afero.Fs) *AferoStore {
	return &AferoStore{fs: fsys}
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *AferoStore {
	return New(afero.NewMemMapFs())
}

// NewOSStore returns a store rooted at a host directory. The directory is
// created when missing.
func NewOSStore(root string) (*AferoStore, error) {
	if root == "" {
		return nil, errors.New("empty store root")
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, defaultDirPerms); err != nil {
		return nil, err
	}
	return New(afero.NewBasePathFs(osFs, root)), nil
}

// Fs exposes the underlying filesystem.
func (s *AferoStore) Fs() afero.Fs {
	return s.fs
}

// ReadDir lists the children of p.
func (s *AferoStore) ReadDir(ctx context.Context, p string) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p = paths.Clean(p)
	info, err := s.fs.Stat(p)
	if err != nil || !info.IsDir() {
		return nil, notFound("readdir", p)
	}
	infos, err := afero.ReadDir(s.fs, p)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: err}
	}
	entries := make([]models.Entry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, models.Entry{Name: fi.Name(), IsDir: fi.IsDir()})
	}
	return entries, nil
}

// Exists reports whether p is present.
func (s *AferoStore) Exists(ctx context.Context, p string) bool {
	if ctx.Err() != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, paths.Clean(p))
	return ok && err == nil
}

// Lstat describes p.
func (s *AferoStore) Lstat(ctx context.Context, p string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p = paths.Clean(p)
	var (
		info fs.FileInfo
		err  error
	)
	if l, ok := s.fs.(afero.Lstater); ok {
		info, _, err = l.LstatIfPossible(p)
	} else {
		info, err = s.fs.Stat(p)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound("lstat", p)
		}
		return nil, err
	}
	return info, nil
}

// Mkdir creates p. The parent must exist and p must not.
func (s *AferoStore) Mkdir(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p = paths.Clean(p)
	if ok, _ := afero.DirExists(s.fs, path.Dir(p)); !ok {
		return notFound("mkdir", path.Dir(p))
	}
	if s.Exists(ctx, p) {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	return s.fs.Mkdir(p, defaultDirPerms)
}

// WriteFile creates or truncates p with data.
func (s *AferoStore) WriteFile(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p = paths.Clean(p)
	if ok, _ := afero.IsDir(s.fs, p); ok {
		return &fs.PathError{Op: "write", Path: p, Err: ErrIsDir}
	}
	if ok, _ := afero.DirExists(s.fs, path.Dir(p)); !ok {
		return notFound("write", path.Dir(p))
	}
	return afero.WriteFile(s.fs, p, data, defaultFilePerms)
}

// ReadFile returns the content of p. Directories read as not found.
func (s *AferoStore) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p = paths.Clean(p)
	info, err := s.fs.Stat(p)
	if err != nil || info.IsDir() {
		return nil, notFound("read", p)
	}
	return afero.ReadFile(s.fs, p)
}

// Unlink removes the file at p.
func (s *AferoStore) Unlink(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p = paths.Clean(p)
	info, err := s.fs.Stat(p)
	if err != nil {
		return notFound("unlink", p)
	}
	if info.IsDir() {
		return &fs.PathError{Op: "unlink", Path: p, Err: ErrIsDir}
	}
	return s.fs.Remove(p)
}

// Seed creates home and the given entries below it. An entry ending in "/"
// is a directory; "name=content" writes content into a file. Existing files
// are left untouched so a host-backed store keeps its data.
func (s *AferoStore) Seed(home string, entries []string) error {
	home = paths.Clean(home)
	if err := s.fs.MkdirAll(home, defaultDirPerms); err != nil {
		return err
	}
	for _, raw := range entries {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasSuffix(raw, "/") {
			if err := s.fs.MkdirAll(paths.Join(home, raw), defaultDirPerms); err != nil {
				return err
			}
			continue
		}
		name, content, _ := strings.Cut(raw, "=")
		target := paths.Join(home, name)
		if err := s.fs.MkdirAll(path.Dir(target), defaultDirPerms); err != nil {
			return err
		}
		if ok, _ := afero.Exists(s.fs, target); ok {
			continue
		}
		if err := afero.WriteFile(s.fs, target, []byte(content), defaultFilePerms); err != nil {
			return err
		}
	}
	return nil
}

func notFound(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: ErrNotFound}
}

// IsNotFound reports whether err means a missing path, from this package or
// from the host filesystem.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
