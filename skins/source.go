package skins

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// Source is a single content source, typically one installed mod.
//
// Open must return an error satisfying errors.Is(err, fs.ErrNotExist) when the
// asset is not provided by the source.
type Source interface {
	Name() string
	Open(name string) (io.ReadCloser, error)
}

// FSSource serves assets from an fs.FS.
type FSSource struct {
	SourceName string
	FS         fs.FS
}

// DirSource returns a source backed by the directory dir.
func DirSource(dir string) FSSource {
	return FSSource{SourceName: filepath.Base(dir), FS: os.DirFS(dir)}
}

func (s FSSource) Name() string {
	return s.SourceName
}

func (s FSSource) Open(name string) (io.ReadCloser, error) {
	f, err := s.FS.Open(path.Clean(name))
	if err != nil {
		return nil, errors.Wrapf(err, "source %q: opening %q", s.SourceName, name)
	}
	return f, nil
}

// Content layers several sources on top of each other; the first source that
// provides an asset wins.
type Content []Source

// Open opens name in the first source providing it. When no source has it,
// the returned error satisfies errors.Is(err, fs.ErrNotExist).
func (c Content) Open(name string) (io.ReadCloser, error) {
	for _, s := range c {
		rc, err := s.Open(name)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, errors.Wrapf(fs.ErrNotExist, "content: %q", name)
}
