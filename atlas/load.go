package atlas

import (
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// LoadFS adds every PNG under root in fsys to a new atlas. Texture paths are
// relative to root and have the ".png" extension removed.
func LoadFS(name string, fsys fs.FS, root string) (*Atlas, error) {
	a := New(name)
	if err := a.AddFS(fsys, root); err != nil {
		return nil, err
	}
	return a, nil
}

// AddFS adds every PNG under root in fsys. A missing root adds nothing.
func (a *Atlas) AddFS(fsys fs.FS, root string) error {
	root = path.Clean(root)
	if _, err := fs.Stat(fsys, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			glog.V(2).Infof("atlas %s: no %q to load", a.Name, root)
			return nil
		}
		return errors.Wrapf(err, "atlas %s: stat %q", a.Name, root)
	}
	count := 0
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(p), ".png") {
			return nil
		}
		f, err := fsys.Open(p)
		if err != nil {
			return errors.Wrapf(err, "opening %q", p)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "decoding %q", p)
		}
		rel := p
		if root != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		}
		a.Add(rel[:len(rel)-len(".png")], img)
		count++
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "atlas %s: loading %q", a.Name, root)
	}
	glog.Infof("atlas %s: loaded %d textures from %q", a.Name, count, root)
	return nil
}
