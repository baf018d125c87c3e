package overlay

import (
	"io"
	"io/fs"

	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Opener opens assets by path from the combined content of all sources.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// SpritesPath returns where a skin's sprite bank description lives.
func SpritesPath(d skins.Definition) string {
	return "Graphics/" + d.UniquePath() + "Sprites.xml"
}

// PortraitsPath returns where a skin's portrait bank description lives.
func PortraitsPath(d skins.Definition) string {
	return "Graphics/" + d.UniquePath() + "Portraits.xml"
}

// Banks are the base banks skins are merged into.
type Banks struct {
	Sprites   *sprites.Bank
	Portraits *sprites.Bank
}

// Merger merges every registered skin into the base banks.
type Merger struct {
	Registry *skins.Registry
	Content  Opener
}

// MergeSource merges the description at path into base for skinID. A source
// that does not exist is a silent no-op.
func (m *Merger) MergeSource(base *sprites.Bank, skinID, path string) Result {
	rc, err := m.Content.Open(path)
	if err != nil {
		res := Result{Bank: base.Name, Skin: skinID, Source: path}
		if errors.Is(err, fs.ErrNotExist) {
			res.Missing = true
			glog.V(2).Infof("overlay: skin %s has no %s", skinID, path)
			return res
		}
		glog.Warningf("overlay: opening %s for skin %s: %v", path, skinID, err)
		res.Err = err
		return res
	}
	defer rc.Close()
	res := MergeOverrides(base, skinID, rc)
	res.Source = path
	return res
}

// MergeAll merges sprites and portraits of every registered skin. It must run
// each time the base banks are rebuilt, before any lookup of namespaced ids.
// Nil banks are skipped.
func (m *Merger) MergeAll(b Banks) []Result {
	var results []Result
	for _, d := range m.Registry.Definitions() {
		if d.SkinID == skins.DefaultSkin {
			continue
		}
		if b.Sprites != nil {
			results = append(results, m.MergeSource(b.Sprites, d.SkinID, SpritesPath(d)))
		}
		if b.Portraits != nil {
			results = append(results, m.MergeSource(b.Portraits, d.SkinID, PortraitsPath(d)))
		}
	}
	return results
}
