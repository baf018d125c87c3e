package skins

import (
	"io/fs"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Discover reads the skin definition asset of every source and registers the
// valid ones. A source without the asset is skipped silently; a broken or
// invalid definition is logged and skipped, and never stops discovery of the
// remaining sources.
func Discover(sources []Source) *Registry {
	r := NewRegistry()
	for _, src := range sources {
		d, err := loadDefinition(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				glog.V(2).Infof("skins: source %q has no %s", src.Name(), ConfigAsset)
				continue
			}
			glog.Warningf("skins: could not read definition from %q: %v", src.Name(), err)
			continue
		}
		if err := r.Add(d); err != nil {
			switch {
			case errors.Is(err, ErrMissingDialogKey):
				glog.Warningf("skins: missing or invalid dialog key in %q, will not register: %v", src.Name(), err)
			default:
				glog.Warningf("skins: duplicate or invalid skin id in %q, will not register: %v", src.Name(), err)
			}
			continue
		}
		glog.Infof("skins: registered new skin %s from %q", d.SkinID, src.Name())
	}
	return r
}

func loadDefinition(src Source) (Definition, error) {
	rc, err := src.Open(ConfigAsset)
	if err != nil {
		return Definition{}, err
	}
	defer rc.Close()
	d, err := ReadDefinition(rc)
	if err != nil {
		return Definition{}, err
	}
	d.Source = src.Name()
	return d, nil
}

// Reconcile returns selected if it names a registered skin, and DefaultSkin
// otherwise (including when nothing was ever selected).
func (r *Registry) Reconcile(selected string) string {
	if selected == "" || !r.Has(selected) {
		return DefaultSkin
	}
	return selected
}
