// Package overlay merges the sprite banks shipped by skins into the base
// banks.
//
// For every sprite a skin overrides, the patched override is stored in the
// base bank next to the original under the namespaced id "<base>_<skin>". The
// original entries are never touched.
package overlay

import (
	"io"
	"sort"

	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/golang/glog"
)

// HairSprites are the base sprite ids whose overrides need frame metadata
// derived for hair placement.
var HairSprites = []string{"player", "player_no_backpack", "badeline", "player_badeline", "player_playback"}

func needsHair(id string) bool {
	for _, h := range HairSprites {
		if h == id {
			return true
		}
	}
	return false
}

// Result reports what one merge contributed.
type Result struct {
	Bank   string
	Skin   string
	Source string

	// Merged lists base ids that gained a namespaced override.
	Merged []string
	// Ignored lists override ids without a base counterpart.
	Ignored []string
	// Missing is set when the skin has no description for the bank.
	Missing bool
	// Err is set when the description could not be built. Nothing was merged.
	Err error
}

// MergeOverrides builds the description read from r into a temporary bank
// sharing base's atlas, patches every override that has a base counterpart
// and stores it in base under its namespaced id.
//
// A description that fails to build is logged and contributes nothing.
// Merging the same description again rebuilds and replaces the namespaced
// entries with identical ones.
func MergeOverrides(base *sprites.Bank, skinID string, r io.Reader) Result {
	res := Result{Bank: base.Name, Skin: skinID}
	if skinID == skins.DefaultSkin {
		return res
	}
	override, err := sprites.Build(base.Name+"_"+skinID, base.Atlas, r)
	if err != nil {
		glog.Warningf("overlay: could not build %s bank for skin %s: %v", base.Name, skinID, err)
		res.Err = err
		return res
	}

	for _, id := range override.IDs() {
		orig, ok := base.Data(id)
		if !ok {
			res.Ignored = append(res.Ignored, id)
			continue
		}
		od, _ := override.Data(id)
		sprites.Patch(orig.Sprite, od.Sprite)

		key := skins.Namespaced(id, skinID)
		od.Sprite.ID = key.String()
		base.Set(key.String(), &sprites.Data{
			ID:      key.String(),
			Sprite:  od.Sprite,
			Sources: od.Sources,
		})
		res.Merged = append(res.Merged, id)

		if needsHair(id) {
			if err := base.CreateFramesMetadata(key.String()); err != nil {
				glog.Warningf("overlay: frame metadata for %s: %v", key, err)
			}
		}
	}
	sort.Strings(res.Merged)
	sort.Strings(res.Ignored)
	glog.Infof("overlay: merged %d %s overrides for skin %s", len(res.Merged), base.Name, skinID)
	if len(res.Ignored) > 0 {
		glog.V(1).Infof("overlay: skin %s %s entries without base counterpart: %v", skinID, base.Name, res.Ignored)
	}
	return res
}
