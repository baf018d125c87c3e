package sprites

import (
	"badc0de.net/pkg/go-skinmod/xmls"

	"github.com/pkg/errors"
)

// FrameMetadata is the derived per-frame placement information of player-like
// sprites, keyed in the bank by frame texture path.
type FrameMetadata struct {
	HasHair      bool
	HairOffsetX  int
	HairOffsetY  int
	HairFrame    int
	CarryYOffset int
}

// CreateFramesMetadata derives the frame metadata of entry id from the
// Metadata elements of its descriptions. Frames already known to the bank are
// overwritten, so calling it again for the same entry is harmless.
func (b *Bank) CreateFramesMetadata(id string) error {
	d, ok := b.Data(id)
	if !ok {
		return errors.Wrapf(ErrUnknownSprite, "bank %s: frames metadata for %q", b.Name, id)
	}
	derived := make(map[string]FrameMetadata)
	for _, src := range d.Sources {
		root := src.Path
		if root == "" {
			root = d.Sprite.Path
		}
		for _, mf := range src.Metadata() {
			hair, err := xmls.ParseHair(mf.Hair)
			if err != nil {
				return errors.Wrapf(err, "bank %s: sprite %q metadata %q", b.Name, id, mf.Path)
			}
			carry, err := xmls.ParseCarry(mf.Carry)
			if err != nil {
				return errors.Wrapf(err, "bank %s: sprite %q metadata %q", b.Name, id, mf.Path)
			}
			for i, tex := range b.Atlas.Subtextures(root + mf.Path) {
				var fm FrameMetadata
				if i < len(hair) {
					fm.HasHair = hair[i].HasHair
					fm.HairOffsetX = hair[i].DX
					fm.HairOffsetY = hair[i].DY
					fm.HairFrame = hair[i].HairFrame
				}
				if i < len(carry) {
					fm.CarryYOffset = carry[i]
				}
				derived[tex.Path] = fm
			}
		}
	}
	b.mu.Lock()
	for p, fm := range derived {
		b.frames[p] = fm
	}
	b.mu.Unlock()
	return nil
}

// FrameMetadata returns the metadata of the frame texture at path.
func (b *Bank) FrameMetadata(path string) (FrameMetadata, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fm, ok := b.frames[path]
	return fm, ok
}

// HairFrame returns the hair frame index for the frame s is showing, or 0
// when the frame has no metadata.
func (b *Bank) HairFrame(s *Sprite) int {
	t := s.Texture()
	if t == nil {
		return 0
	}
	fm, _ := b.FrameMetadata(t.Path)
	return fm.HairFrame
}
