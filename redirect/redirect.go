// Package redirect decides, for each asset lookup the host makes, whether the
// active skin's asset is used instead of the base one.
//
// Every rule builds a candidate from the base identifier and the active skin,
// uses it when the asset store has it, and falls back to the unchanged base
// identifier otherwise. No rule keeps state of its own.
package redirect

import (
	"strconv"
	"strings"

	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/golang/glog"
)

// Selection reports the active skin id.
type Selection interface {
	Active() string
}

// Redirector holds the stores the rules query. Any store may be nil, in which
// case the rules depending on it always fall back.
type Redirector struct {
	Selection Selection
	Registry  *skins.Registry

	Portraits *sprites.Bank

	// Gameplay is the atlas hair textures come from.
	Gameplay atlas.Store
	// PortraitTextures is the atlas textbox backgrounds come from.
	PortraitTextures atlas.Store
	ColorGrades      atlas.Store
}

// skin returns the definition of the active skin, if one other than the
// sentinel is active and registered.
func (r *Redirector) skin() (skins.Definition, bool) {
	if r.Selection == nil || r.Registry == nil {
		return skins.Definition{}, false
	}
	id := r.Selection.Active()
	if id == skins.DefaultSkin {
		return skins.Definition{}, false
	}
	return r.Registry.Get(id)
}

// SpriteID returns the id to build a sprite from bank with: the namespaced
// override when bank has one for the active skin, id otherwise.
func (r *Redirector) SpriteID(bank *sprites.Bank, id string) string {
	if bank == nil || r.Selection == nil {
		return id
	}
	key := skins.Namespaced(id, r.Selection.Active())
	if key.IsDefault() {
		return id
	}
	if bank.Has(key.String()) {
		glog.V(2).Infof("redirect: sprite %q -> %q", id, key)
		return key.String()
	}
	return id
}

// HairTexture returns the hair texture for hair segment index. Segment 0
// prefers the skin's bangs frame hairFrame, then every segment prefers the
// skin's single hair texture; otherwise orig resolves the base texture.
func (r *Redirector) HairTexture(index, hairFrame int, orig func(index int) *atlas.Texture) *atlas.Texture {
	d, ok := r.skin()
	if ok && r.Gameplay != nil {
		if index == 0 {
			bangs := d.UniquePath() + "characters/player/bangs"
			if r.Gameplay.Has(bangs + "00") {
				subs := r.Gameplay.Subtextures(bangs)
				if hairFrame >= 0 && hairFrame < len(subs) {
					glog.V(2).Infof("redirect: bangs frame %d -> %q", hairFrame, subs[hairFrame].Path)
					return subs[hairFrame]
				}
				glog.V(1).Infof("redirect: skin %s has no bangs frame %d", d.SkinID, hairFrame)
			}
		}
		hair := d.UniquePath() + "characters/player/hair00"
		if t := r.Gameplay.Get(hair); t != nil {
			return t
		}
	}
	return orig(index)
}

// Portrait is the portrait a dialog line is about to show.
type Portrait struct {
	Sprite    string
	Animation string
	Flipped   bool
}

const portraitPrefix = "portrait_"

// SpriteID returns the portrait bank id the portrait is built from.
func (p *Portrait) SpriteID() string {
	return portraitPrefix + p.Sprite
}

// Portrait rewrites p to the active skin's portrait when the portrait bank
// has one, and returns p.
func (r *Redirector) Portrait(p *Portrait) *Portrait {
	if p == nil || r.Portraits == nil {
		return p
	}
	if _, ok := r.skin(); !ok {
		return p
	}
	key := skins.Namespaced(p.SpriteID(), r.Selection.Active())
	if r.Portraits.Has(key.String()) {
		glog.V(2).Infof("redirect: portrait %q -> %q", p.SpriteID(), key)
		p.Sprite = strings.TrimPrefix(key.String(), portraitPrefix)
	}
	return p
}

const (
	textboxPrefix = "textbox/"
	textboxSuffix = "_ask"
)

// TextboxPath corrects a textbox background path built from a portrait that
// Portrait may have rewritten. The skin's own textbox is used when the
// portrait atlas has it; otherwise the base textbox of the original portrait.
func (r *Redirector) TextboxPath(path string) string {
	d, ok := r.skin()
	if !ok {
		return path
	}
	if !strings.HasPrefix(path, textboxPrefix) || !strings.HasSuffix(path, textboxSuffix) {
		return path
	}
	id := strings.TrimSuffix(strings.TrimPrefix(path, textboxPrefix), textboxSuffix)
	id = strings.TrimSuffix(id, "_"+d.SkinID)

	candidate := textboxPrefix + d.UniquePath() + id + textboxSuffix
	if r.PortraitTextures != nil && r.PortraitTextures.Has(candidate) {
		glog.V(2).Infof("redirect: textbox %q -> %q", path, candidate)
		return candidate
	}
	return textboxPrefix + id + textboxSuffix
}

// minGradeDashes is the lowest dash count searched for when the current
// count has no colour grade.
const minGradeDashes = 2

// ColorGrade returns the active skin's colour grade for a player with dashes
// dashes left, searching downwards to minGradeDashes. It returns nil when
// there is none and the player renders normally.
func (r *Redirector) ColorGrade(dashes int) *atlas.Texture {
	d, ok := r.skin()
	if !ok || r.ColorGrades == nil {
		return nil
	}
	prefix := d.UniquePath() + "dash"
	n := dashes
	for n > minGradeDashes && !r.ColorGrades.Has(prefix+strconv.Itoa(n)) {
		n--
	}
	return r.ColorGrades.Get(prefix + strconv.Itoa(n))
}

// Renderer switches the host's draw state for the player.
type Renderer interface {
	UseColorGrade(grade *atlas.Texture)
	UseDefault()
}

// RenderPlayer calls render through the active skin's colour grade, restoring
// the default draw state afterwards. Without a grade it just calls render.
// It reports whether a grade was used.
func (r *Redirector) RenderPlayer(rd Renderer, dashes int, render func()) bool {
	grade := r.ColorGrade(dashes)
	if grade == nil || rd == nil {
		render()
		return false
	}
	rd.UseColorGrade(grade)
	defer rd.UseDefault()
	render()
	return true
}
