package skinmod

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/hooks"
	"badc0de.net/pkg/go-skinmod/overlay"
	"badc0de.net/pkg/go-skinmod/redirect"
	"badc0de.net/pkg/go-skinmod/settings"
	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"
	"badc0de.net/pkg/go-skinmod/ttesting"

	"github.com/pkg/errors"
)

const baseSprites = `<Sprites>
	<player path="characters/player/" start="idle">
		<Loop id="idle" path="idle"/>
		<Anim id="dash" path="dash"/>
	</player>
</Sprites>`

const bobSprites = `<Sprites>
	<player path="bob/retro/characters/player/">
		<Loop id="idle" path="idle"/>
	</player>
</Sprites>`

const basePortraits = `<Portraits>
	<portrait_madeline path="portraits/madeline/"><Loop id="normal" path="normal"/></portrait_madeline>
</Portraits>`

const bobPortraits = `<Portraits>
	<portrait_madeline path="bob/retro/portraits/madeline/"><Loop id="normal" path="normal"/></portrait_madeline>
</Portraits>`

// host is a minimal host exposing every extension point.
type host struct {
	hooks    *hooks.Registry
	create   *hooks.Point[SpriteRequest, SpriteResult]
	hair     *hooks.Point[HairRequest, *atlas.Texture]
	portrait *hooks.Point[*redirect.Portrait, *redirect.Portrait]
	textbox  *hooks.Point[string, *atlas.Texture]
	render   *hooks.Point[RenderRequest, struct{}]
	level    *hooks.Point[Level, error]

	gameplay  *atlas.Atlas
	base      *sprites.Bank
	portraits *atlas.Atlas
	dialog    *sprites.Bank
	loaded    []string
	drawn     int
}

func newHost(t *testing.T, skip string) *host {
	h := &host{hooks: hooks.NewRegistry(), gameplay: atlas.New("Gameplay")}
	for _, p := range []string{
		"characters/player/idle00", "characters/player/dash00", "characters/player/hair00",
		"bob/retro/characters/player/idle00",
	} {
		h.gameplay.Add(p, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	b, err := sprites.Build("Sprites", h.gameplay, strings.NewReader(baseSprites))
	if err != nil {
		t.Fatalf("building base bank: %v", err)
	}
	h.base = b

	h.portraits = atlas.New("Portraits")
	for _, p := range []string{
		"portraits/madeline/normal00", "bob/retro/portraits/madeline/normal00",
		"textbox/madeline_ask", "textbox/bob/retro/madeline_ask",
	} {
		h.portraits.Add(p, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	if h.dialog, err = sprites.Build("Portraits", h.portraits, strings.NewReader(basePortraits)); err != nil {
		t.Fatalf("building portrait bank: %v", err)
	}

	h.create = hooks.NewPoint(PointCreateSprite, CreateSprite)
	h.hair = hooks.NewPoint(PointHairTexture, func(in HairRequest) *atlas.Texture {
		return h.gameplay.Get("characters/player/hair00")
	})
	h.portrait = hooks.NewPoint(PointPortrait, func(p *redirect.Portrait) *redirect.Portrait { return p })
	h.textbox = hooks.NewPoint(PointTextbox, func(path string) *atlas.Texture { return h.portraits.Get(path) })
	h.render = hooks.NewPoint(PointRenderPlayer, func(RenderRequest) struct{} {
		h.drawn++
		return struct{}{}
	})
	h.level = hooks.NewPoint(PointLevelLoad, func(l Level) error {
		h.loaded = append(h.loaded, l.Name)
		return nil
	})

	reg := func(name string, p interface{ Name() string }) {
		if name == skip {
			return
		}
		if err := h.hooks.Register(p); err != nil {
			t.Fatalf("registering %s: %v", name, err)
		}
	}
	reg(PointCreateSprite, h.create)
	reg(PointHairTexture, h.hair)
	reg(PointPortrait, h.portrait)
	reg(PointTextbox, h.textbox)
	reg(PointRenderPlayer, h.render)
	reg(PointLevelLoad, h.level)
	return h
}

func contentSources() []skins.Source {
	return []skins.Source{
		skins.FSSource{SourceName: "base", FS: fstest.MapFS{}},
		skins.FSSource{SourceName: "bob", FS: fstest.MapFS{
			skins.ConfigAsset:                  {Data: []byte("SkinId: bob_retro\nSkinDialogKey: SKIN_BOB\n")},
			"Graphics/bob/retro/Sprites.xml":   {Data: []byte(bobSprites)},
			"Graphics/bob/retro/Portraits.xml": {Data: []byte(bobPortraits)},
		}},
	}
}

func writeSettings(t *testing.T, selected string) string {
	p := filepath.Join(t.TempDir(), "settings.yaml")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := settings.Write(f, settings.Settings{SelectedSkinMod: selected}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadMissingPoint(t *testing.T) {
	h := newHost(t, PointTextbox)
	m, err := New(Config{Banks: overlay.Banks{Sprites: h.base}})
	if err != nil {
		t.Fatal(err)
	}
	err = m.Load(h.hooks)
	if !errors.Is(err, hooks.ErrMissingPoint) {
		t.Fatalf("Load() = %v; want ErrMissingPoint", err)
	}
	ttesting.AssertEqualInt(t, "no handlers installed", h.create.Len(), 0)
	if err := m.Load(h.hooks); !errors.Is(err, hooks.ErrMissingPoint) {
		t.Errorf("retried Load() = %v; want ErrMissingPoint", err)
	}
}

func TestLoadContentReconciles(t *testing.T) {
	path := writeSettings(t, "ghost_skin")
	m, err := New(Config{SettingsPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.LoadContent(contentSources()); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "active", m.State.Active(), skins.DefaultSkin)

	f, err := settings.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "persisted", f.SelectedSkin(), skins.DefaultSkin)

	if err := m.Select("carl_new"); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("Select(carl_new) = %v; want ErrUnknownSkin", err)
	}
	if err := m.Select("bob_retro"); err != nil {
		t.Errorf("Select(bob_retro) = %v", err)
	}
	f, _ = settings.Open(path)
	ttesting.AssertEqualString(t, "persisted selection", f.SelectedSkin(), "bob_retro")
}

func TestModule(t *testing.T) {
	h := newHost(t, "")
	m, err := New(Config{
		SettingsPath:     writeSettings(t, "bob_retro"),
		Banks:            overlay.Banks{Sprites: h.base, Portraits: h.dialog},
		Gameplay:         h.gameplay,
		PortraitTextures: h.portraits,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.LoadContent(contentSources()); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "selection kept", m.State.Active(), "bob_retro")
	if err := m.Load(h.hooks); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Load(h.hooks); !errors.Is(err, ErrLoaded) {
		t.Errorf("second Load() = %v; want ErrLoaded", err)
	}
	ttesting.AssertEqualInt(t, "handlers installed once", h.create.Len(), 1)

	if err := h.level.Call(Level{Name: "1-ForsakenCity"}); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualInt(t, "host load ran", len(h.loaded), 1)
	ttesting.AssertTrue(t, "override merged", h.base.Has("player_bob_retro"))
	ttesting.AssertTrue(t, "portrait override merged", h.dialog.Has("portrait_madeline_bob_retro"))
	ttesting.AssertEqualInt(t, "results kept", len(m.Results()), 2)

	res := h.create.Call(SpriteRequest{Bank: h.base, ID: "player"})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	ttesting.AssertEqualString(t, "skinned sprite", res.Sprite.ID, "player_bob_retro")
	ttesting.AssertTrue(t, "patched animation", res.Sprite.Has("dash"))

	var held sprites.Sprite
	res = h.create.Call(SpriteRequest{Bank: h.base, ID: "player", Target: &held})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	ttesting.AssertEqualString(t, "rebuilt in place", held.ID, "player_bob_retro")

	hair := h.hair.Call(HairRequest{Index: 0, Player: res.Sprite, Bank: h.base})
	ttesting.AssertEqualString(t, "base hair", hair.Path, "characters/player/hair00")

	p := h.portrait.Call(&redirect.Portrait{Sprite: "madeline", Animation: "normal"})
	ttesting.AssertEqualString(t, "skinned portrait", p.Sprite, "madeline_bob_retro")
	tb := h.textbox.Call("textbox/" + p.Sprite + "_ask")
	if tb == nil {
		t.Fatalf("no textbox for %q", p.Sprite)
	}
	ttesting.AssertEqualString(t, "skin textbox", tb.Path, "textbox/bob/retro/madeline_ask")

	h.render.Call(RenderRequest{Dashes: 1})
	ttesting.AssertEqualInt(t, "player drawn", h.drawn, 1)

	if err := m.Select(skins.DefaultSkin); err != nil {
		t.Fatal(err)
	}
	res = h.create.Call(SpriteRequest{Bank: h.base, ID: "player"})
	ttesting.AssertEqualString(t, "base after deselect", res.Sprite.ID, "player")
	p = h.portrait.Call(&redirect.Portrait{Sprite: "madeline"})
	ttesting.AssertEqualString(t, "base portrait after deselect", p.Sprite, "madeline")
	ttesting.AssertEqualString(t, "base textbox after deselect", h.textbox.Call("textbox/madeline_ask").Path, "textbox/madeline_ask")

	m.Unload()
	ttesting.AssertEqualInt(t, "handlers removed", h.create.Len()+h.level.Len()+h.hair.Len(), 0)
	if err := m.Select("bob_retro"); err != nil {
		t.Fatal(err)
	}
	res = h.create.Call(SpriteRequest{Bank: h.base, ID: "player"})
	ttesting.AssertEqualString(t, "unloaded", res.Sprite.ID, "player")

	if err := m.Load(h.hooks); err != nil {
		t.Fatalf("Load after Unload: %v", err)
	}
	ttesting.AssertEqualInt(t, "reloaded", h.create.Len(), 1)
	m.Unload()
}
