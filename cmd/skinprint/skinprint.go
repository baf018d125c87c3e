// Command skinprint prints a sprite frame or a hair texture as the selected
// skin resolves it.
package main

import (
	"flag"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-skinmod"
	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/overlay"
	"badc0de.net/pkg/go-skinmod/paths"
	"badc0de.net/pkg/go-skinmod/skins"

	"github.com/golang/glog"
)

var (
	skin     = flag.String("skin", skins.DefaultSkin, "skin to resolve assets with")
	spriteID = flag.String("sprite", "", "sprite to print")
	anim     = flag.String("anim", "", "animation to print; defaults to the start animation")
	frame    = flag.Int("frame", 0, "frame of the animation to print")
	hair     = flag.Int("hair", -1, "hair segment to print, instead of a sprite")
	hairFr   = flag.Int("hair_frame", 0, "bangs frame used with --hair=0")
	col      = flag.Bool("col", true, "whether to use color at all")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with a terminal image protocol instead of 24 bit")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", false, "whether to shrink the image to the terminal size")

	contentDir string
)

func load() (*skinmod.Module, *atlas.Atlas) {
	dirs, err := paths.Dirs(contentDir)
	if err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	gameplay, err := paths.LoadAtlas("Gameplay", dirs)
	if err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	bank, err := paths.LoadBank("Sprites", gameplay, contentDir)
	if err != nil {
		glog.Exitf("skinprint: %v", err)
	}

	m, err := skinmod.New(skinmod.Config{
		Banks:    overlay.Banks{Sprites: bank},
		Gameplay: gameplay,
	})
	if err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	sources, err := paths.Sources(contentDir)
	if err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	if err := m.LoadContent(sources); err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	m.Merge()
	if err := m.Select(*skin); err != nil {
		glog.Exitf("skinprint: %v", err)
	}
	return m, gameplay
}

func spriteTexture(m *skinmod.Module) *atlas.Texture {
	res := skinmod.CreateSprite(skinmod.SpriteRequest{
		Bank: m.Banks.Sprites,
		ID:   m.Redirector.SpriteID(m.Banks.Sprites, *spriteID),
	})
	if res.Err != nil {
		glog.Exitf("skinprint: %v", res.Err)
	}
	s := res.Sprite
	if *anim != "" && !s.Play(*anim) {
		glog.Exitf("skinprint: sprite %q has no animation %q; has %v", s.ID, *anim, s.AnimationIDs())
	}
	if s.CurrentAnimation() == "" {
		ids := s.AnimationIDs()
		if len(ids) == 0 {
			glog.Exitf("skinprint: sprite %q has no animations", s.ID)
		}
		s.Play(ids[0])
	}
	s.SetFrame(*frame)
	glog.Infof("skinprint: %s %s frame %d", s.ID, s.CurrentAnimation(), *frame)
	return s.Texture()
}

func hairTexture(m *skinmod.Module, gameplay *atlas.Atlas) *atlas.Texture {
	return m.Redirector.HairTexture(*hair, *hairFr, func(index int) *atlas.Texture {
		if index == 0 {
			if bangs := gameplay.Subtextures("characters/player/bangs"); *hairFr >= 0 && *hairFr < len(bangs) {
				return bangs[*hairFr]
			}
		}
		return gameplay.Get("characters/player/hair00")
	})
}

func main() {
	paths.SetupDirFlag("Content", "content_dir", &contentDir)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	m, gameplay := load()

	var t *atlas.Texture
	switch {
	case *hair >= 0:
		t = hairTexture(m, gameplay)
	case *spriteID != "":
		t = spriteTexture(m)
	default:
		glog.Exitf("skinprint: pass --sprite or --hair")
	}
	if t == nil || t.Image == nil {
		glog.Exitf("skinprint: nothing to print")
	}
	glog.Infof("skinprint: printing %s", t.Path)
	if err := out(os.Stdout, t.Image); err != nil {
		glog.Exitf("skinprint: %v", err)
	}
}
