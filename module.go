// Package skinmod wires skin discovery, bank merging, selection and asset
// redirection into a host through named extension points.
package skinmod

import (
	"sync"

	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/hooks"
	"badc0de.net/pkg/go-skinmod/overlay"
	"badc0de.net/pkg/go-skinmod/redirect"
	"badc0de.net/pkg/go-skinmod/selection"
	"badc0de.net/pkg/go-skinmod/settings"
	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Names of the extension points Load requires.
const (
	PointCreateSprite = "sprites.create"
	PointHairTexture  = "hair.texture"
	PointPortrait     = "dialog.portrait"
	PointTextbox      = "dialog.textbox"
	PointRenderPlayer = "player.render"
	PointLevelLoad    = "level.load"
)

var (
	ErrUnknownSkin = errors.New("unknown skin")
	ErrLoaded      = errors.New("already loaded")
)

// SpriteRequest asks for a sprite to be built from Bank. When Target is set,
// the sprite is built in place of Target.
type SpriteRequest struct {
	Bank   *sprites.Bank
	ID     string
	Target *sprites.Sprite
}

// SpriteResult is what the sprite creation point returns.
type SpriteResult struct {
	Sprite *sprites.Sprite
	Err    error
}

// HairRequest asks for the texture of hair segment Index of Player. Bank is
// the bank Player was built from; it provides the hair frame.
type HairRequest struct {
	Index  int
	Player *sprites.Sprite
	Bank   *sprites.Bank
}

// HairFrame returns the hair frame the player's current frame calls for.
func (h HairRequest) HairFrame() int {
	if h.Player == nil || h.Bank == nil {
		return 0
	}
	return h.Bank.HairFrame(h.Player)
}

// RenderRequest asks for the player to be drawn with Dashes dashes left.
type RenderRequest struct {
	Dashes   int
	Renderer redirect.Renderer
}

// Level is a level being loaded.
type Level struct {
	Name string
}

// Config describes the host assets a Module works with.
type Config struct {
	// SettingsPath is the settings file. Empty keeps settings in memory.
	SettingsPath string

	Banks            overlay.Banks
	Gameplay         atlas.Store
	PortraitTextures atlas.Store
	ColorGrades      atlas.Store

	Tracker selection.Tracker
}

// Module is a loaded skin mod.
type Module struct {
	Registry   *skins.Registry
	State      *selection.State
	Settings   *settings.File
	Redirector *redirect.Redirector
	Merger     *overlay.Merger
	Banks      overlay.Banks

	mu      sync.Mutex
	loaded  bool
	removes []func()
	// last merge results, by bank and skin
	results []overlay.Result
}

// New opens the settings and prepares an empty module. Skins are found by
// LoadContent.
func New(cfg Config) (*Module, error) {
	st, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening settings")
	}
	reg := skins.NewRegistry()
	state := selection.New(st.SelectedSkin())
	state.SetStore(st)
	if cfg.Tracker != nil {
		state.SetTracker(cfg.Tracker)
	}
	m := &Module{
		Registry: reg,
		State:    state,
		Settings: st,
		Redirector: &redirect.Redirector{
			Selection:        state,
			Registry:         reg,
			Portraits:        cfg.Banks.Portraits,
			Gameplay:         cfg.Gameplay,
			PortraitTextures: cfg.PortraitTextures,
			ColorGrades:      cfg.ColorGrades,
		},
		Merger: &overlay.Merger{Registry: reg},
		Banks:  cfg.Banks,
	}
	return m, nil
}

// LoadContent discovers the skins in sources and reconciles the persisted
// selection with them. A selection that no longer names a registered skin
// falls back to the base assets and is persisted as such.
func (m *Module) LoadContent(sources []skins.Source) error {
	found := skins.Discover(sources)
	for _, d := range found.Definitions() {
		if err := m.Registry.Add(d); err != nil && !errors.Is(err, skins.ErrDuplicateID) {
			return errors.Wrapf(err, "registering %s", d.SkinID)
		}
	}
	m.Merger.Content = skins.Content(sources)

	selected := m.Settings.SelectedSkin()
	reconciled := m.Registry.Reconcile(selected)
	if reconciled != selected {
		glog.Warningf("skinmod: selected skin %q is not available, using %s", selected, reconciled)
		if err := m.State.Select(reconciled); err != nil {
			return errors.Wrap(err, "resetting selection")
		}
	}
	glog.Infof("skinmod: %d skins registered, %s active", m.Registry.Len(), m.State.Active())
	return nil
}

// Select activates a registered skin or DefaultSkin.
func (m *Module) Select(id string) error {
	if !m.Registry.Has(id) {
		return errors.Wrapf(ErrUnknownSkin, "%q", id)
	}
	return m.State.Select(id)
}

// Merge merges every registered skin into the module's banks.
func (m *Module) Merge() []overlay.Result {
	results := m.Merger.MergeAll(m.Banks)
	merged, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		merged += len(r.Merged)
	}
	glog.Infof("skinmod: merged %d sprites from %d sources, %d failed", merged, len(results), failed)
	m.mu.Lock()
	m.results = results
	m.mu.Unlock()
	return results
}

// Results returns the results of the last merge.
func (m *Module) Results() []overlay.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]overlay.Result(nil), m.results...)
}

type points struct {
	create   *hooks.Point[SpriteRequest, SpriteResult]
	hair     *hooks.Point[HairRequest, *atlas.Texture]
	portrait *hooks.Point[*redirect.Portrait, *redirect.Portrait]
	textbox  *hooks.Point[string, *atlas.Texture]
	render   *hooks.Point[RenderRequest, struct{}]
	level    *hooks.Point[Level, error]
}

func lookupPoints(h *hooks.Registry) (*points, error) {
	var (
		p   points
		err error
	)
	if p.create, err = hooks.Lookup[SpriteRequest, SpriteResult](h, PointCreateSprite); err != nil {
		return nil, err
	}
	if p.hair, err = hooks.Lookup[HairRequest, *atlas.Texture](h, PointHairTexture); err != nil {
		return nil, err
	}
	if p.portrait, err = hooks.Lookup[*redirect.Portrait, *redirect.Portrait](h, PointPortrait); err != nil {
		return nil, err
	}
	if p.textbox, err = hooks.Lookup[string, *atlas.Texture](h, PointTextbox); err != nil {
		return nil, err
	}
	if p.render, err = hooks.Lookup[RenderRequest, struct{}](h, PointRenderPlayer); err != nil {
		return nil, err
	}
	if p.level, err = hooks.Lookup[Level, error](h, PointLevelLoad); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load installs the module's handlers on the host's extension points. Every
// point must exist; otherwise nothing is installed and the error wraps
// hooks.ErrMissingPoint. Loading a loaded module fails with ErrLoaded.
func (m *Module) Load(h *hooks.Registry) error {
	m.mu.Lock()
	if m.loaded {
		m.mu.Unlock()
		return errors.Wrap(ErrLoaded, "skinmod")
	}
	m.loaded = true
	m.mu.Unlock()

	p, err := lookupPoints(h)
	if err != nil {
		m.mu.Lock()
		m.loaded = false
		m.mu.Unlock()
		glog.Errorf("skinmod: not loading: %v", err)
		return errors.Wrap(err, "skinmod: host is missing an extension point")
	}
	r := m.Redirector

	rm := []func(){
		p.create.Add(hooks.Before[SpriteRequest, SpriteResult](func(in SpriteRequest) SpriteRequest {
			in.ID = r.SpriteID(in.Bank, in.ID)
			return in
		})),
		p.hair.Add(func(orig func(HairRequest) *atlas.Texture, in HairRequest) *atlas.Texture {
			return r.HairTexture(in.Index, in.HairFrame(), func(index int) *atlas.Texture {
				in.Index = index
				return orig(in)
			})
		}),
		p.portrait.Add(hooks.Before[*redirect.Portrait, *redirect.Portrait](r.Portrait)),
		p.textbox.Add(hooks.Before[string, *atlas.Texture](r.TextboxPath)),
		p.render.Add(func(orig func(RenderRequest) struct{}, in RenderRequest) struct{} {
			r.RenderPlayer(in.Renderer, in.Dashes, func() { orig(in) })
			return struct{}{}
		}),
		p.level.Add(func(orig func(Level) error, in Level) error {
			glog.V(1).Infof("skinmod: merging skins for level %q", in.Name)
			m.Merge()
			return orig(in)
		}),
	}

	m.mu.Lock()
	m.removes = append(m.removes, rm...)
	m.mu.Unlock()
	glog.Infof("skinmod: loaded, %d handlers installed", len(rm))
	return nil
}

// Unload removes every handler Load installed.
func (m *Module) Unload() {
	m.mu.Lock()
	rm := m.removes
	m.removes = nil
	m.loaded = false
	m.mu.Unlock()
	for _, f := range rm {
		f()
	}
	glog.Infof("skinmod: unloaded")
}

// CreateSprite builds sprite id from bank the way the sprite creation point
// does with the module loaded. It is the default behaviour of that point.
func CreateSprite(in SpriteRequest) SpriteResult {
	if in.Bank == nil {
		return SpriteResult{Err: errors.New("no bank")}
	}
	if in.Target != nil {
		if err := in.Bank.CreateOn(in.Target, in.ID); err != nil {
			return SpriteResult{Err: err}
		}
		return SpriteResult{Sprite: in.Target}
	}
	s, err := in.Bank.Create(in.ID)
	return SpriteResult{Sprite: s, Err: err}
}
