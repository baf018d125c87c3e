// Package web serves the skin picker and an inspection view of the effective
// assets over HTTP.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"strconv"

	"badc0de.net/pkg/go-skinmod"
	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"
	"golang.org/x/sync/singleflight"
)

// generation is bumped when the way images are generated changes.
const generation = 1

type Handler struct {
	m        *skinmod.Module
	gameplay atlas.Store

	encodes singleflight.Group
}

// NewHandler constructs a web handler for m. Textures and hair are looked up
// in gameplay.
func NewHandler(m *skinmod.Module, gameplay atlas.Store) *Handler {
	return &Handler{m: m, gameplay: gameplay}
}

type skinJSON struct {
	ID        string `json:"id"`
	DialogKey string `json:"dialog_key"`
	Root      string `json:"root,omitempty"`
	Selected  bool   `json:"selected"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("web: encoding json: %v", err)
	}
}

func (h *Handler) skinsHandler(w http.ResponseWriter, r *http.Request) {
	active := h.m.State.Active()
	var out []skinJSON
	for _, o := range h.m.Registry.Options() {
		s := skinJSON{ID: o.ID, DialogKey: o.DialogKey, Selected: o.ID == active}
		if d, ok := h.m.Registry.Get(o.ID); ok {
			s.Root = d.UniquePath()
		}
		out = append(out, s)
	}
	writeJSON(w, out)
}

func (h *Handler) selectHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.m.Select(id); err != nil {
		if errors.Is(err, skinmod.ErrUnknownSkin) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		// the selection holds; only persisting it failed
		glog.Warningf("web: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, skinJSON{ID: id, Selected: true})
}

type animationJSON struct {
	ID     string  `json:"id"`
	Frames int     `json:"frames"`
	Delay  float64 `json:"delay"`
	Loop   bool    `json:"loop"`
	Goto   string  `json:"goto,omitempty"`
}

type spriteJSON struct {
	ID         string          `json:"id"`
	Effective  string          `json:"effective"`
	Start      string          `json:"start,omitempty"`
	Animations []animationJSON `json:"animations"`
	Preview    string          `json:"preview,omitempty"`
}

// effectiveSprite resolves id against the active skin.
func (h *Handler) effectiveSprite(id string) (*sprites.Sprite, string, bool) {
	bank := h.m.Banks.Sprites
	if bank == nil {
		return nil, "", false
	}
	eff := h.m.Redirector.SpriteID(bank, id)
	d, ok := bank.Data(eff)
	if !ok {
		return nil, "", false
	}
	return d.Sprite, eff, true
}

func (h *Handler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s, eff, ok := h.effectiveSprite(id)
	if !ok {
		http.Error(w, "no such sprite", http.StatusNotFound)
		return
	}

	out := spriteJSON{ID: id, Effective: eff, Start: s.Start, Animations: []animationJSON{}}
	var preview *atlas.Texture
	for _, aid := range s.AnimationIDs() {
		a := s.Animation(aid)
		out.Animations = append(out.Animations, animationJSON{ID: a.ID, Frames: len(a.Frames), Delay: a.Delay, Loop: a.Loop, Goto: a.Goto})
		if len(a.Frames) > 0 && (preview == nil || aid == s.Start) {
			preview = a.Frames[0]
		}
	}
	if preview != nil && preview.Image != nil {
		b, err := h.encodePNG(preview)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out.Preview = dataurl.New(b, "image/png").String()
	}
	writeJSON(w, out)
}

func (h *Handler) spriteGIFHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s, eff, ok := h.effectiveSprite(vars["id"])
	if !ok {
		http.Error(w, "no such sprite", http.StatusNotFound)
		return
	}
	a := s.Animation(vars["anim"])
	if a == nil || len(a.Frames) == 0 {
		http.Error(w, "no such animation", http.StatusNotFound)
		return
	}

	mime := "image/gif"
	etag := fmt.Sprintf(`W/"sprite:%d:%s:%s:%s"`, generation, eff, a.ID, mime)
	if notModified(w, r, etag) {
		return
	}

	delay := int(a.Delay * 100)
	if delay <= 0 {
		delay = 10
	}
	g := gif.GIF{}
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	for _, f := range a.Frames {
		img := f.Image
		if img == nil {
			http.Error(w, "bad image", http.StatusInternalServerError)
			return
		}
		pal := q.Quantize(make(color.Palette, 0, 256), img)
		p := image.NewPaletted(img.Bounds(), pal)
		draw.Draw(p, img.Bounds(), img, img.Bounds().Min, draw.Src)

		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	if !a.Loop {
		g.LoopCount = -1
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	gif.EncodeAll(w, &g)
}

func (h *Handler) textureHandler(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	tr := trace.New("web.texture", path)
	defer tr.Finish()

	if h.gameplay == nil || !h.gameplay.Has(path) {
		tr.LazyPrintf("not found")
		http.Error(w, "no such texture", http.StatusNotFound)
		return
	}
	h.serveTexture(w, r, tr, fmt.Sprintf(`W/"texture:%d:%s"`, generation, path), h.gameplay.Get(path))
}

func (h *Handler) hairHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "index not a number", http.StatusBadRequest)
		return
	}
	var fr int
	if s := r.URL.Query().Get("fr"); s != "" {
		fr, _ = strconv.Atoi(s)
		// ignore invalid fr
	}

	skin := h.m.State.Active()
	tr := trace.New("web.hair", strconv.Itoa(index))
	defer tr.Finish()
	tr.LazyPrintf("skin %s, hair frame %d", skin, fr)

	t := h.m.Redirector.HairTexture(index, fr, h.baseHair(fr))
	if t == nil {
		http.Error(w, "no hair texture", http.StatusNotFound)
		return
	}
	tr.LazyPrintf("resolved %s", t.Path)
	h.serveTexture(w, r, tr, fmt.Sprintf(`W/"hair:%d:%s:%d:%d"`, generation, skin, index, fr), t)
}

// baseHair resolves hair textures the way the base game does: the bangs
// frame for the first segment, a single hair texture for the rest.
func (h *Handler) baseHair(fr int) func(int) *atlas.Texture {
	return func(index int) *atlas.Texture {
		if h.gameplay == nil {
			return nil
		}
		if index == 0 {
			bangs := h.gameplay.Subtextures("characters/player/bangs")
			if fr >= 0 && fr < len(bangs) {
				return bangs[fr]
			}
		}
		return h.gameplay.Get("characters/player/hair00")
	}
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func (h *Handler) serveTexture(w http.ResponseWriter, r *http.Request, tr trace.Trace, etag string, t *atlas.Texture) {
	if notModified(w, r, etag) {
		tr.LazyPrintf("not modified")
		return
	}
	b, err := h.encodePNG(t)
	if err != nil {
		tr.LazyPrintf("encoding: %v", err)
		tr.SetError()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// encodePNG encodes t once for all concurrent requests for the same texture.
func (h *Handler) encodePNG(t *atlas.Texture) ([]byte, error) {
	if t.Image == nil {
		return nil, errors.Errorf("texture %q has no image", t.Path)
	}
	v, err, shared := h.encodes.Do(t.Path, func() (interface{}, error) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, t.Image); err != nil {
			return nil, errors.Wrapf(err, "encoding %q", t.Path)
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		glog.V(3).Infof("web: shared encode of %q", t.Path)
	}
	return v.([]byte), nil
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/skins", h.skinsHandler).Methods(http.MethodGet)
	r.HandleFunc("/skins/{id}/select", h.selectHandler).Methods(http.MethodPost)
	r.HandleFunc("/sprites/{id}", h.spriteHandler).Methods(http.MethodGet)
	r.HandleFunc("/sprites/{id}/{anim}.gif", h.spriteGIFHandler).Methods(http.MethodGet)
	r.HandleFunc("/textures/{path:.+}", h.textureHandler).Methods(http.MethodGet)
	r.HandleFunc("/hair/{index:[0-9]+}", h.hairHandler).Methods(http.MethodGet)
}
