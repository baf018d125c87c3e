// Package atlas holds named textures and answers the queries the overlay engine
// makes against the host's texture store.
//
// Texture paths are slash separated and carry no file extension, e.g.
// "characters/player/idle00". Numbered textures sharing a prefix form an
// ordered subtexture sequence ("idle00", "idle01", ...).
package atlas

import (
	"image"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Texture is a single image in an atlas.
type Texture struct {
	Path  string
	Image image.Image
}

// Store is the read-only view of an atlas used by lookups.
type Store interface {
	Has(path string) bool
	Get(path string) *Texture
	Subtextures(key string) []*Texture
}

// Atlas is an in-memory Store.
type Atlas struct {
	Name string

	mu       sync.RWMutex
	textures map[string]*Texture
	subs     map[string][]*Texture
	// gen is bumped by Add; subs only caches lists computed at the current gen.
	gen uint64
}

// New creates an empty atlas.
func New(name string) *Atlas {
	return &Atlas{
		Name:     name,
		textures: make(map[string]*Texture),
		subs:     make(map[string][]*Texture),
	}
}

// Add stores img under path, replacing any texture already there.
func (a *Atlas) Add(path string, img image.Image) *Texture {
	t := &Texture{Path: path, Image: img}
	a.mu.Lock()
	a.textures[path] = t
	a.subs = make(map[string][]*Texture)
	a.gen++
	a.mu.Unlock()
	return t
}

func (a *Atlas) Has(path string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.textures[path]
	return ok
}

// Get returns the texture at path, or nil.
func (a *Atlas) Get(path string) *Texture {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.textures[path]
}

// Len returns the number of textures.
func (a *Atlas) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.textures)
}

// Paths returns all texture paths in lexical order.
func (a *Atlas) Paths() []string {
	a.mu.RLock()
	paths := make([]string, 0, len(a.textures))
	for p := range a.textures {
		paths = append(paths, p)
	}
	a.mu.RUnlock()
	sort.Strings(paths)
	return paths
}

// Subtextures returns the textures named key followed only by digits, ordered
// by their number. It returns nil when there are none.
func (a *Atlas) Subtextures(key string) []*Texture {
	a.mu.RLock()
	if s, ok := a.subs[key]; ok {
		a.mu.RUnlock()
		return s
	}
	gen := a.gen
	type numbered struct {
		n int
		t *Texture
	}
	var found []numbered
	for p, t := range a.textures {
		if !strings.HasPrefix(p, key) {
			continue
		}
		suffix := p[len(key):]
		if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		found = append(found, numbered{n, t})
	}
	a.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].n != found[j].n {
			return found[i].n < found[j].n
		}
		return found[i].t.Path < found[j].t.Path
	})
	var s []*Texture
	for _, f := range found {
		s = append(s, f.t)
	}

	a.mu.Lock()
	if a.gen == gen {
		a.subs[key] = s
	}
	a.mu.Unlock()
	return s
}
