// Package sprites builds sprite banks from bank descriptions and an atlas,
// and hands out sprites by id.
package sprites

import (
	"io"
	"sort"
	"sync"

	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/xmls"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	ErrMissingTexture = errors.New("missing atlas reference")
	ErrUnknownCopy    = errors.New("copy of unknown sprite")
	ErrUnknownSprite  = errors.New("unknown sprite")
)

// Data is a bank entry: the template sprite and the description elements it
// was built from.
type Data struct {
	ID      string
	Sprite  *Sprite
	Sources []xmls.Entry
}

// Bank maps sprite ids to entries. All sprites of a bank draw their frames
// from the same atlas.
type Bank struct {
	Name  string
	Atlas atlas.Store

	mu     sync.RWMutex
	data   map[string]*Data
	frames map[string]FrameMetadata
}

// NewBank returns an empty bank over store.
func NewBank(name string, store atlas.Store) *Bank {
	return &Bank{
		Name:   name,
		Atlas:  store,
		data:   make(map[string]*Data),
		frames: make(map[string]FrameMetadata),
	}
}

// Build decodes a bank description from r and resolves it against store.
// Any decoding error or unresolvable frame fails the whole bank.
func Build(name string, store atlas.Store, r io.Reader) (*Bank, error) {
	doc, err := xmls.ReadBank(r)
	if err != nil {
		return nil, errors.Wrapf(err, "bank %s", name)
	}
	b := NewBank(name, store)
	if err := b.AddDescription(doc); err != nil {
		return nil, err
	}
	return b, nil
}

// AddDescription builds every entry of doc and stores it, in document order.
// On error the bank may hold the entries built before the failing one.
func (b *Bank) AddDescription(doc xmls.Bank) error {
	for _, e := range doc.Entries {
		d, err := b.build(e)
		if err != nil {
			return errors.Wrapf(err, "bank %s", b.Name)
		}
		b.Set(d.ID, d)
	}
	return nil
}

func (b *Bank) build(e xmls.Entry) (*Data, error) {
	id := e.ID()
	d := &Data{ID: id, Sprite: newSprite(id)}
	if e.Copy != "" {
		orig, ok := b.Data(e.Copy)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCopy, "sprite %q copies %q", id, e.Copy)
		}
		d.Sprite = orig.Sprite.Clone()
		d.Sprite.ID = id
		d.Sources = append(d.Sources, orig.Sources...)
	}
	d.Sources = append(d.Sources, e)

	s := d.Sprite
	if e.Path != "" {
		s.Path = e.Path
	}
	if e.Start != "" {
		s.Start = e.Start
	}
	x, y, ok, err := e.Justify()
	if err != nil {
		return nil, err
	}
	if ok {
		s.Justify = &Point{X: x, Y: y}
	}

	defs, err := e.Anims()
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		frames, err := b.resolveFrames(s.Path+def.Path, def.Frames)
		if err != nil {
			return nil, errors.Wrapf(err, "sprite %q animation %q", id, def.ID)
		}
		s.animations[def.ID] = &Animation{
			ID:     def.ID,
			Delay:  def.Delay,
			Goto:   def.Goto,
			Loop:   def.Loop,
			Frames: frames,
		}
	}
	return d, nil
}

func (b *Bank) resolveFrames(key string, indices []int) ([]*atlas.Texture, error) {
	subs := b.Atlas.Subtextures(key)
	if len(subs) == 0 {
		if t := b.Atlas.Get(key); t != nil {
			subs = []*atlas.Texture{t}
		}
	}
	if len(subs) == 0 {
		return nil, errors.Wrapf(ErrMissingTexture, "%q", key)
	}
	if indices == nil {
		return subs, nil
	}
	frames := make([]*atlas.Texture, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(subs) {
			return nil, errors.Wrapf(ErrMissingTexture, "%q frame %d of %d", key, i, len(subs))
		}
		frames = append(frames, subs[i])
	}
	return frames, nil
}

// Has reports whether the bank holds an entry for id.
func (b *Bank) Has(id string) bool {
	_, ok := b.Data(id)
	return ok
}

// Data returns the entry for id.
func (b *Bank) Data(id string) (*Data, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d, ok := b.data[id]
	return d, ok
}

// Set stores d under id, replacing an existing entry.
func (b *Bank) Set(id string, d *Data) {
	b.mu.Lock()
	b.data[id] = d
	b.mu.Unlock()
}

// IDs returns every entry id in lexical order.
func (b *Bank) IDs() []string {
	b.mu.RLock()
	ids := make([]string, 0, len(b.data))
	for id := range b.data {
		ids = append(ids, id)
	}
	b.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Len returns the number of entries.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Create returns a new sprite built from the entry for id, playing its start
// animation if it has one.
func (b *Bank) Create(id string) (*Sprite, error) {
	d, ok := b.Data(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSprite, "bank %s: %q", b.Name, id)
	}
	s := d.Sprite.Clone()
	if s.Start != "" {
		s.Play(s.Start)
	}
	glog.V(3).Infof("bank %s: created sprite %q", b.Name, id)
	return s, nil
}

// CreateOn rebuilds s in place from the entry for id, keeping the identity of
// the sprite object the caller holds.
func (b *Bank) CreateOn(s *Sprite, id string) error {
	n, err := b.Create(id)
	if err != nil {
		return err
	}
	*s = *n
	return nil
}
