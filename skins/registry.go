package skins

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry maps skin ids to their definitions.
//
// It is filled during startup discovery and only read afterwards; reads are
// safe from multiple goroutines.
type Registry struct {
	mu    sync.RWMutex
	skins map[string]Definition
}

// NewRegistry returns an empty registry. The sentinel DefaultSkin is never
// stored; Has reports it as present.
func NewRegistry() *Registry {
	return &Registry{skins: make(map[string]Definition)}
}

// Add validates d and registers it. The first registration of an id wins; a
// later definition with the same id is rejected with ErrDuplicateID and leaves
// the registry unchanged.
func (r *Registry) Add(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skins[d.SkinID]; ok {
		return errors.Wrapf(ErrDuplicateID, "skin id %q", d.SkinID)
	}
	r.skins[d.SkinID] = d
	return nil
}

// Get returns the definition registered under id.
func (r *Registry) Get(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.skins[id]
	return d, ok
}

// Has reports whether id is registered, or is the DefaultSkin sentinel.
func (r *Registry) Has(id string) bool {
	if id == DefaultSkin {
		return true
	}
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of registered skins, not counting the sentinel.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skins)
}

// IDs returns the registered skin ids in lexical order, without the sentinel.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.skins))
	for id := range r.skins {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Definitions returns the registered definitions ordered by id.
func (r *Registry) Definitions() []Definition {
	ids := r.IDs()
	defs := make([]Definition, 0, len(ids))
	for _, id := range ids {
		d, _ := r.Get(id)
		defs = append(defs, d)
	}
	return defs
}

// Option is one entry a selection UI offers.
type Option struct {
	ID        string
	DialogKey string
}

// Options lists what a selection UI should offer: the sentinel first, then
// every registered skin by id.
func (r *Registry) Options() []Option {
	opts := []Option{{ID: DefaultSkin, DialogKey: "SKIN_MOD_HELPER_DEFAULT"}}
	for _, d := range r.Definitions() {
		opts = append(opts, Option{ID: d.SkinID, DialogKey: d.DialogKey})
	}
	return opts
}
