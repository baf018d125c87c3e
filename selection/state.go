// Package selection holds the currently selected skin.
//
// The host is single threaded, but selection may be requested from a UI or
// HTTP goroutine, so the value is guarded.
package selection

import (
	"sync"

	"badc0de.net/pkg/go-skinmod/skins"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Store persists the selection.
type Store interface {
	SetSelectedSkin(id string) error
}

// Live is a live sprite that must be rebuilt when the skin changes.
type Live interface {
	Request() bool
}

// Tracker finds the live player-like sprite of the current scene. Player
// returns nil when there is none.
type Tracker interface {
	Player() Live
}

// State is the process-wide active skin.
type State struct {
	// selecting serializes Select, so the persisted id is the active one.
	selecting sync.Mutex

	mu      sync.RWMutex
	active  string
	store   Store
	tracker Tracker
}

// New returns a State with id active. An empty id means DefaultSkin.
func New(id string) *State {
	if id == "" {
		id = skins.DefaultSkin
	}
	return &State{active: id}
}

// SetStore sets where selections are persisted.
func (s *State) SetStore(st Store) {
	s.mu.Lock()
	s.store = st
	s.mu.Unlock()
}

// SetTracker sets how the live player is found, typically on scene change.
func (s *State) SetTracker(t Tracker) {
	s.mu.Lock()
	s.tracker = t
	s.mu.Unlock()
}

// Active returns the selected skin id.
func (s *State) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// IsDefault reports whether base assets are selected.
func (s *State) IsDefault() bool {
	return s.Active() == skins.DefaultSkin
}

// Select makes id the active skin. It does not check id against the
// registry; callers only offer registered ids. The live player, if any, is
// asked to rebuild its sprite. The selection holds even if persisting it
// fails; the persistence error is returned.
func (s *State) Select(id string) error {
	if id == "" {
		id = skins.DefaultSkin
	}
	s.selecting.Lock()
	defer s.selecting.Unlock()

	s.mu.Lock()
	prev := s.active
	s.active = id
	store, tracker := s.store, s.tracker
	s.mu.Unlock()

	glog.Infof("selection: skin %s -> %s", prev, id)

	if tracker != nil {
		if p := tracker.Player(); p != nil {
			if p.Request() {
				glog.V(2).Infof("selection: player sprite reset")
			} else {
				glog.V(2).Infof("selection: player sprite reset deferred to next frame")
			}
		}
	}

	if store != nil {
		if err := store.SetSelectedSkin(id); err != nil {
			return errors.Wrapf(err, "persisting selection %q", id)
		}
	}
	return nil
}
