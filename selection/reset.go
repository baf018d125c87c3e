package selection

import "sync"

// Phase is the animation phase of a live sprite.
type Phase int

const (
	// Idle sprites take a skin change immediately.
	Idle Phase = iota
	// Active sprites are mid-animation; a skin change waits for the next
	// frame boundary.
	Active
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	}
	return "unknown"
}

// Resetter rebuilds one live sprite after a skin change without popping in
// the middle of an animation frame.
type Resetter struct {
	reset func()

	mu      sync.Mutex
	phase   Phase
	pending bool
}

// NewResetter returns an Idle resetter calling reset to rebuild the sprite.
func NewResetter(reset func()) *Resetter {
	return &Resetter{reset: reset}
}

// SetPhase records the sprite's current phase.
func (r *Resetter) SetPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
}

// Phase returns the recorded phase.
func (r *Resetter) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Request asks for a rebuild. Idle sprites are rebuilt before Request
// returns, and true is returned; Active sprites are rebuilt at the next
// Frame call.
func (r *Resetter) Request() bool {
	r.mu.Lock()
	if r.phase == Active {
		r.pending = true
		r.mu.Unlock()
		return false
	}
	r.pending = false
	r.mu.Unlock()
	r.reset()
	return true
}

// Pending reports whether a rebuild waits for the next frame.
func (r *Resetter) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Frame marks a frame boundary and runs a pending rebuild.
func (r *Resetter) Frame() {
	r.mu.Lock()
	run := r.pending
	r.pending = false
	r.mu.Unlock()
	if run {
		r.reset()
	}
}
