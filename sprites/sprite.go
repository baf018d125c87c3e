package sprites

import (
	"sort"

	"badc0de.net/pkg/go-skinmod/atlas"
)

// Animation is an ordered run of frames. Animations are shared between
// sprites and are not modified after a bank is built.
type Animation struct {
	ID     string
	Delay  float64
	Goto   string
	Loop   bool
	Frames []*atlas.Texture
}

// Point is a justification point, in fractions of the frame size.
type Point struct {
	X, Y float64
}

// Sprite is a set of named animations. A bank holds one template sprite per
// id; Create hands out copies.
type Sprite struct {
	ID      string
	Path    string
	Start   string
	Justify *Point

	animations map[string]*Animation

	current string
	frame   int
}

func newSprite(id string) *Sprite {
	return &Sprite{ID: id, animations: make(map[string]*Animation)}
}

// Animations returns the live animation table of the sprite. Changes to the
// returned map change the sprite.
func (s *Sprite) Animations() map[string]*Animation {
	return s.animations
}

// Animation returns the animation named id, or nil.
func (s *Sprite) Animation(id string) *Animation {
	return s.animations[id]
}

// Has reports whether the sprite has an animation named id.
func (s *Sprite) Has(id string) bool {
	_, ok := s.animations[id]
	return ok
}

// AnimationIDs returns the animation names in lexical order.
func (s *Sprite) AnimationIDs() []string {
	ids := make([]string, 0, len(s.animations))
	for id := range s.animations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a copy of s with its own animation table. The animations
// themselves are shared.
func (s *Sprite) Clone() *Sprite {
	c := *s
	c.animations = make(map[string]*Animation, len(s.animations))
	for id, a := range s.animations {
		c.animations[id] = a
	}
	if s.Justify != nil {
		j := *s.Justify
		c.Justify = &j
	}
	return &c
}

// Play selects animation id, starting at its first frame. Unknown ids leave
// the sprite unchanged and return false.
func (s *Sprite) Play(id string) bool {
	if !s.Has(id) {
		return false
	}
	s.current = id
	s.frame = 0
	return true
}

// SetFrame moves the current animation to frame n, wrapping around.
func (s *Sprite) SetFrame(n int) {
	a := s.animations[s.current]
	if a == nil || len(a.Frames) == 0 {
		return
	}
	s.frame = ((n % len(a.Frames)) + len(a.Frames)) % len(a.Frames)
}

// CurrentAnimation returns the id of the playing animation.
func (s *Sprite) CurrentAnimation() string {
	return s.current
}

// Texture returns the texture of the current frame, or nil when nothing is
// playing.
func (s *Sprite) Texture() *atlas.Texture {
	a := s.animations[s.current]
	if a == nil || len(a.Frames) == 0 {
		return nil
	}
	return a.Frames[s.frame]
}
