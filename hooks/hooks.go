// Package hooks provides named extension points in host behaviour.
//
// A Point wraps the host's original function. Handlers added to it are
// chained: the most recently added handler runs first and receives the rest
// of the chain, ending in the original, as orig. A handler may change the
// input, change the result, or skip orig entirely.
package hooks

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrMissingPoint means a required extension point was not provided by
	// the host. It is fatal at initialization.
	ErrMissingPoint = errors.New("hook point not found")
	ErrPointType    = errors.New("hook point has a different signature")
	ErrDuplicate    = errors.New("hook point already registered")
)

// Handler intercepts a call to a Point.
type Handler[In, Out any] func(orig func(In) Out, in In) Out

type entry[In, Out any] struct {
	h Handler[In, Out]
}

// Point is one extension point.
type Point[In, Out any] struct {
	name string
	orig func(In) Out

	mu       sync.RWMutex
	handlers []*entry[In, Out]
}

// NewPoint creates the extension point name around orig.
func NewPoint[In, Out any](name string, orig func(In) Out) *Point[In, Out] {
	return &Point[In, Out]{name: name, orig: orig}
}

func (p *Point[In, Out]) Name() string {
	return p.name
}

// Add installs h and returns a function removing it again.
func (p *Point[In, Out]) Add(h Handler[In, Out]) (remove func()) {
	e := &entry[In, Out]{h: h}
	p.mu.Lock()
	p.handlers = append(p.handlers, e)
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, x := range p.handlers {
				if x == e {
					p.handlers = append(p.handlers[:i:i], p.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of installed handlers.
func (p *Point[In, Out]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.handlers)
}

// Call runs the handler chain for in.
func (p *Point[In, Out]) Call(in In) Out {
	p.mu.RLock()
	f := p.orig
	for _, e := range p.handlers {
		next, h := f, e.h
		f = func(in In) Out { return h(next, in) }
	}
	p.mu.RUnlock()
	return f(in)
}

// Before adapts f, which rewrites the input, into a Handler.
func Before[In, Out any](f func(In) In) Handler[In, Out] {
	return func(orig func(In) Out, in In) Out {
		return orig(f(in))
	}
}

// After adapts f, which rewrites the result, into a Handler.
func After[In, Out any](f func(In, Out) Out) Handler[In, Out] {
	return func(orig func(In) Out, in In) Out {
		return f(in, orig(in))
	}
}

type named interface {
	Name() string
}

// Registry holds the extension points a host exposes, by name.
type Registry struct {
	mu     sync.RWMutex
	points map[string]named
}

func NewRegistry() *Registry {
	return &Registry{points: make(map[string]named)}
}

// Register adds p under its name.
func (r *Registry) Register(p named) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.points[p.Name()]; ok {
		return errors.Wrapf(ErrDuplicate, "%q", p.Name())
	}
	r.points[p.Name()] = p
	return nil
}

// Lookup returns the point registered as name with the given signature.
func Lookup[In, Out any](r *Registry, name string) (*Point[In, Out], error) {
	r.mu.RLock()
	p, ok := r.points[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrMissingPoint, "%q", name)
	}
	tp, ok := p.(*Point[In, Out])
	if !ok {
		return nil, errors.Wrapf(ErrPointType, "%q", name)
	}
	return tp, nil
}
