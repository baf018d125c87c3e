package hooks

import (
	"strings"
	"testing"

	"badc0de.net/pkg/go-skinmod/ttesting"

	"github.com/pkg/errors"
)

func TestChainOrder(t *testing.T) {
	p := NewPoint("greet", func(s string) string { return "hello " + s })
	ttesting.AssertEqualString(t, "no handlers", p.Call("world"), "hello world")

	removeUpper := p.Add(After(func(_ string, out string) string { return strings.ToUpper(out) }))
	removeBefore := p.Add(Before[string, string](func(s string) string { return s + "!" }))
	ttesting.AssertEqualString(t, "both handlers", p.Call("world"), "HELLO WORLD!")

	p.Add(func(orig func(string) string, in string) string {
		if in == "skip" {
			return "skipped"
		}
		return orig(in)
	})
	ttesting.AssertEqualString(t, "replace without orig", p.Call("skip"), "skipped")

	removeUpper()
	removeUpper()
	ttesting.AssertEqualInt(t, "removed once", p.Len(), 2)
	removeBefore()
	ttesting.AssertEqualString(t, "after removal", p.Call("world"), "hello world")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	p := NewPoint("hair.texture", func(i int) string { return "" })
	if err := r.Register(p); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(p); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate register: got %v", err)
	}

	got, err := Lookup[int, string](r, "hair.texture")
	if err != nil || got != p {
		t.Errorf("lookup: got %v, %v", got, err)
	}
	if _, err := Lookup[string, string](r, "hair.texture"); !errors.Is(err, ErrPointType) {
		t.Errorf("lookup with wrong signature: got %v", err)
	}
	if _, err := Lookup[int, string](r, "player.render"); !errors.Is(err, ErrMissingPoint) {
		t.Errorf("lookup missing: got %v", err)
	}
}
