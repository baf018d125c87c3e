// Package ttesting contains assertion helpers shared by the tests of this
// module. Every assertion runs as a named subtest.
package ttesting

import (
	"reflect"
	"sort"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertTrue(t *testing.T, name string, got bool) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if !got {
			t.Errorf("got false; want true")
		}
	})
}

func AssertFalse(t *testing.T, name string, got bool) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got {
			t.Errorf("got true; want false")
		}
	})
}

// AssertSameStrings compares two string sets, ignoring order.
func AssertSameStrings(t *testing.T, name string, got, want []string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		g := append([]string(nil), got...)
		w := append([]string(nil), want...)
		sort.Strings(g)
		sort.Strings(w)
		if len(g) == 0 && len(w) == 0 {
			return
		}
		if !reflect.DeepEqual(g, w) {
			t.Errorf("got %q; want %q", g, w)
		}
	})
}
