package skins

import (
	"testing"
	"testing/fstest"

	"badc0de.net/pkg/go-skinmod/ttesting"
	"github.com/pkg/errors"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Definition{SkinID: "alpha_classic", DialogKey: "SKIN_ALPHA"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := r.Add(Definition{SkinID: "alpha_classic", DialogKey: "SKIN_ALPHA_AGAIN"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second registration: got %v; want ErrDuplicateID", err)
	}
	ttesting.AssertEqualInt(t, "one entry", r.Len(), 1)
	d, _ := r.Get("alpha_classic")
	ttesting.AssertEqualString(t, "first registration retained", d.DialogKey, "SKIN_ALPHA")
}

func TestRegistryRejectsInvalid(t *testing.T) {
	tcs := []struct {
		name string
		def  Definition
		want error
	}{
		{"empty id", Definition{DialogKey: "K"}, ErrInvalidID},
		{"no underscore", Definition{SkinID: "alpha", DialogKey: "K"}, ErrInvalidID},
		{"two underscores", Definition{SkinID: "a_b_c", DialogKey: "K"}, ErrInvalidID},
		{"punctuation", Definition{SkinID: "al-pha_x", DialogKey: "K"}, ErrInvalidID},
		{"sentinel", Definition{SkinID: DefaultSkin, DialogKey: "K"}, ErrInvalidID},
		{"no dialog key", Definition{SkinID: "bob_retro"}, ErrMissingDialogKey},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.Add(tc.def); !errors.Is(err, tc.want) {
				t.Errorf("got %v; want %v", err, tc.want)
			}
			if r.Len() != 0 {
				t.Errorf("registry grew to %d", r.Len())
			}
		})
	}
}

func TestUniquePath(t *testing.T) {
	ttesting.AssertEqualString(t, "root", Definition{SkinID: "bob_retro"}.UniquePath(), "bob/retro/")
}

func TestKey(t *testing.T) {
	k := Namespaced("player", "bob_retro")
	ttesting.AssertEqualString(t, "flattened", k.String(), "player_bob_retro")
	ttesting.AssertFalse(t, "not default", k.IsDefault())
	ttesting.AssertTrue(t, "default", Namespaced("player", DefaultSkin).IsDefault())
}

func TestDiscover(t *testing.T) {
	src := func(name, yaml string) Source {
		fs := fstest.MapFS{}
		if yaml != "" {
			fs[ConfigAsset] = &fstest.MapFile{Data: []byte(yaml)}
		}
		return FSSource{SourceName: name, FS: fs}
	}
	sources := []Source{
		src("plain", ""),
		src("alpha", "SkinId: alpha_classic\nSkinDialogKey: SKIN_ALPHA\n"),
		src("alpha-copy", "SkinId: alpha_classic\nSkinDialogKey: SKIN_ALPHA_COPY\n"),
		src("broken", "SkinId: [unterminated\n"),
		src("nokey", "SkinId: carl_new\n"),
		src("badid", "SkinId: carl\nSkinDialogKey: SKIN_CARL\n"),
		src("bob", "SkinId: bob_retro\nSkinDialogKey: SKIN_BOB\n"),
	}

	r := Discover(sources)

	ttesting.AssertSameStrings(t, "registered ids", r.IDs(), []string{"alpha_classic", "bob_retro"})
	d, _ := r.Get("alpha_classic")
	ttesting.AssertEqualString(t, "first alpha wins", d.Source, "alpha")
	ttesting.AssertEqualString(t, "dialog key kept", d.DialogKey, "SKIN_ALPHA")

	ttesting.AssertEqualString(t, "known selection kept", r.Reconcile("bob_retro"), "bob_retro")
	ttesting.AssertEqualString(t, "unknown selection reset", r.Reconcile("carl_new"), DefaultSkin)
	ttesting.AssertEqualString(t, "first run reset", r.Reconcile(""), DefaultSkin)

	opts := r.Options()
	ttesting.AssertEqualInt(t, "options count", len(opts), 3)
	ttesting.AssertEqualString(t, "sentinel first", opts[0].ID, DefaultSkin)
}

func TestContentLayering(t *testing.T) {
	c := Content{
		FSSource{SourceName: "a", FS: fstest.MapFS{"x.txt": {Data: []byte("a")}}},
		FSSource{SourceName: "b", FS: fstest.MapFS{"x.txt": {Data: []byte("b")}, "y.txt": {Data: []byte("b")}}},
	}
	for _, tc := range []struct{ name, want string }{{"x.txt", "a"}, {"y.txt", "b"}} {
		rc, err := c.Open(tc.name)
		if err != nil {
			t.Fatalf("open %s: %v", tc.name, err)
		}
		buf := make([]byte, 1)
		rc.Read(buf)
		rc.Close()
		ttesting.AssertEqualString(t, tc.name, string(buf), tc.want)
	}
	if _, err := c.Open("z.txt"); err == nil {
		t.Errorf("opening missing asset succeeded")
	}
}
