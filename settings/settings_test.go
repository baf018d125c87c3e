package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"badc0de.net/pkg/go-skinmod/ttesting"
)

func TestReadWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, Settings{SelectedSkinMod: "bob_retro"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	ttesting.AssertTrue(t, "field name", strings.Contains(buf.String(), "SelectedSkinMod: bob_retro"))

	s, err := Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	ttesting.AssertEqualString(t, "round trip", s.SelectedSkinMod, "bob_retro")

	s, err = Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read empty: %v", err)
	}
	ttesting.AssertEqualString(t, "empty document", s.SelectedSkinMod, "")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open missing file: %v", err)
	}
	ttesting.AssertEqualString(t, "first run", f.SelectedSkin(), "")

	if err := f.SetSelectedSkin("alpha_classic"); err != nil {
		t.Fatalf("set: %v", err)
	}

	f2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	ttesting.AssertEqualString(t, "persisted", f2.SelectedSkin(), "alpha_classic")
}
