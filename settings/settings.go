// Package settings persists the user's skin selection between runs.
package settings

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the persisted state of the skin module.
type Settings struct {
	SelectedSkinMod string `yaml:"SelectedSkinMod"`
}

// Read decodes settings from r. An empty document yields zero Settings.
func Read(r io.Reader) (Settings, error) {
	var s Settings
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return Settings{}, errors.Wrap(err, "decoding settings")
	}
	return s, nil
}

// Write encodes s to w.
func Write(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	return enc.Close()
}

// File is a settings store backed by a YAML file. A missing file reads as zero
// Settings. The zero File with an empty path keeps settings in memory only.
type File struct {
	path string

	mu  sync.Mutex
	cur Settings
}

// Open loads settings from path.
func Open(path string) (*File, error) {
	f := &File{path: path}
	if path == "" {
		return f, nil
	}
	r, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, errors.Wrapf(err, "opening settings %q", path)
	}
	defer r.Close()
	s, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings %q", path)
	}
	f.cur = s
	return f, nil
}

// SelectedSkin returns the persisted selection, possibly empty.
func (f *File) SelectedSkin() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur.SelectedSkinMod
}

// SetSelectedSkin updates the selection and writes the file.
func (f *File) SetSelectedSkin(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur.SelectedSkinMod = id
	return f.save()
}

func (f *File) save() error {
	if f.path == "" {
		return nil
	}
	w, err := os.Create(f.path)
	if err != nil {
		return errors.Wrapf(err, "creating settings %q", f.path)
	}
	if err := Write(w, f.cur); err != nil {
		w.Close()
		return errors.Wrapf(err, "writing settings %q", f.path)
	}
	return w.Close()
}
